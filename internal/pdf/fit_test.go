package pdf_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/trimfit/internal/pdf"
)

var letter = types.Dim{Width: 612, Height: 792}

var _ = Describe("Content fitting", func() {
	It("upscales small content to the margin-constrained area", func() {
		// 400x300pt content on letter with a 0.5in margin: usable area
		// is 540x720pt, so the width ratio 1.35 governs.
		pl, err := pdf.FitContent(types.Dim{Width: 400, Height: 300}, letter, 36)
		Expect(err).NotTo(HaveOccurred())
		Expect(pl.Scale).To(BeNumerically("~", 1.35, 1e-9))
		Expect(pl.OffsetX).To(BeNumerically("~", 36, 1e-9))
		Expect(pl.OffsetY).To(BeNumerically("~", (792-405)/2.0, 1e-9))
	})

	It("downscales oversized content", func() {
		pl, err := pdf.FitContent(types.Dim{Width: 1080, Height: 720}, letter, 36)
		Expect(err).NotTo(HaveOccurred())
		Expect(pl.Scale).To(BeNumerically("~", 0.5, 1e-9))
		Expect(pl.OffsetX).To(BeNumerically("~", 36, 1e-9))
		Expect(pl.OffsetY).To(BeNumerically("~", (792-360)/2.0, 1e-9))
	})

	It("centers content that exactly fills the usable area", func() {
		pl, err := pdf.FitContent(types.Dim{Width: 540, Height: 720}, letter, 36)
		Expect(err).NotTo(HaveOccurred())
		Expect(pl.Scale).To(BeNumerically("~", 1.0, 1e-9))
		Expect(pl.OffsetX).To(BeNumerically("~", 36, 1e-9))
		Expect(pl.OffsetY).To(BeNumerically("~", 36, 1e-9))
	})

	It("is idempotent for already-fitted content", func() {
		first, err := pdf.FitContent(types.Dim{Width: 400, Height: 300}, letter, 36)
		Expect(err).NotTo(HaveOccurred())

		fitted := types.Dim{Width: 400 * first.Scale, Height: 300 * first.Scale}
		second, err := pdf.FitContent(fitted, letter, 36)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.Scale).To(BeNumerically("~", 1.0, 1e-9))
		Expect(second.OffsetX).To(BeNumerically("~", first.OffsetX, 1e-9))
		Expect(second.OffsetY).To(BeNumerically("~", first.OffsetY, 1e-9))
	})

	DescribeTable("rejecting margins that leave no content area",
		func(target types.Dim, margin float64) {
			_, err := pdf.FitContent(types.Dim{Width: 100, Height: 100}, target, margin)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, pdf.ErrMarginTooLarge)).To(BeTrue())
		},
		Entry("margin is half the width", types.Dim{Width: 100, Height: 200}, 50.0),
		Entry("margin exceeds half the height", types.Dim{Width: 612, Height: 100}, 60.0),
		Entry("negative margin", letter, -1.0),
	)

	It("rejects a degenerate content box", func() {
		_, err := pdf.FitContent(types.Dim{Width: 0, Height: 300}, letter, 36)
		Expect(err).To(HaveOccurred())
	})
})

package pagesize_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/trimfit/pkg/pagesize"
)

var _ = Describe("Size resolution", func() {
	DescribeTable("resolving valid specifications",
		func(spec string, orient pagesize.Orientation, width, height float64) {
			dim, err := pagesize.Resolve(spec, orient)
			Expect(err).NotTo(HaveOccurred())
			Expect(dim.Width).To(BeNumerically("~", width, 0.01))
			Expect(dim.Height).To(BeNumerically("~", height, 0.01))
		},
		Entry("letter", "letter", pagesize.OrientationDefault, 612.0, 792.0),
		Entry("letter is case-insensitive", "Letter", pagesize.OrientationDefault, 612.0, 792.0),
		Entry("letter portrait", "letter", pagesize.OrientationPortrait, 612.0, 792.0),
		Entry("letter landscape swaps dimensions", "letter", pagesize.OrientationLandscape, 792.0, 612.0),
		Entry("a4", "a4", pagesize.OrientationDefault, 595.0, 842.0),
		Entry("a4 landscape", "a4", pagesize.OrientationLandscape, 842.0, 595.0),
		Entry("legal", "legal", pagesize.OrientationDefault, 612.0, 1008.0),
		Entry("ledger", "ledger", pagesize.OrientationDefault, 792.0, 1224.0),
		Entry("tabloid is an alias for ledger", "tabloid", pagesize.OrientationDefault, 792.0, 1224.0),
		Entry("paper name containing an x", "card-4x6", pagesize.OrientationDefault, 288.0, 432.0),
		Entry("card size landscape", "card-4x6", pagesize.OrientationLandscape, 432.0, 288.0),
		Entry("explicit inches", "8.5x11", pagesize.OrientationDefault, 612.0, 792.0),
		Entry("explicit inches, wide", "11x8.5", pagesize.OrientationDefault, 792.0, 612.0),
		Entry("explicit inches with uppercase X", "8.5X11", pagesize.OrientationDefault, 612.0, 792.0),
		Entry("explicit fractional inches", "3.25x4", pagesize.OrientationDefault, 234.0, 288.0),
	)

	DescribeTable("rejecting invalid specifications",
		func(spec string, orient pagesize.Orientation) {
			_, err := pagesize.Resolve(spec, orient)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, pagesize.ErrInvalidSpec)).To(BeTrue())
		},
		Entry("unknown paper name", "foo", pagesize.OrientationDefault),
		Entry("empty spec", "", pagesize.OrientationDefault),
		Entry("explicit dimensions with landscape", "11x8.5", pagesize.OrientationLandscape),
		Entry("explicit dimensions with portrait", "8.5x11", pagesize.OrientationPortrait),
		Entry("zero width", "0x11", pagesize.OrientationDefault),
		Entry("negative height", "8.5x-11", pagesize.OrientationDefault),
		Entry("three components", "8.5x11x2", pagesize.OrientationDefault),
	)

	It("reports the offending spec in the error message", func() {
		_, err := pagesize.Resolve("foo", pagesize.OrientationDefault)
		Expect(err.Error()).To(ContainSubstring(`"foo"`))
	})
})

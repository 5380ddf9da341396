package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Placement describes how content is laid onto a target page: a uniform
// scale and the offset of the scaled content's lower-left corner.
type Placement struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// ValidateMargin checks that the margin leaves a positive content area
// on both axes of the target page. All values are in points.
func ValidateMargin(target types.Dim, margin float64) error {
	if margin < 0 {
		return fmt.Errorf("%w: margin %.2fpt is negative", ErrMarginTooLarge, margin)
	}
	if 2*margin >= target.Width || 2*margin >= target.Height {
		return fmt.Errorf("%w: margin %.2fpt leaves no content area on a %.2fx%.2fpt page",
			ErrMarginTooLarge, margin, target.Width, target.Height)
	}
	return nil
}

// FitContent computes the placement of a content box onto a target page
// with a minimum margin on all four sides. The content is scaled
// uniformly to the largest size that fits the margin-constrained area
// and centered; scaling goes both down and up.
func FitContent(content types.Dim, target types.Dim, margin float64) (Placement, error) {
	if err := ValidateMargin(target, margin); err != nil {
		return Placement{}, err
	}
	if content.Width <= 0 || content.Height <= 0 {
		return Placement{}, fmt.Errorf("invalid content box %.2fx%.2fpt", content.Width, content.Height)
	}

	usableW := target.Width - 2*margin
	usableH := target.Height - 2*margin

	scale := usableW / content.Width
	if s := usableH / content.Height; s < scale {
		scale = s
	}

	return Placement{
		Scale:   scale,
		OffsetX: (target.Width - content.Width*scale) / 2,
		OffsetY: (target.Height - content.Height*scale) / 2,
	}, nil
}

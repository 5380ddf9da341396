package pdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/trimfit/pkg/logger"
	"github.com/kpauljoseph/trimfit/pkg/pagesize"
)

// padPt widens the detected box to avoid clipping thin border strokes.
const padPt = 1.0

// Detector locates the bounding box of visible content on a page by
// rasterizing it and scanning for non-near-white pixels.
type Detector struct {
	dpi       float64
	threshold float64
	logger    *logger.Logger
}

// NewDetector returns a Detector rendering at dpi. threshold is the
// fraction of full brightness above which a pixel counts as background
// (the original tool treats channels above 0.95 as white).
func NewDetector(dpi int, threshold float64, log *logger.Logger) *Detector {
	return &Detector{
		dpi:       float64(dpi),
		threshold: threshold,
		logger:    log,
	}
}

// ContentBox renders page pageNum (zero-indexed) of doc and maps the
// pixel bounding box of its visible content into pageBox coordinates.
// The second return value is false when the page is blank.
func (d *Detector) ContentBox(doc *fitz.Document, pageNum int, pageBox *types.Rectangle) (*types.Rectangle, bool, error) {
	img, err := doc.ImageDPI(pageNum, d.dpi)
	if err != nil {
		return nil, false, fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
	}

	pixels, ok := ContentBounds(img, d.threshold)
	if !ok {
		d.logger.Debug("page %d: no visible content, keeping full page", pageNum+1)
		return nil, false, nil
	}

	// Raster row 0 is the top of the page; PDF y grows upward.
	s := pagesize.PointsPerInch / d.dpi
	llx := pageBox.LL.X + float64(pixels.Min.X)*s - padPt
	urx := pageBox.LL.X + float64(pixels.Max.X)*s + padPt
	ury := pageBox.UR.Y - float64(pixels.Min.Y)*s + padPt
	lly := pageBox.UR.Y - float64(pixels.Max.Y)*s - padPt

	if llx < pageBox.LL.X {
		llx = pageBox.LL.X
	}
	if lly < pageBox.LL.Y {
		lly = pageBox.LL.Y
	}
	if urx > pageBox.UR.X {
		urx = pageBox.UR.X
	}
	if ury > pageBox.UR.Y {
		ury = pageBox.UR.Y
	}

	box := types.NewRectangle(llx, lly, urx, ury)
	d.logger.Trace("page %d: content box [%.2f %.2f %.2f %.2f]", pageNum+1, llx, lly, urx, ury)

	return box, true, nil
}

// ContentBounds scans img for pixels darker than threshold (fraction of
// full brightness per channel) and returns their bounding box in pixel
// coordinates, Max exclusive. ok is false when every pixel is blank.
func ContentBounds(img image.Image, threshold float64) (pixels image.Rectangle, ok bool) {
	bounds := img.Bounds()
	limit := uint32(threshold * 0xffff)

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r > limit && g > limit && b > limit {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}

	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

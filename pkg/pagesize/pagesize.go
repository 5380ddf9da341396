package pagesize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PointsPerInch is the PDF user-space unit density.
const PointsPerInch = 72.0

// ErrInvalidSpec is wrapped by every size resolution failure.
var ErrInvalidSpec = errors.New("invalid size specification")

type Orientation int

const (
	OrientationDefault Orientation = iota
	OrientationPortrait
	OrientationLandscape
)

// paperSizes maps lowercase paper names to portrait dimensions in points.
// Values follow the MuPDF paper size table.
var paperSizes = map[string]types.Dim{
	"a0":  {Width: 2384, Height: 3370},
	"a1":  {Width: 1684, Height: 2384},
	"a2":  {Width: 1191, Height: 1684},
	"a3":  {Width: 842, Height: 1191},
	"a4":  {Width: 595, Height: 842},
	"a5":  {Width: 420, Height: 595},
	"a6":  {Width: 298, Height: 420},
	"a7":  {Width: 210, Height: 298},
	"a8":  {Width: 147, Height: 210},
	"a9":  {Width: 105, Height: 147},
	"a10": {Width: 74, Height: 105},

	"b0":  {Width: 2835, Height: 4008},
	"b1":  {Width: 2004, Height: 2835},
	"b2":  {Width: 1417, Height: 2004},
	"b3":  {Width: 1001, Height: 1417},
	"b4":  {Width: 709, Height: 1001},
	"b5":  {Width: 499, Height: 709},
	"b6":  {Width: 354, Height: 499},
	"b7":  {Width: 249, Height: 354},
	"b8":  {Width: 176, Height: 249},
	"b9":  {Width: 125, Height: 176},
	"b10": {Width: 88, Height: 125},

	"c0":  {Width: 2599, Height: 3677},
	"c1":  {Width: 1837, Height: 2599},
	"c2":  {Width: 1298, Height: 1837},
	"c3":  {Width: 918, Height: 1298},
	"c4":  {Width: 649, Height: 918},
	"c5":  {Width: 459, Height: 649},
	"c6":  {Width: 323, Height: 459},
	"c7":  {Width: 230, Height: 323},
	"c8":  {Width: 162, Height: 230},
	"c9":  {Width: 113, Height: 162},
	"c10": {Width: 79, Height: 113},

	"card-4x6": {Width: 288, Height: 432},
	"card-5x7": {Width: 360, Height: 504},

	"commercial": {Width: 297, Height: 684},
	"executive":  {Width: 522, Height: 756},
	"invoice":    {Width: 396, Height: 612},
	"ledger":     {Width: 792, Height: 1224},
	"legal":      {Width: 612, Height: 1008},
	"legal-13":   {Width: 612, Height: 936},
	"letter":     {Width: 612, Height: 792},
	"monarch":    {Width: 279, Height: 540},
}

// aliases maps alternate names onto table entries.
var aliases = map[string]string{
	"tabloid": "ledger",
}

// Resolve turns a size specification into page dimensions in points.
//
// The spec is either WIDTHxHEIGHT in inches (e.g. "8.5x11") or a paper
// name (e.g. "letter", "a4"), matched case-insensitively. Orientation
// applies to paper names only; combining it with explicit dimensions is
// an error.
func Resolve(spec string, orient Orientation) (types.Dim, error) {
	low := strings.ToLower(strings.TrimSpace(spec))
	if low == "" {
		return types.Dim{}, fmt.Errorf("%w: empty size", ErrInvalidSpec)
	}

	if dim, ok := parseExplicit(low); ok {
		if orient != OrientationDefault {
			return types.Dim{}, fmt.Errorf("%w: orientation flags cannot be used with explicit WIDTHxHEIGHT dimensions", ErrInvalidSpec)
		}
		if dim.Width <= 0 || dim.Height <= 0 {
			return types.Dim{}, fmt.Errorf("%w: dimensions must be positive in %q", ErrInvalidSpec, spec)
		}
		return dim, nil
	}

	name := low
	if target, ok := aliases[name]; ok {
		name = target
	}

	dim, ok := paperSizes[name]
	if !ok {
		return types.Dim{}, fmt.Errorf("%w: unknown paper size %q, use WIDTHxHEIGHT (e.g. '8.5x11') or a paper name (e.g. 'letter', 'a4')", ErrInvalidSpec, spec)
	}

	if orient == OrientationLandscape {
		dim.Width, dim.Height = dim.Height, dim.Width
	}

	return dim, nil
}

// parseExplicit reports whether spec has the WIDTHxHEIGHT shape. Paper
// names containing an 'x' (e.g. "card-4x6") fall through to the table
// because their halves do not parse as numbers.
func parseExplicit(spec string) (types.Dim, bool) {
	parts := strings.Split(spec, "x")
	if len(parts) != 2 {
		return types.Dim{}, false
	}

	w, errW := strconv.ParseFloat(parts[0], 64)
	h, errH := strconv.ParseFloat(parts[1], 64)
	if errW != nil || errH != nil {
		return types.Dim{}, false
	}

	return types.Dim{Width: w * PointsPerInch, Height: h * PointsPerInch}, true
}

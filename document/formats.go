package document

import (
	"image"
	"strings"
)

// PageSize is a physical page size in millimetres.
type PageSize struct {
	W float64
	H float64
}

const mmPerInch = 25.4

// Named page formats: standard paper sizes, reader-book form factors and a
// square layout. "custom" is derived from the first frame instead.
var formats = map[string]PageSize{
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
	"digest": {139.7, 215.9},
	"pocket": {108, 174.6},
	"square": {210, 210},
}

// customHeightMM is the fixed page height the "custom" format is built at;
// its width follows the first frame's aspect ratio.
const customHeightMM = 260.0

// ResolvePageSize maps a format name onto physical page dimensions.
// Unknown names resolve to a4.
func ResolvePageSize(name string, first image.Image) PageSize {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "custom" && first != nil {
		b := first.Bounds()
		if b.Dy() > 0 {
			return PageSize{
				W: customHeightMM * float64(b.Dx()) / float64(b.Dy()),
				H: customHeightMM,
			}
		}
	}
	if s, ok := formats[name]; ok {
		return s
	}
	return formats["a4"]
}

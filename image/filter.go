package image

import (
	"sort"

	"github.com/nfnt/resize"
)

// DefaultFilter is used when no filter name is given
const DefaultFilter = "bicubic"

var filters = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// FilterNames returns the accepted interpolation names, sorted
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupFilter(name string) (resize.InterpolationFunction, bool) {
	if name == "" {
		name = DefaultFilter
	}
	interp, ok := filters[name]
	return interp, ok
}

package resizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-imsto/imsizer/size"
)

// errors of geometry
var (
	ErrInvalidSize = errors.New("invalid size")
	ErrUnknownMode = errors.New("unknown resize mode")
	ErrDegenerate  = errors.New("degenerate geometry")
)

// ScaleGeometry is the scale step, Width and Height are the resolved output dimensions
type ScaleGeometry struct {
	Width, Height    int
	PreserveAspect   bool
	OnlyShrinkLarger bool
}

// Region is a crop window on the scaled image
type Region struct {
	Width, Height int
	X, Y          int
}

// Canvas is the pad background, X and Y place the scaled image on it
type Canvas struct {
	Width, Height int
	X, Y          int
	Background    string
}

// Geometry is what a backend must do for one spec
type Geometry struct {
	Scale ScaleGeometry
	Crop  *Region
	Pad   *Canvas
}

// Size returns the final output dimensions
func (g Geometry) Size() (width, height int) {
	switch {
	case g.Crop != nil:
		return g.Crop.Width, g.Crop.Height
	case g.Pad != nil:
		return g.Pad.Width, g.Pad.Height
	}
	return g.Scale.Width, g.Scale.Height
}

func (g Geometry) String() string {
	s := fmt.Sprintf("scale %dx%d", g.Scale.Width, g.Scale.Height)
	if g.Crop != nil {
		s += fmt.Sprintf(" crop %dx%d+%d+%d", g.Crop.Width, g.Crop.Height, g.Crop.X, g.Crop.Y)
	}
	if g.Pad != nil {
		s += fmt.Sprintf(" pad %dx%d+%d+%d %s", g.Pad.Width, g.Pad.Height, g.Pad.X, g.Pad.Y, g.Pad.Background)
	}
	return s
}

// Compute works out the geometry turning a srcW x srcH image into spec
func Compute(srcW, srcH int, spec size.Spec) (g Geometry, err error) {
	if !spec.Valid() {
		err = fmt.Errorf("%w: target %dx%d", ErrInvalidSize, spec.Width, spec.Height)
		return
	}
	if srcW <= 0 || srcH <= 0 {
		err = fmt.Errorf("%w: source %dx%d", ErrInvalidSize, srcW, srcH)
		return
	}

	switch spec.Mode {
	case size.ModeFit:
		g.Scale = fit(srcW, srcH, spec.Width, spec.Height)
	case size.ModeStretch:
		g.Scale = stretch(srcW, srcH, spec.Width, spec.Height)
	case size.ModePad:
		g.Scale = fit(srcW, srcH, spec.Width, spec.Height)
		g.Pad = &Canvas{
			Width:      spec.Width,
			Height:     spec.Height,
			X:          (spec.Width - g.Scale.Width) / 2,
			Y:          (spec.Height - g.Scale.Height) / 2,
			Background: spec.Background,
		}
	case size.ModeCrop:
		g.Scale, g.Crop = crop(srcW, srcH, spec.Width, spec.Height)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownMode, spec.Mode)
		return
	}

	if g.Scale.Width <= 0 || g.Scale.Height <= 0 {
		err = fmt.Errorf("%w: %dx%d to %s", ErrDegenerate, srcW, srcH, spec)
	}
	return
}

// fits within tw x th keeping aspect, never enlarges
func fit(sw, sh, tw, th int) ScaleGeometry {
	sg := ScaleGeometry{Width: sw, Height: sh, PreserveAspect: true, OnlyShrinkLarger: true}
	if sw <= tw && sh <= th {
		return sg
	}
	ratio := math.Min(float64(tw)/float64(sw), float64(th)/float64(sh))
	sg.Width = min(tw, int(math.Round(float64(sw)*ratio)))
	sg.Height = min(th, int(math.Round(float64(sh)*ratio)))
	return sg
}

// exactly tw x th, unless the source already fits
func stretch(sw, sh, tw, th int) ScaleGeometry {
	sg := ScaleGeometry{Width: sw, Height: sh, OnlyShrinkLarger: true}
	if sw <= tw && sh <= th {
		return sg
	}
	sg.Width, sg.Height = tw, th
	return sg
}

// scales to cover tw x th then cuts the centered window
func crop(sw, sh, tw, th int) (ScaleGeometry, *Region) {
	sg := ScaleGeometry{PreserveAspect: true}
	r := &Region{Width: tw, Height: th}

	dx := float64(tw) / float64(sw)
	dy := float64(th) / float64(sh)
	if dx > dy {
		sg.Width = tw
		sg.Height = int(math.Round(float64(sh) * dx))
		r.Y = (sg.Height - th) / 2
	} else {
		sg.Height = th
		sg.Width = int(math.Round(float64(sw) * dy))
		r.X = (sg.Width - tw) / 2
	}
	return sg, r
}

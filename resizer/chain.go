package resizer

import (
	"image"

	zlog "github.com/go-imsto/imsizer/log"
	"github.com/go-imsto/imsizer/size"
)

// Backend does the pixel work for a computed Geometry
type Backend interface {
	Dimensions(m image.Image) (width, height int)
	Scale(m image.Image, sg ScaleGeometry) (image.Image, error)
	Crop(m image.Image, r Region) (image.Image, error)
	Composite(c Canvas, fg image.Image) (image.Image, error)
	// Strip drops profiles and comments, a backend whose images carry none may return m unchanged
	Strip(m image.Image) image.Image
}

// SaveFunc persists the result of one spec
type SaveFunc func(alias string, m image.Image) error

// Outcome is the result of one spec against one source
type Outcome struct {
	Alias    string
	Spec     size.Spec
	Geometry Geometry
	Err      error
}

// OK ...
func (o Outcome) OK() bool {
	return o.Err == nil
}

// chainState is replaced after every step, never mutated
type chainState struct {
	original image.Image
	current  image.Image
}

func (cs chainState) source(sp size.Spec) image.Image {
	if sp.UsePrevious {
		return cs.current
	}
	return cs.original
}

func (cs chainState) advance(m image.Image) chainState {
	return chainState{original: cs.original, current: m}
}

// Process runs specs in order against src.
//
// A spec with UsePrevious starts from the output of the step before it,
// every other spec starts from src. A failing spec is recorded and skipped.
func Process(b Backend, src image.Image, specs []size.Spec, save SaveFunc) []Outcome {
	outcomes := make([]Outcome, 0, len(specs))
	st := chainState{original: src, current: src}
	for _, sp := range specs {
		oc := Outcome{Alias: sp.Alias, Spec: sp}
		in := st.source(sp)
		st = st.advance(in)

		w, h := b.Dimensions(in)
		oc.Geometry, oc.Err = Compute(w, h, sp)
		if oc.Err != nil {
			logger().Infow("geometry fail", "spec", sp.String(), "src", []int{w, h}, "err", oc.Err)
			outcomes = append(outcomes, oc)
			continue
		}

		var out image.Image
		out, oc.Err = apply(b, in, oc.Geometry)
		if oc.Err != nil {
			logger().Infow("apply fail", "spec", sp.String(), "geometry", oc.Geometry.String(), "err", oc.Err)
			outcomes = append(outcomes, oc)
			continue
		}
		st = st.advance(out)

		if save != nil {
			oc.Err = save(sp.Alias, out)
		}
		outcomes = append(outcomes, oc)
	}
	return outcomes
}

func apply(b Backend, m image.Image, g Geometry) (out image.Image, err error) {
	out, err = b.Scale(m, g.Scale)
	if err != nil {
		return
	}
	if g.Crop != nil {
		out, err = b.Crop(out, *g.Crop)
		if err != nil {
			return
		}
	}
	if g.Pad != nil {
		out, err = b.Composite(*g.Pad, out)
		if err != nil {
			return
		}
	}
	return b.Strip(out), nil
}

func logger() zlog.Logger {
	return zlog.Get()
}

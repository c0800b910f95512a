package resizer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-imsto/imsizer/size"
)

// fakeImage only knows its bounds and where it came from
type fakeImage struct {
	w, h int
	from string
}

func (f *fakeImage) ColorModel() color.Model { return color.RGBAModel }
func (f *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }
func (f *fakeImage) At(x, y int) color.Color { return color.White }

type fakeBackend struct {
	calls    []string
	failOn   string
	stripped int
}

func (b *fakeBackend) Dimensions(m image.Image) (int, int) {
	r := m.Bounds()
	return r.Dx(), r.Dy()
}

func (b *fakeBackend) Scale(m image.Image, sg ScaleGeometry) (image.Image, error) {
	b.calls = append(b.calls, fmt.Sprintf("scale %s %dx%d", m.(*fakeImage).from, sg.Width, sg.Height))
	if b.failOn == "scale" {
		return nil, errors.New("scale boom")
	}
	return &fakeImage{w: sg.Width, h: sg.Height, from: "scaled"}, nil
}

func (b *fakeBackend) Crop(m image.Image, r Region) (image.Image, error) {
	b.calls = append(b.calls, fmt.Sprintf("crop %dx%d+%d+%d", r.Width, r.Height, r.X, r.Y))
	return &fakeImage{w: r.Width, h: r.Height, from: "cropped"}, nil
}

func (b *fakeBackend) Composite(c Canvas, fg image.Image) (image.Image, error) {
	b.calls = append(b.calls, fmt.Sprintf("pad %dx%d+%d+%d %s", c.Width, c.Height, c.X, c.Y, c.Background))
	if b.failOn == "pad" {
		return nil, errors.New("bad color")
	}
	return &fakeImage{w: c.Width, h: c.Height, from: "padded"}, nil
}

func (b *fakeBackend) Strip(m image.Image) image.Image {
	b.stripped++
	return m
}

type saved struct {
	alias string
	w, h  int
}

func collect(dst *[]saved) SaveFunc {
	return func(alias string, m image.Image) error {
		r := m.Bounds()
		*dst = append(*dst, saved{alias, r.Dx(), r.Dy()})
		return nil
	}
}

func TestProcessChaining(t *testing.T) {
	src := &fakeImage{w: 1600, h: 1200, from: "orig"}
	specs := size.ParseList("a:A,s:800x600", "a:B,u:true,s:400x300", "a:C,s:100x100")

	b := &fakeBackend{}
	var out []saved
	outcomes := Process(b, src, specs, collect(&out))
	require.Len(t, outcomes, 3)
	for _, oc := range outcomes {
		assert.True(t, oc.OK(), oc.Alias)
	}
	assert.Equal(t, []string{
		"scale orig 800x600",
		"scale scaled 400x300",
		"scale orig 100x75",
	}, b.calls)
	assert.Equal(t, []saved{{"A", 800, 600}, {"B", 400, 300}, {"C", 100, 75}}, out)
	assert.Equal(t, 3, b.stripped)
}

func TestProcessPreviousUsesOutputDimensions(t *testing.T) {
	src := &fakeImage{w: 1000, h: 500, from: "orig"}
	specs := size.ParseList("a:sq,m:crop,s:300x300", "a:half,u:true,m:crop,s:150x100")

	b := &fakeBackend{}
	outcomes := Process(b, src, specs, nil)
	require.Len(t, outcomes, 2)
	// second geometry is computed from the 300x300 crop
	assert.Equal(t, 150, outcomes[1].Geometry.Scale.Width)
	assert.Equal(t, 150, outcomes[1].Geometry.Scale.Height)
	assert.Equal(t, Region{Width: 150, Height: 100, X: 0, Y: 25}, *outcomes[1].Geometry.Crop)
	assert.Equal(t, []string{
		"scale orig 600x300",
		"crop 300x300+150+0",
		"scale cropped 150x150",
		"crop 150x100+0+25",
	}, b.calls)
}

func TestProcessFailuresContinue(t *testing.T) {
	src := &fakeImage{w: 640, h: 480, from: "orig"}
	specs := size.ParseList("s:0x0", "m:zoom,s:10x10", "a:ok,s:64x48", "a:late,u:true,s:32x24")

	b := &fakeBackend{}
	var out []saved
	outcomes := Process(b, src, specs, collect(&out))
	require.Len(t, outcomes, 4)
	assert.ErrorIs(t, outcomes[0].Err, ErrInvalidSize)
	assert.ErrorIs(t, outcomes[1].Err, ErrUnknownMode)
	assert.True(t, outcomes[2].OK())
	assert.True(t, outcomes[3].OK())
	assert.Equal(t, []saved{{"ok", 64, 48}, {"late", 32, 24}}, out)
}

func TestProcessPreviousAfterFailureUsesOriginal(t *testing.T) {
	src := &fakeImage{w: 640, h: 480, from: "orig"}
	specs := size.ParseList("a:A,s:320x240", "a:bad,s:0x0", "a:B,u:true,s:64x48")

	b := &fakeBackend{}
	Process(b, src, specs, nil)
	assert.Equal(t, []string{"scale orig 320x240", "scale orig 64x48"}, b.calls)
}

func TestProcessBackendAndSaveErrors(t *testing.T) {
	src := &fakeImage{w: 640, h: 480, from: "orig"}

	b := &fakeBackend{failOn: "pad"}
	outcomes := Process(b, src, size.ParseList("a:p,m:pad,b:nope,s:100x100", "a:f,s:100x100"), nil)
	assert.Error(t, outcomes[0].Err)
	assert.True(t, outcomes[1].OK())

	errSave := errors.New("disk full")
	b = &fakeBackend{}
	outcomes = Process(b, src, size.ParseList("a:x,s:100x100", "a:y,s:50x50"), func(string, image.Image) error {
		return errSave
	})
	assert.ErrorIs(t, outcomes[0].Err, errSave)
	assert.ErrorIs(t, outcomes[1].Err, errSave)
}

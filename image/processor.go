package image

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"

	zlog "github.com/go-imsto/imsizer/log"
	"github.com/go-imsto/imsizer/resizer"
	"github.com/go-imsto/imsizer/size"
)

// Option ...
type Option func(*Processor)

// WithQuality sets the jpeg quality, lower values are raised to MinJPEGQuality
func WithQuality(q int) Option {
	return func(p *Processor) {
		p.quality = q
	}
}

// WithFilter picks the interpolation by name, see FilterNames
func WithFilter(name string) Option {
	return func(p *Processor) {
		p.filter = name
	}
}

// WithHint shrinks sources larger than "WxH" right after decoding, never below it
func WithHint(hint string) Option {
	return func(p *Processor) {
		if w, h, ok := size.ParseDimensions(hint); ok && w > 0 && h > 0 {
			p.hintW, p.hintH = uint(w), uint(h)
		}
	}
}

// Processor is the image backend built on nfnt/resize and image/draw
type Processor struct {
	quality      int
	filter       string
	interp       resize.InterpolationFunction
	hintW, hintH uint
}

var _ resizer.Backend = (*Processor)(nil)

// NewProcessor ...
func NewProcessor(opts ...Option) (*Processor, error) {
	p := &Processor{quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(p)
	}
	interp, ok := lookupFilter(p.filter)
	if !ok {
		return nil, fmt.Errorf("unknown filter %q", p.filter)
	}
	p.interp = interp
	if p.quality < MinJPEGQuality {
		p.quality = MinJPEGQuality
	}
	return p, nil
}

// Dimensions ...
func (p *Processor) Dimensions(m image.Image) (int, int) {
	b := m.Bounds()
	return b.Dx(), b.Dy()
}

// Scale resizes to exactly the resolved dimensions of sg
func (p *Processor) Scale(m image.Image, sg resizer.ScaleGeometry) (image.Image, error) {
	if sg.Width <= 0 || sg.Height <= 0 {
		return nil, fmt.Errorf("%w: scale to %dx%d", resizer.ErrDegenerate, sg.Width, sg.Height)
	}
	if w, h := p.Dimensions(m); w == sg.Width && h == sg.Height {
		return m, nil
	}
	return resize.Resize(uint(sg.Width), uint(sg.Height), m, p.interp), nil
}

// Crop ...
func (p *Processor) Crop(m image.Image, r resizer.Region) (image.Image, error) {
	ob := m.Bounds()
	rect := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Add(ob.Min)
	if rect.Empty() || !rect.In(ob) {
		return nil, fmt.Errorf("%w: %v in %v", ErrOutOfBounds, rect, ob)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(dst, dst.Bounds(), m, rect.Min, draw.Src)
	return dst, nil
}

// Composite copies fg onto a new canvas filled with the background color
func (p *Processor) Composite(c resizer.Canvas, fg image.Image) (image.Image, error) {
	bg, err := ParseColor(c.Background)
	if err != nil {
		return nil, err
	}
	fb := fg.Bounds()
	if fb.Dx()+c.X > c.Width || fb.Dy()+c.Y > c.Height || c.X < 0 || c.Y < 0 {
		return nil, fmt.Errorf("%w: %dx%d at %d,%d on %dx%d", ErrOutOfBounds, fb.Dx(), fb.Dy(), c.X, c.Y, c.Width, c.Height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(c.X, c.Y, c.X+fb.Dx(), c.Y+fb.Dy()), fg, fb.Min, draw.Src)
	return dst, nil
}

// Strip returns m as is: decoded images hold pixels only and the encoders write no metadata
func (p *Processor) Strip(m image.Image) image.Image {
	return m
}

func logger() zlog.Logger {
	return zlog.Get()
}

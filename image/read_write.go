package image

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	MinJPEGQuality     = jpeg.DefaultQuality // 75
	DefaultJPEGQuality = 88
)

var extFormats = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// Ext2Format returns the encoder name for a file extension, empty if none
func Ext2Format(ext string) string {
	return extFormats[strings.ToLower(ext)]
}

// Decode reads an image file, the size hint applies here
func (p *Processor) Decode(filename string) (image.Image, string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrorFormat, err)
	}
	if p.hintW > 0 && p.hintH > 0 {
		ob := m.Bounds()
		m = p.shrinkToHint(m)
		if nb := m.Bounds(); nb != ob {
			logger().Debugw("decode hint", "name", filename, "orig", ob.Size(), "now", nb.Size())
		}
	}
	return m, format, nil
}

// shrinkToHint scales m down while it still covers the hint on both axes,
// sources already at or below the hint come back unchanged
func (p *Processor) shrinkToHint(m image.Image) image.Image {
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return m
	}
	hw, hh := int(p.hintW), int(p.hintH)
	s := math.Max(float64(hw)/float64(w), float64(hh)/float64(h))
	if s >= 1 {
		return m
	}
	nw := max(int(math.Round(float64(w)*s)), hw)
	nh := max(int(math.Round(float64(h)*s)), hh)
	if nw >= w && nh >= h {
		return m
	}
	return resize.Resize(uint(nw), uint(nh), m, resize.Bilinear)
}

// Encode writes m to filename in the format of its extension.
// The file appears only once fully written.
func (p *Processor) Encode(m image.Image, filename string) (*Attr, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	format := Ext2Format(ext)
	if format == "" {
		return nil, fmt.Errorf("%w: %q", ErrorFormat, ext)
	}

	out, err := os.CreateTemp(filepath.Dir(filename), ".imsizer-*"+ext)
	if err != nil {
		return nil, err
	}
	tmp := out.Name()
	defer os.Remove(tmp)

	cw := &countWriter{w: out}
	err = p.encode(cw, m, format)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	if err = os.Rename(tmp, filename); err != nil {
		return nil, err
	}

	b := m.Bounds()
	attr := NewAttr(b.Dx(), b.Dy(), ext)
	attr.Size = Size(cw.Len())
	return attr, nil
}

func (p *Processor) encode(w io.Writer, m image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: p.quality})
	case "png":
		return png.Encode(w, m)
	case "gif":
		return gif.Encode(w, m, nil)
	case "bmp":
		return bmp.Encode(w, m)
	case "tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}
	return ErrorFormat
}

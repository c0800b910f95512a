package image

import (
	"fmt"
	"mime"
)

type Dimension uint32
type Size uint32

// Attr describes an encoded output
type Attr struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
	Size   Size      `json:"size"`
	Ext    string    `json:"ext,omitempty"`
	Mime   string    `json:"mime,omitempty"`
}

func (a Attr) String() string {
	return fmt.Sprintf("%dx%d %s %d bytes", a.Width, a.Height, a.Mime, a.Size)
}

// NewAttr ...
func NewAttr(w, h int, ext string) *Attr {
	return &Attr{
		Width:  Dimension(w),
		Height: Dimension(h),
		Ext:    ext,
		Mime:   mime.TypeByExtension(ext),
	}
}

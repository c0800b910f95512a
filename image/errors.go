package image

import (
	"errors"
)

var (
	ErrorFormat     = errors.New("invalid or unsupported image format")
	ErrInvalidColor = errors.New("invalid color")
	ErrOutOfBounds  = errors.New("region out of image bounds")
)

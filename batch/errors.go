package batch

import "fmt"

// DecodeError means the source could not be read as an image, the whole file is skipped
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError means one output could not be written
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %s", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

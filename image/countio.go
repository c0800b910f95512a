package image

import "io"

// countWriter passes writes through and counts the bytes
type countWriter struct {
	w io.Writer
	n int64
}

// Write implements for io.Writer
func (cw *countWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	cw.n += int64(n)
	return
}

// Len return count value
func (cw *countWriter) Len() int64 {
	return cw.n
}

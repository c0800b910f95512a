package batch

// Option ...
type Option func(*Runner)

// WithMeta writes an EXIF sidecar per source into meta/
func WithMeta(on bool) Option {
	return func(r *Runner) {
		r.meta = on
	}
}

// WithContents writes a manifest per source into contents/
func WithContents(on bool) Option {
	return func(r *Runner) {
		r.contents = on
	}
}

// WithJobs sets how many files are processed at once
func WithJobs(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.jobs = n
		}
	}
}

// WithExif replaces the EXIF reader
func WithExif(fn ExifFunc) Option {
	return func(r *Runner) {
		r.exif = fn
	}
}

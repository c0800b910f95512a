package batch

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	cimg "github.com/go-imsto/imsizer/image"
	zlog "github.com/go-imsto/imsizer/log"
	"github.com/go-imsto/imsizer/resizer"
	"github.com/go-imsto/imsizer/size"
	"github.com/go-imsto/imsizer/utils"
)

// dirs for sidecars
const (
	MetaDir     = "meta"
	ContentsDir = "contents"

	metaExt     = ".exif"
	contentsExt = ".cnt"
)

// Backend is a resizer.Backend that can also read and write files
type Backend interface {
	resizer.Backend
	Decode(filename string) (image.Image, string, error)
	Encode(m image.Image, filename string) (*cimg.Attr, error)
}

// ExifFunc lists "Name=Value" lines of a source file
type ExifFunc func(filename string) ([]string, error)

// Output is one spec result of a source file
type Output struct {
	resizer.Outcome
	Path string
	Attr *cimg.Attr
}

// FileResult ...
type FileResult struct {
	Path     string
	Err      error
	Meta     string
	Contents string
	Outputs  []Output
}

// Failed reports a file level error or any failed output
func (fr FileResult) Failed() bool {
	if fr.Err != nil {
		return true
	}
	for _, o := range fr.Outputs {
		if !o.OK() {
			return true
		}
	}
	return false
}

// Report of a run, Files are in source order
type Report struct {
	Files   []FileResult
	Elapsed time.Duration
}

// Failed counts files with any failure
func (rp *Report) Failed() (n int) {
	for _, fr := range rp.Files {
		if fr.Failed() {
			n++
		}
	}
	return
}

// Produced counts written outputs
func (rp *Report) Produced() (n int) {
	for _, fr := range rp.Files {
		for _, o := range fr.Outputs {
			if o.OK() {
				n++
			}
		}
	}
	return
}

// Runner converts every image of a source directory
type Runner struct {
	source   string
	dest     string
	specs    size.List
	backend  Backend
	meta     bool
	contents bool
	jobs     int
	exif     ExifFunc
}

// New ...
func New(source, dest string, specs size.List, b Backend, opts ...Option) (*Runner, error) {
	if !utils.IsDir(source) {
		return nil, fmt.Errorf("%q is not a directory", source)
	}
	if b == nil {
		return nil, fmt.Errorf("nil backend")
	}
	r := &Runner{
		source:  source,
		dest:    utils.Abs(dest),
		specs:   specs,
		backend: b,
		jobs:    1,
		exif:    cimg.ExifLines,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Prepare creates the alias and sidecar directories
func (r *Runner) Prepare() error {
	dirs := make([]string, 0, len(r.specs)+2)
	for _, sp := range r.specs {
		if sp.Alias != "" {
			dirs = append(dirs, filepath.Join(r.dest, sp.Alias))
		}
	}
	if r.meta {
		dirs = append(dirs, filepath.Join(r.dest, MetaDir))
	}
	if r.contents {
		dirs = append(dirs, filepath.Join(r.dest, ContentsDir))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.FileMode(0755)); err != nil {
			return err
		}
	}
	return nil
}

// Sources lists regular files of the source directory by name
func (r *Runner) Sources() ([]string, error) {
	entries, err := os.ReadDir(r.source)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		fpath := utils.Abs(filepath.Join(r.source, e.Name()))
		if utils.IsRegular(fpath) {
			files = append(files, fpath)
		}
	}
	return files, nil
}

// Run processes all sources, failures stay in the report and never stop the batch
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	files, err := r.Sources()
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, fpath := range files {
		if gctx.Err() != nil {
			break
		}
		i, fpath := i, fpath
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.ProcessFile(fpath)
			return nil
		})
	}
	if err = g.Wait(); err == nil {
		err = ctx.Err()
	}

	rp := &Report{Files: make([]FileResult, 0, len(results))}
	for _, fr := range results {
		if fr.Path != "" {
			rp.Files = append(rp.Files, fr)
		}
	}
	rp.Elapsed = time.Since(start)
	logger().Infow("done", "files", len(rp.Files), "outputs", rp.Produced(), "failed", rp.Failed(), "elapsed", rp.Elapsed)
	return rp, err
}

// ProcessFile runs the whole chain for one source
func (r *Runner) ProcessFile(fpath string) (fr FileResult) {
	fr.Path = fpath
	name := filepath.Base(fpath)
	logger().Infow("process", "file", fpath)

	src, format, err := r.backend.Decode(fpath)
	if err != nil {
		fr.Err = &DecodeError{Path: fpath, Err: err}
		logger().Warnw("decode fail", "file", fpath, "err", err)
		return
	}
	logger().Debugw("decoded", "file", fpath, "format", format, "bounds", src.Bounds().Size())

	var lines []string
	if r.meta {
		fr.Meta = filepath.Join(r.dest, MetaDir, utils.ReplaceExt(name, metaExt))
		if err = r.writeMeta(fpath, fr.Meta); err != nil {
			fr.Err = err
			logger().Warnw("write meta fail", "file", fpath, "err", err)
		} else {
			lines = append(lines, "meta="+fr.Meta)
		}
	}

	var attrs []*cimg.Attr
	save := func(alias string, m image.Image) error {
		dst := filepath.Join(r.dest, alias, name)
		attr, err := r.backend.Encode(m, dst)
		if err != nil {
			return &EncodeError{Path: dst, Err: err}
		}
		attrs = append(attrs, attr)
		return nil
	}
	outcomes := resizer.Process(r.backend, src, r.specs, save)

	for _, oc := range outcomes {
		out := Output{Outcome: oc}
		if oc.OK() {
			out.Path = filepath.Join(r.dest, oc.Alias, name)
			out.Attr, attrs = attrs[0], attrs[1:]
			lines = append(lines, oc.Alias+"="+out.Path)
			logger().Debugw("written", "alias", oc.Alias, "path", out.Path, "attr", out.Attr.String())
		} else {
			logger().Infow("size fail", "file", fpath, "alias", oc.Alias, "err", oc.Err)
		}
		fr.Outputs = append(fr.Outputs, out)
	}

	if r.contents {
		fr.Contents = filepath.Join(r.dest, ContentsDir, utils.ReplaceExt(name, contentsExt))
		if err = writeLines(fr.Contents, lines); err != nil && fr.Err == nil {
			fr.Err = err
			logger().Warnw("write contents fail", "file", fpath, "err", err)
		}
	}
	return
}

// writeMeta always leaves a sidecar, unreadable EXIF gives an empty one
func (r *Runner) writeMeta(fpath, dst string) error {
	lines, err := r.exif(fpath)
	if err != nil {
		logger().Infow("read exif fail", "file", fpath, "err", err)
		lines = nil
	}
	return writeLines(dst, lines)
}

func writeLines(filename string, lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := utils.ReadyDir(filename); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(sb.String()), os.FileMode(0644))
}

func logger() zlog.Logger {
	return zlog.Get()
}

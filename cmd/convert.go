package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/go-imsto/imsizer/batch"
	"github.com/go-imsto/imsizer/config"
	cimg "github.com/go-imsto/imsizer/image"
	zlog "github.com/go-imsto/imsizer/log"
	"github.com/go-imsto/imsizer/size"
)

var cmdConvert = &Command{
	Name:  "convert",
	Args:  "-source dir -dest dir -size spec [-size spec ...]",
	Short: "resize every image of a directory",
	Long: `
Resize every image file of the source directory into one subdirectory of
dest per size. A size is written as

    [a:<alias>,][m:fit|stretch|pad|crop,][b:<bgcolor>,][u:true,]s:<width>x<height>

The alias defaults to the s value. With u:true the size starts from the
output of the size before it instead of the original image.

Values are read from flags, then the -conf file (yaml, json or toml, keys
named like the flags), then IMSIZER_* environment variables.
`,
}

var (
	conv      = config.Current
	convSizes size.List
	confFile  string
)

func init() {
	cmdConvert.Run = runConvert
	f := &cmdConvert.Flag
	f.StringVar(&conv.Source, "source", conv.Source, "source directory")
	f.StringVar(&conv.Dest, "dest", conv.Dest, "destination directory, created if missing")
	f.Var(&convSizes, "size", "add resize operation, may be repeated")
	f.StringVar(&confFile, "conf", "", "read configuration from the file")
	f.BoolVar(&conv.Verbose, "verbose", conv.Verbose, "verbose output")
	f.BoolVar(&conv.Meta, "meta", conv.Meta, "extract EXIF of every source into meta/")
	f.BoolVar(&conv.Contents, "contents", conv.Contents, "write a manifest of outputs into contents/")
	f.StringVar(&conv.SourceSize, "src-size", conv.SourceSize, "hint to open sources at reduced size, WxH")
	f.IntVar(&conv.Jobs, "jobs", conv.Jobs, "files processed at once")
	f.IntVar(&conv.Quality, "quality", conv.Quality, "jpeg quality")
	f.StringVar(&conv.Filter, "filter", conv.Filter, "interpolation: "+strings.Join(cimg.FilterNames(), ", "))
	f.StringVar(&conv.LogFile, "log-file", conv.LogFile, "also log into the file, rotated")
}

func runConvert(args []string) bool {
	if len(args) > 0 {
		errorf("unexpected arguments: %s", strings.Join(args, " "))
		return false
	}

	set := make(map[string]bool)
	cmdConvert.Flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["size"] {
		conv.Sizes = convSizes
	}
	if confFile != "" {
		if err := config.LoadFile(confFile, &conv, set); err != nil {
			errorf("%s", err)
			setExitStatus(exitUsage)
			return true
		}
	}

	if err := conv.Validate(); err != nil {
		errorf("%s", err)
		setExitStatus(exitUsage)
		return true
	}

	zlogger, err := newLogger(conv.Verbose, conv.LogFile)
	if err != nil {
		errorf("init logger: %s", err)
		setExitStatus(exitUsage)
		return true
	}
	atExit(func() { _ = zlogger.Sync() })
	zlog.Set(zlogger.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	setExitStatus(convert(ctx, &conv, os.Stdout))
	return true
}

// convert runs a validated config and returns the exit status
func convert(ctx context.Context, c *config.Config, out io.Writer) int {
	if c.Verbose {
		printConfig(out, c)
	}

	p, err := cimg.NewProcessor(
		cimg.WithQuality(c.Quality),
		cimg.WithFilter(c.Filter),
		cimg.WithHint(c.SourceSize),
	)
	if err != nil {
		errorf("%s", err)
		return exitUsage
	}

	r, err := batch.New(c.Source, c.Dest, c.Sizes, p,
		batch.WithMeta(c.Meta),
		batch.WithContents(c.Contents),
		batch.WithJobs(c.Jobs),
	)
	if err == nil {
		err = r.Prepare()
	}
	if err != nil {
		errorf("%s", err)
		return exitUsage
	}

	rp, err := r.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger().Errorw("run fail", "err", err)
	}
	if rp == nil {
		return exitFailed
	}

	if c.Verbose {
		for _, fr := range rp.Files {
			if fr.Err != nil {
				fmt.Fprintf(out, "Exception: %s\n", fr.Err)
			}
			for _, o := range fr.Outputs {
				if !o.OK() {
					fmt.Fprintf(out, "Exception: %s %s: %s\n", fr.Path, o.Alias, o.Err)
				}
			}
		}
		fmt.Fprintf(out, "Time spent: %d ms\n", rp.Elapsed.Milliseconds())
	}

	if err != nil || rp.Failed() > 0 {
		return exitFailed
	}
	return exitOK
}

func printConfig(w io.Writer, c *config.Config) {
	fmt.Fprintln(w, "Config params:")
	fmt.Fprintf(w, "source = %s\n", c.Source)
	fmt.Fprintf(w, "dest = %s\n", c.Dest)
	fmt.Fprintf(w, "src-size = %s\n", c.SourceSize)
	for i, sp := range c.Sizes {
		fmt.Fprintf(w, "size[%d] = %s\n", i, sp)
	}
}

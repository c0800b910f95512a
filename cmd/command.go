// Package cmd The command line tool for running imsizer.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-imsto/imsizer/config"
	zlog "github.com/go-imsto/imsizer/log"
)

// Command is one imsizer subcommand with its own flags
type Command struct {
	Name, Args  string
	Short, Long string
	Flag        flag.FlagSet
	Run         func(args []string) bool
}

func (cmd *Command) help(w io.Writer) {
	fmt.Fprintf(w, "usage: imsizer %s %s\n\n", cmd.Name, cmd.Args)
	fmt.Fprintln(w, strings.TrimSpace(cmd.Long))
	fmt.Fprintln(w)
	cmd.Flag.SetOutput(w)
	cmd.Flag.PrintDefaults()
}

// exit codes
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

var (
	exitStatus = exitOK
	exitMu     sync.Mutex
)

var commands = []*Command{
	cmdConvert,
	cmdVersion,
}

func setExitStatus(n int) {
	exitMu.Lock()
	if exitStatus < n {
		exitStatus = n
	}
	exitMu.Unlock()
}

func logger() zlog.Logger {
	return zlog.Get()
}

func lookup(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func Main() {
	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()
	setExitStatus(dispatch(flag.Args(), os.Stdout, os.Stderr))
	exit()
}

// dispatch runs the command named by args[0], help output goes to stdout
// when asked for and to stderr on misuse
func dispatch(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}
	if args[0] == "help" {
		if len(args) == 1 {
			usage(stdout)
			return exitOK
		}
		if cmd := lookup(args[1]); cmd != nil {
			cmd.help(stdout)
			return exitOK
		}
		fmt.Fprintf(stderr, "unknown help topic %q\n", args[1])
		return exitUsage
	}

	cmd := lookup(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "unknown command %q\nRun 'imsizer help' for usage.\n", args[0])
		return exitUsage
	}
	cmd.Flag.Usage = func() { cmd.help(stderr) }
	if err := cmd.Flag.Parse(args[1:]); err != nil {
		return exitUsage
	}
	if !cmd.Run(cmd.Flag.Args()) {
		fmt.Fprintln(stderr)
		cmd.help(stderr)
		return exitUsage
	}
	return exitOK
}

func errorf(format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "imsizer %s\n\nusage: imsizer command [arguments]\n\nThe commands are:\n", config.Version)
	for _, cmd := range commands {
		fmt.Fprintf(w, "    %-11s %s\n", cmd.Name, cmd.Short)
	}
	fmt.Fprintln(w, "\nUse \"imsizer help [command]\" for more information.")
}

var atExitFuncs []func()

func atExit(f func()) {
	atExitFuncs = append(atExitFuncs, f)
}

func exit() {
	for _, f := range atExitFuncs {
		f()
	}
	os.Exit(exitStatus)
}

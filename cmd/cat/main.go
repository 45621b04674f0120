package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/cat"
	"pkt.systems/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: cat [OPTION]... [FILE]...
Concatenate FILE(s) to standard output.

With no FILE, or when FILE is -, read standard input.

  -A, --show-all           equivalent to -vET
  -b, --number-nonblank    number nonempty output lines, overrides -n
  -e                       equivalent to -vE
  -E, --show-ends          display $ at end of each line
  -n, --number             number all output lines
  -s, --squeeze-blank      suppress repeated empty output lines
  -t                       equivalent to -vT
  -T, --show-tabs          display TAB characters as ^I
  -u                       (ignored)
  -v, --show-nonprinting   use ^ and M- notation, except for LFD and TAB
      --log-level LEVEL    diagnostic log level: debug, info, warn, error
  -h, --help               display this help and exit
      --version            output version information and exit

Examples:
  cat f - g  Output f's contents, then standard input, then g's contents.
  cat        Copy standard input to standard output.
`

func init() {
	version.SetDefaultModule("pkt.systems/cat")
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(report(err, os.Stderr))
}

// ExitError carries an exit code and an optional diagnostic.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// report writes the diagnostic for err to stderr and returns the exit code.
func report(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintf(stderr, "cat: %s\n", exitErr.Message)
		}
		return exitErr.Code
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(stderr, "cat: %v\n", e)
		}
		return exitError
	}
	fmt.Fprintf(stderr, "cat: %v\n", err)
	return exitError
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		flags       cat.Flags
		logLevel    string
		showVersion bool
	)

	fs := pflag.NewFlagSet("cat", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVarP(&flags.ShowAll, "show-all", "A", false, "equivalent to -vET")
	fs.BoolVarP(&flags.NumberNonblank, "number-nonblank", "b", false, "number nonempty output lines, overrides -n")
	fs.BoolVarP(&flags.E, "e", "e", false, "equivalent to -vE")
	fs.BoolVarP(&flags.ShowEnds, "show-ends", "E", false, "display $ at end of each line")
	fs.BoolVarP(&flags.Number, "number", "n", false, "number all output lines")
	fs.BoolVarP(&flags.SqueezeBlank, "squeeze-blank", "s", false, "suppress repeated empty output lines")
	fs.BoolVarP(&flags.T, "t", "t", false, "equivalent to -vT")
	fs.BoolVarP(&flags.ShowTabs, "show-tabs", "T", false, "display TAB characters as ^I")
	fs.BoolVarP(&flags.Unbuffered, "u", "u", false, "(ignored)")
	fs.BoolVarP(&flags.ShowNonPrinting, "show-nonprinting", "v", false, "use ^ and M- notation, except for LFD and TAB")
	fs.StringVar(&logLevel, "log-level", "warn", "diagnostic log level: debug, info, warn, error")
	fs.BoolVar(&showVersion, "version", false, "output version information and exit")
	// pflag needs a long name for every flag, so --e, --t and --u parse as
	// well. They are hidden and left out of the usage text.
	for _, name := range []string{"e", "t", "u"} {
		_ = fs.MarkHidden(name)
	}

	fs.SetInterspersed(true)
	fs.Usage = func() {
		fmt.Fprint(stdout, usage)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &ExitError{
			Code:    exitUsage,
			Message: fmt.Sprintf("%v\nTry 'cat --help' for more information.", err),
		}
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return nil
	}

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := cat.Resolve(flags)
	logger.Debug("options resolved",
		slog.Bool("number", opts.Number),
		slog.Bool("number_nonblank", opts.NumberNonblank),
		slog.Bool("show_ends", opts.ShowEnds),
		slog.Bool("show_tabs", opts.ShowTabs),
		slog.Bool("show_nonprinting", opts.ShowNonPrinting),
		slog.Bool("squeeze_blank", opts.SqueezeBlank),
	)

	return cat.Concatenate(cat.Request{
		Sources: fs.Args(),
		Stdin:   stdin,
		Writer:  stdout,
		Options: opts,
		Config: []cat.Option{
			cat.WithLogger(logger),
			cat.WithLineFlush(isTerminal(stdout)),
		},
	})
}

func parseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: expected debug|info|warn|error", value)
	}
	return level, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fern/internal/driver"
	"fern/internal/observ"
	"fern/internal/prof"
	"fern/internal/version"
)

// errReported означает, что команда уже напечатала диагностики и должна лишь вернуть 1.
var errReported = errors.New("errors reported")

// app holds the per-invocation state shared by the commands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	timer  *observ.Timer
	trace  *tracing
	prof   *prof.Session
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, timer: observ.NewTimer()}
	root := a.newRootCmd()
	root.SetArgs(inputFileArgs(args))
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	a.finish(root, err)
	if err == nil {
		return 0
	}
	reportError(stderr, err)
	return 1
}

// inputFileArgs: единственный аргумент, который называет существующий файл, всегда
// входной файл демо, даже если совпадает с именем подкоманды.
func inputFileArgs(args []string) []string {
	if len(args) != 1 || strings.HasPrefix(args[0], "-") {
		return args
	}
	if info, err := os.Stat(args[0]); err == nil && info.Mode().IsRegular() {
		// "--" останавливает поиск подкоманды в cobra
		return []string{"--", args[0]}
	}
	return args
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fern [input-file]",
		Short: "Fern language front-end",
		Long: `Fern parses a source file and prints its parse tree.
Without an input file a built-in fallback text is parsed.`,
		Version:           version.Version,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runDemo,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("config", "", "path to fern.toml (default: search upwards from the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = unlimited)")
	flags.String("diagnostics-format", "pretty", "diagnostics format on stderr (pretty|json)")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 1024, "events kept in ring mode")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(
		a.newTokenizeCmd(),
		a.newParseCmd(),
		a.newCheckCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	t, err := setupTracing(cmd, a.stderr)
	if err != nil {
		return err
	}
	a.trace = t

	opts, err := profileOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Enabled() {
		if a.prof, err = prof.Start(opts); err != nil {
			return err
		}
	}
	return nil
}

func profileOptions(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return opts, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return opts, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return opts, nil
}

// runDemo is the root command: parse one file (or the fallback text) and print the tree.
func (a *app) runDemo(cmd *cobra.Command, args []string) error {
	return driver.RunDemo(cmd.Context(), args, a.stdout, a.stderr, driver.DemoOptions{Timer: a.timer})
}

func (a *app) finish(root *cobra.Command, err error) {
	if stopErr := a.prof.Stop(); stopErr != nil {
		fmt.Fprintf(a.stderr, "profile: %v\n", stopErr)
	}
	if timings, _ := root.PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(a.stderr, a.timer.Summary())
	}
	if a.trace != nil {
		a.trace.finish(err != nil)
	}
}

// reportError печатает фатальную ошибку в формате демо-драйвера.
func reportError(w io.Writer, err error) {
	var inErr *driver.InputError
	switch {
	case errors.Is(err, errReported):
		// диагностики уже напечатаны
	case errors.As(err, &inErr):
		fmt.Fprintf(w, "Error: %s\n", inErr.Error())
	default:
		fmt.Fprintf(w, "Exception: %s\n", err.Error())
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}


package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fern/internal/config"
	"fern/internal/diag"
	"fern/internal/driver"
	"fern/internal/source"
	"fern/internal/ui"
)

func (a *app) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.fern|directory>...",
		Short: "Parse many fern files in parallel and report diagnostics",
		Long: `Check parses every given file and every *.fern file under the given directories.
It prints diagnostics and a summary line per file; the exit code is 1 when any file has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse results cached by content hash")
	cmd.Flags().Bool("clear-cache", false, "drop the result cache before checking")
	return cmd
}

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.CheckResult
	err     error
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	opts, err := checkOptions(cmd, cfg)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseSwitch("ui", uiFlag)
	if err != nil {
		return err
	}

	var outcome checkOutcome
	if mode.enabled(a.stderr) {
		outcome, err = a.checkWithUI(cmd.Context(), args, opts)
		if err != nil {
			return err
		}
	} else {
		outcome.fs, outcome.results, outcome.err = driver.CheckFiles(cmd.Context(), args, opts)
	}
	if outcome.err != nil {
		return outcome.err
	}

	all := diag.NewBag(0)
	for _, r := range outcome.results {
		all.Merge(r.Bag)
	}
	if err := a.writeDiagnostics(cfg, all, outcome.fs); err != nil {
		return err
	}
	printCheckSummary(a.stdout, outcome.results)

	if driver.CountErrors(outcome.results) > 0 {
		return errReported
	}
	return nil
}

func checkOptions(cmd *cobra.Command, cfg config.Config) (driver.CheckOptions, error) {
	opts := driver.CheckOptions{
		Jobs:           cfg.Check.Jobs,
		MaxDiagnostics: cfg.Diagnostics.Max,
		Extensions:     cfg.Check.Extensions,
	}
	var err error
	if cmd.Flags().Changed("jobs") {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	useCache := cfg.Check.Cache
	if cmd.Flags().Changed("cache") {
		if useCache, err = cmd.Flags().GetBool("cache"); err != nil {
			return opts, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("fern")
		if err != nil {
			return opts, err
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return opts, fmt.Errorf("clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}
	return opts, nil
}

func (a *app) checkWithUI(ctx context.Context, args []string, opts driver.CheckOptions) (checkOutcome, error) {
	files, err := driver.ListSources(args, opts.Extensions)
	if err != nil {
		return checkOutcome{}, err
	}
	events := make(chan driver.FileEvent, 256)
	opts.Events = events
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		fs, results, err := driver.CheckFiles(ctx, args, opts)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewCheckModel("check", files, events)
	program := tea.NewProgram(model, tea.WithOutput(a.stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	// UI мог выйти раньше: дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome, uiErr
	}
	return outcome, nil
}

func printCheckSummary(w io.Writer, results []driver.CheckResult) {
	total := 0
	for _, r := range results {
		errs := driver.FileErrors(r)
		total += errs
		status := "ok"
		if errs > 0 {
			status = plural(errs, "error")
		}
		if r.Cached {
			status += " (cached)"
		}
		fmt.Fprintf(w, "%s: %s\n", r.Path, status)
	}
	fmt.Fprintf(w, "checked %s, %s\n", plural(len(results), "file"), plural(total, "error"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

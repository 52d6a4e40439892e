package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fern/internal/config"
	"fern/internal/diag"
	"fern/internal/diagfmt"
	"fern/internal/source"
)

// loadSettings returns fern.toml (or the defaults) with explicitly set global
// flags applied on top.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(path, ".")
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Diagnostics.Max, err = flags.GetInt("max-diagnostics"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if cfg.Diagnostics.Max < 0 {
			return config.Config{}, fmt.Errorf("invalid --max-diagnostics %d: must be >= 0", cfg.Diagnostics.Max)
		}
	}
	if flags.Changed("color") {
		value, err := flags.GetString("color")
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to get color flag: %w", err)
		}
		mode, err := parseSwitch("color", value)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Diagnostics.Color = string(mode)
	}
	if flags.Changed("diagnostics-format") {
		if cfg.Diagnostics.Format, err = flags.GetString("diagnostics-format"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
		}
		switch cfg.Diagnostics.Format {
		case "pretty", "json":
		default:
			return config.Config{}, fmt.Errorf("invalid --diagnostics-format value %q (expected pretty|json)", cfg.Diagnostics.Format)
		}
	}
	return cfg, nil
}

// writeDiagnostics печатает bag в stderr в выбранном формате.
// JSON пишется всегда, даже без диагностик, чтобы потребителю было что разобрать.
func (a *app) writeDiagnostics(cfg config.Config, bag *diag.Bag, fs *source.FileSet) error {
	bag.Sort()
	if cfg.Diagnostics.Format == "json" {
		return diagfmt.JSON(a.stderr, bag, fs, diagfmt.JSONOpts{
			PathMode:     diagfmt.PathModeAuto,
			IncludeNotes: true,
		})
	}
	if bag.Len() > 0 {
		diagfmt.Pretty(a.stderr, bag, fs, a.prettyOpts(cfg))
	}
	return nil
}

func (a *app) prettyOpts(cfg config.Config) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     switchMode(cfg.Diagnostics.Color).enabled(a.stderr),
		Context:   int8(min(cfg.Diagnostics.Context, 16)),
		ShowNotes: true,
	}
}

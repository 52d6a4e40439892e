package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fern/internal/diagfmt"
	"fern/internal/driver"
	"fern/internal/tree"
)

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.fern",
		Short: "Parse a fern source file and output its parse tree",
		Long: `Parse reads a fern source file and prints the parse tree.
Diagnostics are written to stderr; the exit code is 1 when any error was reported.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runParse,
	}
	cmd.Flags().String("format", "", "output format (sexpr|tree|json|msgpack), default from fern.toml")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format := cfg.Parse.Format
	if cmd.Flags().Changed("format") {
		if format, err = cmd.Flags().GetString("format"); err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	switch format {
	case "sexpr", "tree", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	var result *driver.ParseResult
	err = a.timer.Measure("parse", func() error {
		result, err = driver.ParseFile(cmd.Context(), args[0], cfg.Diagnostics.Max)
		return err
	})
	if err != nil {
		return err
	}

	if err := a.writeDiagnostics(cfg, result.Bag, result.FileSet); err != nil {
		return err
	}

	switch format {
	case "tree":
		err = diagfmt.FormatTreePretty(a.stdout, result.Root, result.FileSet)
	case "json":
		err = diagfmt.FormatTreeJSON(a.stdout, result.Root)
	case "msgpack":
		err = diagfmt.FormatTreeMsgpack(a.stdout, result.Root)
	default:
		_, err = fmt.Fprintln(a.stdout, tree.StringTree(result.Root))
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fern/internal/diagfmt"
	"fern/internal/driver"
)

func (a *app) newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.fern",
		Short: "Tokenize a fern source file",
		Long:  `Tokenize breaks down a fern source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var result *driver.TokenizeResult
	err = a.timer.Measure("tokenize", func() error {
		result, err = driver.Tokenize(args[0], cfg.Diagnostics.Max)
		return err
	})
	if err != nil {
		return err
	}

	if err := a.writeDiagnostics(cfg, result.Bag, result.FileSet); err != nil {
		return err
	}

	if format == "json" {
		return diagfmt.FormatTokensJSON(a.stdout, result.Tokens, result.FileSet)
	}
	return diagfmt.FormatTokensPretty(a.stdout, result.Tokens, result.FileSet)
}

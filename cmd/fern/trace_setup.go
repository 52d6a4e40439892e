package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fern/internal/trace"
)

type tracing struct {
	tracer trace.Tracer
	mode   trace.StorageMode
	format trace.Format
	out    io.Writer
}

// setupTracing inspects trace-related flags and attaches a tracer to the command context.
func setupTracing(cmd *cobra.Command, stderr io.Writer) (*tracing, error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	}
	if traceOutput == "" || traceOutput == "-" {
		// без Close: stderr не закрываем
		cfg.Output = struct{ io.Writer }{stderr}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if format == trace.FormatAuto {
		format = trace.FormatText
	}
	return &tracing{tracer: tracer, mode: mode, format: format, out: stderr}, nil
}

// finish flushes the tracer; in ring mode a failed run dumps the buffered events.
func (t *tracing) finish(failed bool) {
	if failed && t.mode == trace.ModeRing {
		if ring, ok := trace.Ring(t.tracer); ok {
			if err := ring.Dump(t.out, t.format); err != nil {
				fmt.Fprintf(t.out, "trace: dump error: %v\n", err)
			}
		}
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(t.out, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(t.out, "trace: close error: %v\n", err)
	}
}

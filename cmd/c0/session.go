package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"c0/internal/diag"
	"c0/internal/diagfmt"
	"c0/internal/driver"
	"c0/internal/observ"
	"c0/internal/project"
	"c0/internal/source"
	"c0/internal/trace"
)

// session is the state shared by every command of one invocation.
type session struct {
	cfg     project.Config
	tracer  trace.Tracer
	span    *trace.Span
	timer   *observ.Timer
	color   bool
	paths   diagfmt.PathMode
	timings bool
	maxDiag int
}

var current *session

func setupSession(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag, os.Stderr)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := project.Discover(cwd, configPath)
	if err != nil {
		return err
	}

	s := &session{cfg: cfg, color: useColor, tracer: trace.Nop}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.timings {
		s.timer = observ.NewTimer()
	}
	pathsFlag, err := flags.GetString("paths")
	if err != nil {
		return fmt.Errorf("failed to get paths flag: %w", err)
	}
	var ok bool
	if s.paths, ok = diagfmt.ParsePathMode(pathsFlag); !ok {
		return fmt.Errorf("invalid --paths value %q (expected: auto|absolute|relative|basename)", pathsFlag)
	}
	if s.maxDiag, err = flags.GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if err := s.setupTracing(cmd); err != nil {
		return err
	}
	current = s
	return nil
}

func resolveColor(mode string, f *os.File) (bool, error) {
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected: auto|on|off)", mode)
}

// setupTracing builds the tracer from c0.toml, overridden by --trace and
// --trace-level, and attaches it to the command context.
func (s *session) setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	levelStr, output := s.cfg.Trace.Level, s.cfg.Trace.Output
	if flags.Changed("trace-level") {
		levelStr, _ = flags.GetString("trace-level")
	}
	if flags.Changed("trace") {
		output, _ = flags.GetString("trace")
		// --trace без уровня включает фазы
		if !flags.Changed("trace-level") && (levelStr == "" || levelStr == "off") {
			levelStr = "phase"
		}
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: output})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	s.span = trace.Begin(tracer, trace.ScopeDriver, "c0 "+cmd.Name(), 0)
	ctx := trace.WithTracer(cmd.Context(), tracer)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: s.span.ID()})
	cmd.SetContext(ctx)
	return nil
}

// printDiagnostics sorts and renders bag in the session's style.
func (s *session) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:    s.color,
		Context:  2,
		PathMode: s.paths,
	})
}

func (s *session) driverOptions() driver.Options {
	return driver.Options{Timer: s.timer, MaxDiagnostics: s.maxDiag}
}

// finish closes the tracer and prints timings. A buffered ring tracer is
// dumped only when the command failed.
func (s *session) finish(stderr io.Writer, runErr error) {
	if s.span != nil {
		detail := "ok"
		if runErr != nil {
			detail = runErr.Error()
		}
		s.span.End(detail)
	}
	if d, ok := s.tracer.(trace.Dumper); ok && runErr != nil {
		fmt.Fprintln(stderr, "trace (last events):")
		if err := d.Dump(stderr, trace.FormatText); err != nil {
			fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		fmt.Fprintf(stderr, "trace: close error: %v\n", err)
	}
	if s.timings && s.timer != nil {
		fmt.Fprint(stderr, s.timer.Summary())
	}
}

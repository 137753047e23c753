package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"c0/internal/driver"
	"c0/internal/project"
	"c0/internal/trace"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] file.c0...",
	Short: "Compile C0 sources",
	Long:  "Build compiles every given file and writes one artifact per file into the output directory.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  buildExecution,
}

func init() {
	buildCmd.Flags().StringP("out-dir", "o", "", "output directory (default from c0.toml or ./build)")
	buildCmd.Flags().String("emit", "", "artifact kind (binary|text)")
	buildCmd.Flags().Int("jobs", 0, "parallel compilations (0 = GOMAXPROCS)")
	buildCmd.Flags().Bool("no-cache", false, "bypass the artifact cache")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	cfg := current.cfg.Build

	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir, _ = cmd.Flags().GetString("out-dir")
	}
	if cmd.Flags().Changed("emit") {
		value, _ := cmd.Flags().GetString("emit")
		emit, err := project.ParseEmit(value)
		if err != nil {
			return err
		}
		cfg.Emit = emit
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs, _ = cmd.Flags().GetInt("jobs")
		if cfg.Jobs < 0 {
			return fmt.Errorf("--jobs must not be negative")
		}
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	opts := current.driverOptions()
	if cfg.Cache && !noCache {
		cache, err := driver.OpenDiskCache("c0")
		if err != nil {
			// без кэша сборка всё равно работает
			trace.Point(trace.FromContext(cmd.Context()), trace.ScopeDriver, "cache", err.Error())
		} else {
			opts.Cache = cache
		}
	}

	results, err := driver.CompileFiles(cmd.Context(), args, opts, cfg.Jobs)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "encode", trace.CurrentSpan(ctx).SpanID)
	end := opts.Timer.Track("encode")
	written, failed := 0, 0
	cwd, _ := os.Getwd()
	for _, res := range results {
		if res.Failed() {
			failed++
			if err := current.printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet); err != nil {
				return err
			}
			continue
		}
		path, err := driver.WriteArtifact(cfg.OutDir, res.Path, res.Program, cfg.Emit)
		if err != nil {
			span.End(err.Error())
			end("failed")
			return err
		}
		written++
		note := ""
		if res.Cached {
			note = " (cached)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "built %s%s\n", formatPathForOutput(cwd, path), note)
	}
	span.End(fmt.Sprintf("%d written", written))
	end(fmt.Sprintf("%d artifacts", written))

	if failed > 0 {
		return errReported
	}
	return nil
}

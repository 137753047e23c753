// Package main implements the c0 compiler CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"c0/internal/version"
)

// errReported means the diagnostics were already printed.
var errReported = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:               "c0",
	Short:             "C0 compiler",
	Long:              `c0 compiles C0 sources into stack machine programs`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupSession,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("paths", "auto", "diagnostic path display (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to c0.toml (default: search upwards)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
}

// main runs the root command. Any error exits with status 1.
func main() {
	err := rootCmd.Execute()
	if current != nil {
		current.finish(os.Stderr, err)
	}
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"c0/internal/diagfmt"
	"c0/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.c0",
	Short: "Tokenize a C0 source file",
	Long:  `Tokenize breaks a C0 source file into tokens and stops at the first lexical error`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], current.driverOptions())
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens)
	}
	if err != nil {
		return err
	}

	if result.Bag.HasErrors() {
		if err := current.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
			return err
		}
		return errReported
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"c0/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build outputs and the artifact cache",
	Long:  "Remove the output directory from c0.toml (or ./build) and drop the user-level artifact cache.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	targetDir := current.cfg.Build.OutDir

	info, err := os.Stat(targetDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(out, "%s not found\n", targetDir)
	case err != nil:
		return fmt.Errorf("failed to stat %q: %w", targetDir, err)
	case !info.IsDir():
		return fmt.Errorf("%q is not a directory", targetDir)
	default:
		if err := os.RemoveAll(targetDir); err != nil {
			return fmt.Errorf("failed to remove %q: %w", targetDir, err)
		}
		cwd, _ := os.Getwd()
		fmt.Fprintf(out, "removed %s\n", formatPathForOutput(cwd, targetDir))
	}

	cache, err := driver.OpenDiskCache("c0")
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	fmt.Fprintf(out, "dropped cache %s\n", cache.Dir())
	return nil
}

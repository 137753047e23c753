package main

import (
	"github.com/spf13/cobra"

	"c0/internal/driver"
	"c0/internal/program"
)

var dumpCmd = &cobra.Command{
	Use:   "dump file.o0",
	Short: "Print the listing of a compiled artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := driver.ReadArtifact(args[0])
		if err != nil {
			return err
		}
		return program.WriteListing(cmd.OutOrStdout(), prog)
	},
}

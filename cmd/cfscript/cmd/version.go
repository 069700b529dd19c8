package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cfscript version",
	RunE: func(*cobra.Command, []string) error {
		fmt.Printf("cfscript version %s\nCommit: %s\nBuilt:  %s\n", Version, GitCommit, BuildDate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

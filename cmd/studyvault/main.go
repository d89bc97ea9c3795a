package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "studyvault",
		Short:         "StudyVault admin tool for documents, workspaces and recall",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(recallCmd())
	rootCmd.AddCommand(graphCmd())
	rootCmd.AddCommand(mergeCandidatesCmd())
	rootCmd.AddCommand(mergeCmd())
	return rootCmd
}

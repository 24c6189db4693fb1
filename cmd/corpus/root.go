package main

import (
	"github.com/spf13/cobra"
)

var environment string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "corpus",
		Short: "Build and search the CPF policy corpus",
		Long: `Builds the retrieval corpus from the curated Markdown documents and
runs ad-hoc searches against it. Set ENABLE_MOCKS=true to use the offline
hashed embedder instead of the embedding service.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&environment, "env", "local", "environment name, loads .env.<env> when present")
	root.AddCommand(newBuildCmd(), newSearchCmd())
	return root
}

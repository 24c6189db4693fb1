package main

import (
	"fmt"

	"github.com/futig/cpf-explainer/internal/builder"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBuildCmd() *cobra.Command {
	var (
		rawDir   string
		outPath  string
		maxChars int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Chunk, embed and write the corpus file",
		Long: `Reads every Markdown document in the raw directory, splits it into
chunks, embeds each document's chunks in one batch and overwrites the
corpus file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools, err := builder.BuildCorpusTools(environment, maxChars)
			if err != nil {
				return err
			}
			defer tools.Logger.Sync() //nolint:errcheck

			if rawDir == "" {
				rawDir = tools.Config.RawDir
			}
			if outPath == "" {
				outPath = tools.Config.Path
			}

			stats, err := tools.Builder.Build(tools.Context(), rawDir, outPath)
			if err != nil {
				return fmt.Errorf("build corpus: %w", err)
			}

			tools.Logger.Info("corpus built",
				zap.Int("documents", stats.Documents),
				zap.Int("chunks", stats.Chunks),
				zap.Int("dimensions", stats.Dimensions),
				zap.String("output_path", stats.OutputPath),
			)
			cmd.Printf("Wrote %d chunks from %d documents to %s (%d dimensions)\n",
				stats.Chunks, stats.Documents, stats.OutputPath, stats.Dimensions)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawDir, "raw-dir", "", "directory of raw Markdown documents (default CORPUS_RAW_DIR)")
	cmd.Flags().StringVar(&outPath, "out", "", "corpus file to write (default CORPUS_PATH)")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "maximum characters per chunk (default CORPUS_MAX_CHARS)")
	return cmd
}

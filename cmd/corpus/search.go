package main

import (
	"fmt"
	"strings"

	"github.com/futig/cpf-explainer/internal/builder"
	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/spf13/cobra"
)

const snippetRunes = 160

func newSearchCmd() *cobra.Command {
	var (
		k          int
		topic      string
		corpusPath string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank corpus chunks against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := builder.BuildCorpusTools(environment, 0)
			if err != nil {
				return err
			}
			defer tools.Logger.Sync() //nolint:errcheck

			if corpusPath == "" {
				corpusPath = tools.Config.Path
			}
			if k <= 0 {
				k = tools.TopK
			}

			query := strings.Join(args, " ")
			hits, err := tools.Retrieval(corpusPath).Search(tools.Context(), query, k, topic)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			printHits(cmd, hits)
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 0, "number of results (default RETRIEVAL_TOP_K)")
	cmd.Flags().StringVar(&topic, "topic", "", "only return chunks with this topic")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus file to search (default CORPUS_PATH)")
	return cmd
}

func printHits(cmd *cobra.Command, hits []entity.SearchHit) {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	for i, hit := range hits {
		r := hit.Record
		cmd.Printf("[%d] %s (%.3f)\n", i+1, r.Title, hit.Similarity)
		cmd.Printf("    %s | topic: %s | %s\n", r.ChunkID, r.Topic, r.Source)
		cmd.Printf("    %s\n\n", snippet(r.Text))
	}
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= snippetRunes {
		return text
	}
	return string(r[:snippetRunes]) + "..."
}

package cmd

import (
	"strings"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// relatedCmd ranks archetype recommendations against a concern.
var relatedCmd = &cobra.Command{
	Use:   "related <concern>",
	Short: "Find the recommendations most related to a concern",
	Long: `Rank every archetype recommendation by semantic similarity to a free-text concern.

Similarity comes from the embedding model of the configured provider (openai or ollama).

Examples:
  # Top five matches
  clio related "I freeze when my team disagrees with me"

  # Every recommendation, scored, through a local model
  clio related "stress before exams" --top 0 --llm-provider ollama --embedding-model nomic-embed-text`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		embedder, err := newEmbedder(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to start embeddings", err)
		}
		matches, err := rulebook.RelevantRecommendations(rootCtx, embedder, strings.Join(args, " "), viper.GetInt("top"))
		if err != nil {
			contract.LogFatal("Failed to rank recommendations", err)
		}
		if err := outwriter.NewOutWriter().WriteRecommendations(matches, cfg); err != nil {
			contract.LogFatal("Failed to print recommendations", err)
		}
	},
}

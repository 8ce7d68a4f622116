package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
)

// seoCmd analyzes one webpage.
var seoCmd = &cobra.Command{
	Use:   "seo <url>",
	Short: "Suggest SEO and engagement improvements for a webpage",
	Long: `Fetch a webpage, extract its title, description and headings, and ask the assistant
for archetype-driven improvements. If the page cannot be fetched, only the URL is sent.

Examples:
  clio seo https://example.com
  clio seo https://example.com --coping-profile autonomous --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		analyzer, err := newSEOAnalyzer(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to start assistant", err)
		}
		analysis, err := analyzer.Analyze(rootCtx, args[0], cfg.Profile)
		if err != nil {
			contract.LogFatal("Failed to analyze page", err)
		}
		if err := printSEOAnalysis(analysis); err != nil {
			contract.LogFatal("Failed to print analysis", err)
		}
	},
}

func printSEOAnalysis(analysis core.SEOAnalysis) error {
	if cfg.Output == schema.JSONOut {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(analysis)
	}

	fmt.Printf("🔗 %s\n", analysis.URL)
	if s := analysis.Summary; s != nil {
		fmt.Printf("Title: %s\nDescription: %s\nWords: %d, headings: %d\n", s.Title, s.MetaDescription, s.WordCount, len(s.Headings))
	} else {
		fmt.Println("Page details unavailable, suggestions are based on the URL only.")
	}
	fmt.Printf("\n%s\n", analysis.Reply.Text)
	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/outwriter"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
)

// questionsCmd prints the questionnaire.
var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the coping questionnaire",
	Long: `Print every question of the coping questionnaire with the subscale it feeds.

Each question is answered with one of: Never, Rarely, Sometimes, Often, Very Often.

Examples:
  # Show the questionnaire as a table
  clio questions

  # Export it for a form builder
  clio questions --output csv --output-file questions.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.NewOutWriter().WriteQuestions(rulebook.Questions(), cfg); err != nil {
			contract.LogFatal("Failed to print questions", err)
		}
	},
}

// archetypesCmd prints one or all archetypes.
var archetypesCmd = &cobra.Command{
	Use:   "archetypes [name]",
	Short: "Describe the coping archetypes",
	Long: `Show the coping archetypes with their subscales and recommendations.

Pass a name to show one archetype in full.

Examples:
  # Overview of all archetypes
  clio archetypes

  # Details of a single archetype
  clio archetypes avoidant`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		archetypes := rulebook.Archetypes()
		if len(args) == 1 {
			a, ok := rulebook.Archetype(schema.ArchetypeKey(strings.ToLower(args[0])))
			if !ok {
				contract.LogFatal("Unknown archetype", fmt.Errorf("%q is not one of autonomous, impulsive, avoidant, isolative", args[0]))
			}
			archetypes = []schema.Archetype{a}
		}
		if err := outwriter.NewOutWriter().WriteArchetypes(archetypes, cfg); err != nil {
			contract.LogFatal("Failed to print archetypes", err)
		}
	},
}

// rulesCmd prints the subscale to archetype mapping.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show how subscales feed the archetypes",
	Long: `List every subscale with its questions and the archetypes it contributes to.

Subscales without archetypes are answered but do not change the result.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.NewOutWriter().WriteRules(rulebook.Rules(), cfg); err != nil {
			contract.LogFatal("Failed to print rules", err)
		}
	},
}

package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/clio/schema"
)

// BuildNarrativePrompt renders the request sent to the text-generation boundary
// to describe a finished analysis. Scoring is already complete; the model only writes prose.
func (r *Rulebook) BuildNarrativePrompt(result schema.AnalysisResult) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following responses to determine coping style:\n\n")

	fmt.Fprintf(&sb, "Dominant archetype: %s\n", result.DominantArchetype)
	sb.WriteString("Archetype scores:\n")
	for _, rank := range r.RankArchetypes(result) {
		fmt.Fprintf(&sb, "- %s: %.2f\n", rank.Key, rank.Score)
	}

	sb.WriteString("Subscale scores:\n")
	for _, row := range r.Rules() {
		if score, ok := result.SubscaleScores[row.Subscale]; ok {
			fmt.Fprintf(&sb, "- %s: %.2f\n", row.Subscale, score)
		}
	}

	if a, ok := r.Archetype(result.DominantArchetype); ok && len(a.Recommendations) > 0 {
		sb.WriteString("Known recommendations:\n")
		for _, rec := range a.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
	}

	sb.WriteString("\nBased on these responses, identify the dominant coping style and provide relevant recommendations.")
	return sb.String()
}

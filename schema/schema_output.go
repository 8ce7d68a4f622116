package schema

// GetPlainLabel returns a plain text label for a score expressed on the 0-100 scale.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return "Very High"
	case score >= 60:
		return "High"
	case score >= 40:
		return "Moderate"
	default:
		return "Low"
	}
}

// Percent converts a normalized score in [0,1] to the 0-100 scale.
func Percent(score float64) float64 {
	return score * 100
}

// AnalysisRenderModel bundles everything the output writers need for one analysis.
type AnalysisRenderModel struct {
	Result    AnalysisResult  `json:"result"`
	Dominant  Archetype       `json:"dominant"`
	Ranks     []ArchetypeRank `json:"ranks"`
	Responses int             `json:"responses"` // Count of recognized answers
}

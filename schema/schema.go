// Package schema has configs, models and global variables for all parts of clio.
package schema

import "time"

// Question is one static item of the coping questionnaire.
type Question struct {
	ID       string      `json:"id"`       // Stable identifier such as "q1"
	Text     string      `json:"text"`     // Prompt shown to the respondent
	Options  []Label     `json:"options"`  // Ordered answers, always AllLabels
	Subscale SubscaleKey `json:"subscale"` // Subscale this question feeds
	Weight   int         `json:"weight"`   // Catalog metadata, displayed but not scored
}

// Response maps question identifiers to the selected answer.
type Response map[string]Label

// SubscaleScores maps each answered subscale to its normalized score in [0,1].
type SubscaleScores map[SubscaleKey]float64

// ArchetypeScores maps every known archetype to its aggregate score in [0,1].
type ArchetypeScores map[ArchetypeKey]float64

// Archetype is a static coping-style category.
type Archetype struct {
	Key             ArchetypeKey  `json:"key"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Recommendations []string      `json:"recommendations"`
	Subscales       []SubscaleKey `json:"subscales"` // Subscales averaged into the aggregate
}

// AnalysisResult is the immutable outcome of scoring one response.
type AnalysisResult struct {
	DominantArchetype ArchetypeKey    `json:"dominant_archetype"`
	ArchetypeScores   ArchetypeScores `json:"archetype_scores"`
	SubscaleScores    SubscaleScores  `json:"subscale_scores"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ArchetypeRank is one row of a ranked analysis.
type ArchetypeRank struct {
	Rank      int           `json:"rank"`
	Key       ArchetypeKey  `json:"key"`
	Name      string        `json:"name"`
	Score     float64       `json:"score"`
	Label     string        `json:"label"`
	Dominant  bool          `json:"dominant"`
	Subscales []SubscaleKey `json:"subscales"`
}

// RecommendationMatch is one archetype recommendation ranked against a free-text concern.
type RecommendationMatch struct {
	Archetype ArchetypeKey `json:"archetype"`
	Text      string       `json:"text"`
	Score     float64      `json:"score"` // Cosine similarity in [-1, 1]
}

// RuleRow describes how one subscale participates in archetype scoring.
type RuleRow struct {
	Subscale   SubscaleKey    `json:"subscale"`
	Questions  []string       `json:"questions"`
	Archetypes []ArchetypeKey `json:"archetypes"` // Empty for dangling subscales
}

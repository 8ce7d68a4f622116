// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints one scored questionnaire using the configured output format.
func (ow *OutWriter) WriteAnalysis(model schema.AnalysisRenderModel, cfg *contract.Config) error {
	return PrintAnalysis(model, cfg)
}

// WriteQuestions prints the questionnaire using the configured output format.
func (ow *OutWriter) WriteQuestions(questions []schema.Question, cfg *contract.Config) error {
	return PrintQuestions(questions, cfg)
}

// WriteArchetypes prints archetype definitions using the configured output format.
func (ow *OutWriter) WriteArchetypes(archetypes []schema.Archetype, cfg *contract.Config) error {
	return PrintArchetypes(archetypes, cfg)
}

// WriteRules prints the subscale to archetype rules using the configured output format.
func (ow *OutWriter) WriteRules(rows []schema.RuleRow, cfg *contract.Config) error {
	return PrintRules(rows, cfg)
}

// WriteHistory prints stored analyses using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.AnalysisRecord, cfg *contract.Config) error {
	return PrintHistory(records, cfg)
}

// WriteRecommendations prints ranked recommendations using the configured output format.
func (ow *OutWriter) WriteRecommendations(matches []schema.RecommendationMatch, cfg *contract.Config) error {
	return PrintRecommendations(matches, cfg)
}

package core

import "github.com/huangsam/clio/schema"

// Analyze scores a response and selects the dominant archetype.
// It has no side effects and never fails; an empty response yields all-zero scores
// and the first defined archetype.
func (r *Rulebook) Analyze(resp schema.Response) schema.AnalysisResult {
	subscales := r.NormalizeSubscales(resp)
	archetypes := r.ScoreArchetypes(subscales)
	return schema.AnalysisResult{
		DominantArchetype: r.dominant(archetypes),
		ArchetypeScores:   archetypes,
		SubscaleScores:    subscales,
		CreatedAt:         r.now(),
	}
}

// BuildRenderModel bundles an analysis with the catalog details the writers display.
func (r *Rulebook) BuildRenderModel(resp schema.Response, result schema.AnalysisResult) schema.AnalysisRenderModel {
	dominant, _ := r.Archetype(result.DominantArchetype)
	return schema.AnalysisRenderModel{
		Result:    result,
		Dominant:  dominant,
		Ranks:     r.RankArchetypes(result),
		Responses: r.CountRecognized(resp),
	}
}

// NewAnalysisRecord prepares a finished analysis for the store. A nil userID stores it anonymously.
func NewAnalysisRecord(resp schema.Response, result schema.AnalysisResult, userID *int64) schema.AnalysisRecord {
	return schema.AnalysisRecord{
		UserID:            userID,
		DominantArchetype: result.DominantArchetype,
		ArchetypeScores:   result.ArchetypeScores,
		SubscaleScores:    result.SubscaleScores,
		Responses:         resp,
		CreatedAt:         result.CreatedAt,
	}
}

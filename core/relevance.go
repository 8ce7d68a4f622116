package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
)

// ErrEmptyQuery is returned when a relevance query has no text.
var ErrEmptyQuery = errors.New("relevance query is empty")

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths and zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rankTexts embeds the query with the candidates in one call and returns candidate
// indexes ordered by similarity, most similar first. Equal scores keep input order.
func rankTexts(ctx context.Context, embedder contract.Embedder, query string, candidates []string) ([]int, []float64, error) {
	vectors, err := embedder.Embed(ctx, append([]string{query}, candidates...))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(vectors) != len(candidates)+1 {
		return nil, nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(candidates)+1)
	}

	scores := make([]float64, len(candidates))
	order := make([]int, len(candidates))
	for i := range candidates {
		scores[i] = CosineSimilarity(vectors[0], vectors[i+1])
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]+tieEpsilon
	})
	return order, scores, nil
}

// RelevantRecommendations ranks every archetype recommendation against a free-text concern.
// At most top matches are returned; top <= 0 returns all of them.
func (r *Rulebook) RelevantRecommendations(ctx context.Context, embedder contract.Embedder, query string, top int) ([]schema.RecommendationMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var candidates []schema.RecommendationMatch
	var texts []string
	for _, a := range r.archetypes {
		for _, rec := range a.Recommendations {
			candidates = append(candidates, schema.RecommendationMatch{Archetype: a.Key, Text: rec})
			texts = append(texts, rec)
		}
	}

	order, scores, err := rankTexts(ctx, embedder, query, texts)
	if err != nil {
		return nil, err
	}
	if top <= 0 || top > len(order) {
		top = len(order)
	}
	matches := make([]schema.RecommendationMatch, top)
	for i, idx := range order[:top] {
		matches[i] = candidates[idx]
		matches[i].Score = scores[idx]
	}
	return matches, nil
}

package core

import (
	"slices"
	"sort"

	"github.com/huangsam/clio/schema"
)

// RankArchetypes orders the archetypes of a result by score in descending order.
// Equal scores keep catalog order, so the first row is always the dominant archetype.
func (r *Rulebook) RankArchetypes(result schema.AnalysisResult) []schema.ArchetypeRank {
	ranks := make([]schema.ArchetypeRank, len(r.archetypes))
	for i, a := range r.archetypes {
		score := result.ArchetypeScores[a.Key]
		ranks[i] = schema.ArchetypeRank{
			Key:       a.Key,
			Name:      a.Name,
			Score:     score,
			Label:     schema.GetPlainLabel(schema.Percent(score)),
			Dominant:  a.Key == result.DominantArchetype,
			Subscales: slices.Clone(a.Subscales),
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Dominant != ranks[j].Dominant {
			return ranks[i].Dominant
		}
		return ranks[i].Score > ranks[j].Score+tieEpsilon
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}

// Rules describes every subscale of the catalog with its questions and archetypes.
// Subscales appear in the order their first question is listed.
func (r *Rulebook) Rules() []schema.RuleRow {
	var rows []schema.RuleRow
	index := make(map[schema.SubscaleKey]int)
	for _, q := range r.questions {
		i, ok := index[q.Subscale]
		if !ok {
			i = len(rows)
			index[q.Subscale] = i
			rows = append(rows, schema.RuleRow{Subscale: q.Subscale})
		}
		rows[i].Questions = append(rows[i].Questions, q.ID)
	}
	for _, a := range r.archetypes {
		for _, s := range a.Subscales {
			if i, ok := index[s]; ok {
				rows[i].Archetypes = append(rows[i].Archetypes, a.Key)
			}
		}
	}
	return rows
}

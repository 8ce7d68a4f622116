package core

import "github.com/huangsam/clio/schema"

// maxCode is the ordinal code of the highest answer.
const maxCode = 5.0

// NormalizeSubscales groups answers by subscale and returns each subscale's mean code divided by five.
// Unknown question ids are skipped and unknown labels count as 0.
// Subscales without any answer are omitted rather than reported as 0.
func (r *Rulebook) NormalizeSubscales(resp schema.Response) schema.SubscaleScores {
	sums := make(map[schema.SubscaleKey]int)
	counts := make(map[schema.SubscaleKey]int)
	for id, label := range resp {
		subscale, ok := r.subscaleOf[id]
		if !ok {
			continue
		}
		sums[subscale] += schema.LabelCode(label)
		counts[subscale]++
	}

	scores := make(schema.SubscaleScores, len(counts))
	for subscale, n := range counts {
		scores[subscale] = float64(sums[subscale]) / float64(n) / maxCode
	}
	return scores
}

// ScoreArchetypes averages each archetype's subscales, treating absent subscales as 0.
// The result always covers every archetype in the catalog.
func (r *Rulebook) ScoreArchetypes(subscales schema.SubscaleScores) schema.ArchetypeScores {
	scores := make(schema.ArchetypeScores, len(r.archetypes))
	for _, a := range r.archetypes {
		var sum float64
		for _, s := range a.Subscales {
			sum += subscales[s]
		}
		scores[a.Key] = sum / float64(len(a.Subscales))
	}
	return scores
}

// tieEpsilon absorbs rounding noise between means over subscale sets of different sizes.
const tieEpsilon = 1e-9

// dominant picks the strictly highest archetype, falling back to the earliest defined on ties.
func (r *Rulebook) dominant(scores schema.ArchetypeScores) schema.ArchetypeKey {
	best := r.archetypes[0].Key
	for _, a := range r.archetypes[1:] {
		if scores[a.Key] > scores[best]+tieEpsilon {
			best = a.Key
		}
	}
	return best
}

// CountRecognized returns how many answers refer to catalog questions.
func (r *Rulebook) CountRecognized(resp schema.Response) int {
	n := 0
	for id := range resp {
		if _, ok := r.subscaleOf[id]; ok {
			n++
		}
	}
	return n
}

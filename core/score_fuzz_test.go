package core

import (
	"testing"

	"github.com/huangsam/clio/schema"
)

// fuzzLabels includes an unknown label and an empty one so permissive scoring is exercised.
var fuzzLabels = []schema.Label{schema.Never, schema.Rarely, schema.Sometimes, schema.Often, schema.VeryOften, "Always", ""}

// FuzzAnalyze fuzzes Analyze with random answer patterns and checks range and determinism.
func FuzzAnalyze(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4}, "bogus")
	f.Add([]byte{}, "")
	f.Add([]byte{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}, "q1")
	f.Add([]byte{255, 6, 5, 128}, "q99")

	rb := DefaultRulebook()
	questions := rb.Questions()

	f.Fuzz(func(t *testing.T, picks []byte, extraID string) {
		resp := make(schema.Response)
		for i, p := range picks {
			if i >= len(questions) {
				break
			}
			// 255 leaves the question unanswered
			if p == 255 {
				continue
			}
			resp[questions[i].ID] = fuzzLabels[int(p)%len(fuzzLabels)]
		}
		if extraID != "" {
			if _, known := rb.Question(extraID); !known {
				resp[extraID] = schema.Often
			}
		}

		first := rb.Analyze(resp)
		second := rb.Analyze(resp)

		for k, v := range first.SubscaleScores {
			if v < 0 || v > 1 {
				t.Errorf("subscale %s out of range: %f", k, v)
			}
		}
		if len(first.ArchetypeScores) != len(rb.Archetypes()) {
			t.Errorf("expected %d archetype scores, got %d", len(rb.Archetypes()), len(first.ArchetypeScores))
		}
		for k, v := range first.ArchetypeScores {
			if v < 0 || v > 1 {
				t.Errorf("archetype %s out of range: %f", k, v)
			}
			if second.ArchetypeScores[k] != v {
				t.Errorf("archetype %s not deterministic: %f vs %f", k, v, second.ArchetypeScores[k])
			}
		}
		if first.DominantArchetype != second.DominantArchetype {
			t.Errorf("dominant archetype not deterministic: %s vs %s", first.DominantArchetype, second.DominantArchetype)
		}
		if _, ok := rb.Archetype(first.DominantArchetype); !ok {
			t.Errorf("dominant archetype %s is not in the catalog", first.DominantArchetype)
		}
	})
}

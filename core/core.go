// Package core has core logic for scoring, ranking, prompting and the chat and marketing flows.
package core

import (
	"slices"
	"sync"
	"time"

	"github.com/huangsam/clio/schema"
)

// Rulebook scores questionnaire responses against a fixed catalog.
// It is read-only after construction and safe for concurrent use.
type Rulebook struct {
	questions  []schema.Question
	archetypes []schema.Archetype
	subscaleOf map[string]schema.SubscaleKey // question id -> subscale
	archetype  map[schema.ArchetypeKey]int   // key -> index in archetypes
	now        func() time.Time
}

// NewRulebook validates the catalogs and builds a rulebook over them.
func NewRulebook(questions []schema.Question, archetypes []schema.Archetype) (*Rulebook, error) {
	if err := ValidateCatalog(questions, archetypes); err != nil {
		return nil, err
	}
	r := &Rulebook{
		questions:  cloneQuestions(questions),
		archetypes: cloneArchetypes(archetypes),
		subscaleOf: make(map[string]schema.SubscaleKey, len(questions)),
		archetype:  make(map[schema.ArchetypeKey]int, len(archetypes)),
		now:        time.Now,
	}
	for _, q := range r.questions {
		r.subscaleOf[q.ID] = q.Subscale
	}
	for i, a := range r.archetypes {
		r.archetype[a.Key] = i
	}
	return r, nil
}

var defaultRulebook = sync.OnceValue(func() *Rulebook {
	r, err := NewRulebook(questionCatalog, archetypeCatalog)
	if err != nil {
		panic("invalid coping catalog: " + err.Error())
	}
	return r
})

// DefaultRulebook returns the process-wide rulebook over the built-in catalog.
// It panics on first use if the built-in catalog is inconsistent.
func DefaultRulebook() *Rulebook {
	return defaultRulebook()
}

// WithClock returns a copy of the rulebook that stamps results using now.
func (r *Rulebook) WithClock(now func() time.Time) *Rulebook {
	clone := *r
	clone.now = now
	return &clone
}

// Questions returns a deep copy of the catalog questions in display order.
func (r *Rulebook) Questions() []schema.Question {
	return cloneQuestions(r.questions)
}

// Archetypes returns a deep copy of the catalog archetypes in priority order.
func (r *Rulebook) Archetypes() []schema.Archetype {
	return cloneArchetypes(r.archetypes)
}

func cloneQuestions(questions []schema.Question) []schema.Question {
	out := make([]schema.Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}

func cloneArchetype(a schema.Archetype) schema.Archetype {
	a.Recommendations = slices.Clone(a.Recommendations)
	a.Subscales = slices.Clone(a.Subscales)
	return a
}

func cloneArchetypes(archetypes []schema.Archetype) []schema.Archetype {
	out := make([]schema.Archetype, len(archetypes))
	for i, a := range archetypes {
		out[i] = cloneArchetype(a)
	}
	return out
}

// Archetype looks up the details of one archetype.
func (r *Rulebook) Archetype(key schema.ArchetypeKey) (schema.Archetype, bool) {
	i, ok := r.archetype[key]
	if !ok {
		return schema.Archetype{}, false
	}
	return cloneArchetype(r.archetypes[i]), true
}

// Question looks up a catalog question by id.
func (r *Rulebook) Question(id string) (schema.Question, bool) {
	for _, q := range r.questions {
		if q.ID == id {
			q.Options = slices.Clone(q.Options)
			return q, true
		}
	}
	return schema.Question{}, false
}

package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/clio/schema"
)

// Catalog consistency errors.
var (
	ErrEmptyCatalog       = errors.New("catalog has no questions or no archetypes")
	ErrDuplicateQuestion  = errors.New("duplicate question id")
	ErrDuplicateArchetype = errors.New("duplicate archetype key")
	ErrEmptyArchetype     = errors.New("archetype has no subscales")
	ErrUnknownSubscale    = errors.New("archetype references a subscale no question carries")
)

// ValidateCatalog checks the static question and archetype tables for consistency.
// It runs once at startup so scoring itself never has to fail.
func ValidateCatalog(questions []schema.Question, archetypes []schema.Archetype) error {
	if len(questions) == 0 || len(archetypes) == 0 {
		return ErrEmptyCatalog
	}

	carried := make(map[schema.SubscaleKey]struct{})
	seenQuestions := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if _, dup := seenQuestions[q.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
		}
		seenQuestions[q.ID] = struct{}{}
		carried[q.Subscale] = struct{}{}
	}

	seenArchetypes := make(map[schema.ArchetypeKey]struct{}, len(archetypes))
	for _, a := range archetypes {
		if _, dup := seenArchetypes[a.Key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateArchetype, a.Key)
		}
		seenArchetypes[a.Key] = struct{}{}
		if len(a.Subscales) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyArchetype, a.Key)
		}
		for _, s := range a.Subscales {
			if _, ok := carried[s]; !ok {
				return fmt.Errorf("%w: %s -> %s", ErrUnknownSubscale, a.Key, s)
			}
		}
	}
	return nil
}

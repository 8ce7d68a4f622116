package core

import (
	"testing"

	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	require.NoError(t, ValidateCatalog(questionCatalog, archetypeCatalog))

	rb := DefaultRulebook()
	assert.Same(t, rb, DefaultRulebook(), "default rulebook is built once")
	assert.Len(t, rb.Questions(), 18)
	assert.Len(t, rb.Archetypes(), 4)

	// One question per subscale.
	seen := make(map[schema.SubscaleKey]bool)
	for _, q := range rb.Questions() {
		assert.False(t, seen[q.Subscale], "subscale %s repeated", q.Subscale)
		seen[q.Subscale] = true
		assert.Equal(t, schema.AllLabels, q.Options)
	}
}

func TestValidateCatalog(t *testing.T) {
	q := func(id string, s schema.SubscaleKey) schema.Question { return question(id, id, s, 1) }
	a := func(key schema.ArchetypeKey, subs ...schema.SubscaleKey) schema.Archetype {
		return schema.Archetype{Key: key, Name: string(key), Subscales: subs}
	}

	tests := []struct {
		name       string
		questions  []schema.Question
		archetypes []schema.Archetype
		expected   error
	}{
		{
			name:       "valid with dangling subscale",
			questions:  []schema.Question{q("a", schema.Worrying), q("b", schema.SocialAction)},
			archetypes: []schema.Archetype{a("x", schema.Worrying)},
		},
		{
			name:       "no questions",
			archetypes: []schema.Archetype{a("x", schema.Worrying)},
			expected:   ErrEmptyCatalog,
		},
		{
			name:      "no archetypes",
			questions: []schema.Question{q("a", schema.Worrying)},
			expected:  ErrEmptyCatalog,
		},
		{
			name:       "duplicate question",
			questions:  []schema.Question{q("a", schema.Worrying), q("a", schema.SelfBlame)},
			archetypes: []schema.Archetype{a("x", schema.Worrying)},
			expected:   ErrDuplicateQuestion,
		},
		{
			name:       "duplicate archetype",
			questions:  []schema.Question{q("a", schema.Worrying)},
			archetypes: []schema.Archetype{a("x", schema.Worrying), a("x", schema.Worrying)},
			expected:   ErrDuplicateArchetype,
		},
		{
			name:       "archetype without subscales",
			questions:  []schema.Question{q("a", schema.Worrying)},
			archetypes: []schema.Archetype{a("x")},
			expected:   ErrEmptyArchetype,
		},
		{
			name:       "archetype references uncarried subscale",
			questions:  []schema.Question{q("a", schema.Worrying)},
			archetypes: []schema.Archetype{a("x", schema.Worrying, schema.SelfBlame)},
			expected:   ErrUnknownSubscale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.questions, tt.archetypes)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)

			_, err = NewRulebook(tt.questions, tt.archetypes)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRulebookLookups(t *testing.T) {
	rb := DefaultRulebook()

	a, ok := rb.Archetype(schema.Avoidant)
	require.True(t, ok)
	assert.Equal(t, "Avoidant", a.Name)
	assert.NotEmpty(t, a.Recommendations)

	_, ok = rb.Archetype("stoic")
	assert.False(t, ok)

	q, ok := rb.Question("q8")
	require.True(t, ok)
	assert.Equal(t, schema.RelaxingDiversions, q.Subscale)
	assert.Equal(t, 7, q.Weight)

	_, ok = rb.Question("q0")
	assert.False(t, ok)
}

func TestRulebookCopiesAreIndependent(t *testing.T) {
	rb := DefaultRulebook()
	resp := allAnswered(rb, schema.Often)
	before := rb.Analyze(resp)

	qs := rb.Questions()
	qs[0].Text = "changed"
	qs[0].Options[0] = "Mutated"
	assert.NotEqual(t, "changed", rb.Questions()[0].Text)
	assert.Equal(t, schema.AllLabels, rb.Questions()[0].Options)
	assert.Equal(t, schema.Never, schema.AllLabels[0])

	as := rb.Archetypes()
	as[0].Subscales[0] = schema.Worrying
	as[0].Subscales = append(as[0].Subscales, schema.Worrying)
	as[0].Recommendations[0] = "changed"
	fresh := rb.Archetypes()[0]
	assert.NotContains(t, fresh.Recommendations, "changed")
	assert.NotEqual(t, as[0].Subscales, fresh.Subscales)

	a, ok := rb.Archetype(fresh.Key)
	require.True(t, ok)
	a.Subscales[0] = schema.Worrying
	a.Recommendations[0] = "changed"
	q, ok := rb.Question("q1")
	require.True(t, ok)
	q.Options[0] = "Mutated"

	after := rb.Analyze(resp)
	assert.Equal(t, before.ArchetypeScores, after.ArchetypeScores)
	assert.Equal(t, before.DominantArchetype, after.DominantArchetype)
	assert.Equal(t, fresh, rb.Archetypes()[0])
}

func TestNewRulebookCopiesInput(t *testing.T) {
	qs := DefaultRulebook().Questions()
	as := DefaultRulebook().Archetypes()
	rb, err := NewRulebook(qs, as)
	require.NoError(t, err)

	original := rb.Archetypes()[0].Subscales[0]
	as[0].Subscales[0] = schema.Worrying
	qs[0].Subscale = schema.Worrying
	assert.Equal(t, original, rb.Archetypes()[0].Subscales[0])
	q, _ := rb.Question(qs[0].ID)
	assert.NotEqual(t, schema.Worrying, q.Subscale)
}

func TestArchetypeSubscaleSets(t *testing.T) {
	rb := DefaultRulebook()
	expected := map[schema.ArchetypeKey][]schema.SubscaleKey{
		schema.Autonomous: {schema.ProblemSolving, schema.StrivingSuccess, schema.PositiveFocus, schema.PhysicalRecreation},
		schema.Impulsive:  {schema.Worrying, schema.SelfBlame, schema.TensionReduction, schema.LackCoping},
		schema.Avoidant:   {schema.IgnoreProblem, schema.RelaxingDiversions, schema.BuildHopes},
		schema.Isolative:  {schema.KeepToSelf, schema.SpiritualSupport},
	}

	owner := make(map[schema.SubscaleKey]schema.ArchetypeKey)
	for _, a := range rb.Archetypes() {
		assert.Equal(t, expected[a.Key], a.Subscales, a.Key)
		for _, sub := range a.Subscales {
			prev, taken := owner[sub]
			assert.False(t, taken, "%s feeds both %s and %s", sub, prev, a.Key)
			owner[sub] = a.Key
		}
	}
	assert.NotContains(t, owner, schema.SocialSupport)
}

func TestSocialSupportIsInformational(t *testing.T) {
	rb := DefaultRulebook()
	base := allAnswered(rb, schema.Sometimes)
	social := allAnswered(rb, schema.Sometimes)
	social["q1"] = schema.VeryOften

	before := rb.Analyze(base).ArchetypeScores
	after := rb.Analyze(social).ArchetypeScores
	assert.Equal(t, before, after, "seeking support is informational only")

	// Names without a feeding question are rejected at construction
	archetypes := rb.Archetypes()
	archetypes[3].Subscales = []schema.SubscaleKey{"social_support_seeking", schema.ProblemSolving}
	_, err := NewRulebook(rb.Questions(), archetypes)
	assert.ErrorIs(t, err, ErrUnknownSubscale)
}

package core

import (
	"strings"
	"testing"

	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/assert"
)

func TestSystemPrompt(t *testing.T) {
	tests := []struct {
		name     string
		category schema.PromptCategory
		profile  schema.ProfileType
		expected string
	}{
		{
			name:     "general without profile",
			category: schema.GeneralCategory,
			profile:  schema.NoProfile,
			expected: "You are a helpful AI assistant.",
		},
		{
			name:     "general with autonomous profile",
			category: schema.GeneralCategory,
			profile:  schema.AutonomousProfile,
			expected: "You are a helpful AI assistant.\n\nProfile-specific guidance: For autonomous individuals, focus on logical reasoning and goal-oriented approaches.",
		},
		{
			name:     "emotional support with isolative profile",
			category: schema.EmotionalSupportCategory,
			profile:  schema.IsolativeProfile,
			expected: "You are an empathetic AI assistant focused on emotional support.\n\nProfile-specific guidance: Notice changes in breathing patterns and tendency to withdraw.",
		},
		{
			name:     "marketing with impulsive profile",
			category: schema.MarketingCategory,
			profile:  schema.ImpulsiveProfile,
			expected: "You are a marketing AI assistant specialized in business strategy.\n\nProfile-specific guidance: Help with systematic approach to market analysis.",
		},
		{
			name:     "career guidance shares the general row",
			category: schema.CareerGuidanceCategory,
			profile:  schema.AvoidantProfile,
			expected: "You are a helpful AI assistant.\n\nProfile-specific guidance: For avoidant individuals, provide gentle encouragement and validation.",
		},
		{
			name:     "unknown category falls back to general",
			category: "astrology",
			profile:  schema.NoProfile,
			expected: "You are a helpful AI assistant.",
		},
		{
			name:     "unknown profile adds nothing",
			category: schema.MarketingCategory,
			profile:  "extrovert",
			expected: "You are a marketing AI assistant specialized in business strategy.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SystemPrompt(tt.category, tt.profile))
		})
	}
}

func TestSystemPromptTableIsComplete(t *testing.T) {
	for _, c := range schema.AllPromptCategories {
		for _, p := range schema.AllProfileTypes {
			prompt := SystemPrompt(c, p)
			assert.NotEmpty(t, prompt)
			if p == schema.NoProfile {
				assert.NotContains(t, prompt, "Profile-specific guidance")
			} else {
				assert.True(t, strings.Contains(prompt, guidancePrefix), "%s x %s lacks guidance", c, p)
			}
		}
	}
}

func TestSuggestCategory(t *testing.T) {
	tests := []struct {
		query    string
		expected schema.PromptCategory
	}{
		{"How should I study for finals?", schema.PersonalDevelopmentCategory},
		{"I want to keep learning", schema.PersonalDevelopmentCategory},
		{"Improve my SEO please", schema.MarketingCategory},
		{"Our brand needs a new campaign", schema.MarketingCategory},
		{"Conflict with an employee", schema.CareerGuidanceCategory},
		{"Talk to HR about it", schema.CareerGuidanceCategory},
		{"I have three cats", schema.GeneralCategory},
		{"", schema.GeneralCategory},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestCategory(tt.query))
		})
	}
}

func TestBuildNarrativePrompt(t *testing.T) {
	rb := DefaultRulebook()
	result := rb.Analyze(schema.Response{"q4": schema.VeryOften, "q7": schema.Often})

	prompt := rb.BuildNarrativePrompt(result)
	assert.Contains(t, prompt, "Dominant archetype: impulsive")
	assert.Contains(t, prompt, "- worrying: 1.00")
	assert.Contains(t, prompt, "- self_blame: 0.80")
	assert.Contains(t, prompt, "Develop anger management skills")
	assert.NotContains(t, prompt, "- problem_solving:") // unanswered subscales are omitted
	assert.True(t, strings.HasSuffix(prompt, "provide relevant recommendations."))
}

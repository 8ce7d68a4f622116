package schema_test

import (
	"testing"

	"github.com/huangsam/clio/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Very High Score Upper", 100.0, "Very High"},
		{"Very High Score Lower", 80.0, "Very High"},
		{"High Score Upper", 79.9, "High"},
		{"High Score Lower", 60.0, "High"},
		{"Moderate Score Upper", 59.9, "Moderate"},
		{"Moderate Score Lower", 40.0, "Moderate"},
		{"Low Score Upper", 39.9, "Low"},
		{"Low Score Lower", 0.0, "Low"},
		{"Negative Score", -10.0, "Low"}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.score))
		})
	}
}

func TestLabelCode(t *testing.T) {
	tests := []struct {
		label    schema.Label
		expected int
	}{
		{schema.Never, 1},
		{schema.Rarely, 2},
		{schema.Sometimes, 3},
		{schema.Often, 4},
		{schema.VeryOften, 5},
		{"very often", 0}, // case matters
		{"Always", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.LabelCode(tt.label))
		})
	}
}

func TestParsePromptCategory(t *testing.T) {
	c, ok := schema.ParsePromptCategory(" Emotional_Support ")
	assert.True(t, ok)
	assert.Equal(t, schema.EmotionalSupportCategory, c)

	c, ok = schema.ParsePromptCategory("astrology")
	assert.False(t, ok)
	assert.Equal(t, schema.GeneralCategory, c)
}

func TestParseProfileType(t *testing.T) {
	p, ok := schema.ParseProfileType("")
	assert.True(t, ok)
	assert.Equal(t, schema.NoProfile, p)

	p, ok = schema.ParseProfileType("Isolative")
	assert.True(t, ok)
	assert.Equal(t, schema.IsolativeProfile, p)

	p, ok = schema.ParseProfileType("extrovert")
	assert.False(t, ok)
	assert.Equal(t, schema.NoProfile, p)
}

func TestParseIndustryAndChannel(t *testing.T) {
	i, ok := schema.ParseIndustry("e-commerce")
	assert.True(t, ok)
	assert.Equal(t, schema.ECommerceIndustry, i)

	_, ok = schema.ParseIndustry("Mining")
	assert.False(t, ok)

	c, ok := schema.ParseChannel("social media")
	assert.True(t, ok)
	assert.Equal(t, schema.SocialMediaChannel, c)

	_, ok = schema.ParseChannel("Fax")
	assert.False(t, ok)
}

func TestCompletion(t *testing.T) {
	ok := schema.Completed("hello")
	assert.True(t, ok.OK())
	assert.Empty(t, ok.Reason)

	failed := schema.CompletionFailure("timeout")
	assert.False(t, failed.OK())
	assert.Equal(t, "timeout", failed.Reason)
	assert.Empty(t, failed.Text)
}

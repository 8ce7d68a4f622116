package core

import (
	"strings"
	"unicode"

	"github.com/huangsam/clio/schema"
)

// promptRow holds the base system prompt of a category and its per-profile guidance.
type promptRow struct {
	system   string
	guidance map[schema.ProfileType]string
}

var generalPrompts = promptRow{
	system: "You are a helpful AI assistant.",
	guidance: map[schema.ProfileType]string{
		schema.AutonomousProfile: "For autonomous individuals, focus on logical reasoning and goal-oriented approaches.",
		schema.AvoidantProfile:   "For avoidant individuals, provide gentle encouragement and validation.",
		schema.IsolativeProfile:  "For isolative individuals, respect personal space while offering support.",
		schema.ImpulsiveProfile:  "For impulsive individuals, help with structured decision-making.",
	},
}

// promptTable resolves {category} x {profile} to a system prompt.
// Career guidance and personal development share the general row.
var promptTable = map[schema.PromptCategory]promptRow{
	schema.GeneralCategory: generalPrompts,
	schema.EmotionalSupportCategory: {
		system: "You are an empathetic AI assistant focused on emotional support.",
		guidance: map[schema.ProfileType]string{
			schema.AutonomousProfile: "Consider signals like breathing and heart rate changes.",
			schema.AvoidantProfile:   "Notice contradictory signals between feelings and expressions.",
			schema.IsolativeProfile:  "Notice changes in breathing patterns and tendency to withdraw.",
			schema.ImpulsiveProfile:  "Notice signs of agitation and intense emotional responses.",
		},
	},
	schema.CareerGuidanceCategory:      generalPrompts,
	schema.PersonalDevelopmentCategory: generalPrompts,
	schema.MarketingCategory: {
		system: "You are a marketing AI assistant specialized in business strategy.",
		guidance: map[schema.ProfileType]string{
			schema.AutonomousProfile: "Focus on data-driven decisions and measurable outcomes.",
			schema.AvoidantProfile:   "Provide structured frameworks and clear guidelines.",
			schema.IsolativeProfile:  "Offer independent analysis tools and self-paced strategies.",
			schema.ImpulsiveProfile:  "Help with systematic approach to market analysis.",
		},
	},
}

// guidancePrefix separates the base prompt from the profile guidance.
const guidancePrefix = "\n\nProfile-specific guidance: "

// SystemPrompt returns the system prompt for a category and profile.
// Unknown categories resolve to general; unknown or empty profiles add no guidance.
func SystemPrompt(category schema.PromptCategory, profile schema.ProfileType) string {
	row, ok := promptTable[category]
	if !ok {
		row = promptTable[schema.GeneralCategory]
	}
	if guidance, ok := row.guidance[profile]; ok {
		return row.system + guidancePrefix + guidance
	}
	return row.system
}

// categoryKeywords is checked in order; the first category with a matching keyword wins.
var categoryKeywords = []struct {
	category schema.PromptCategory
	keywords []string
}{
	{schema.PersonalDevelopmentCategory, []string{"study", "learn", "teach", "student"}},
	{schema.MarketingCategory, []string{"brand", "seo", "advertising", "campaign"}},
	{schema.CareerGuidanceCategory, []string{"employee", "hr", "workplace", "conflict"}},
}

// SuggestCategory guesses a prompt category from free text by keyword, defaulting to general.
// A keyword matches any word it prefixes, so "learning" matches "learn" but "three" does not match "hr".
func SuggestCategory(query string) schema.PromptCategory {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			for _, w := range words {
				if strings.HasPrefix(w, kw) {
					return entry.category
				}
			}
		}
	}
	return schema.GeneralCategory
}

package schema

import "strings"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// Label is one of the five ordinal answers of the questionnaire.
	Label string

	// SubscaleKey identifies a coping subscale.
	SubscaleKey string

	// ArchetypeKey identifies a coping archetype.
	ArchetypeKey string

	// PromptCategory selects the base system prompt for chat.
	PromptCategory string

	// ProfileType selects the profile-specific guidance appended to a system prompt.
	ProfileType string

	// Service is the line of business a user registers for.
	Service string

	// ChatRole is the author of a chat turn.
	ChatRole string

	// LLMProvider identifies a text-generation provider.
	LLMProvider string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Questionnaire answers, lowest to highest.
const (
	Never     Label = "Never"
	Rarely    Label = "Rarely"
	Sometimes Label = "Sometimes"
	Often     Label = "Often"
	VeryOften Label = "Very Often"
)

// Coping subscales.
const (
	ProblemSolving     SubscaleKey = "problem_solving"
	StrivingSuccess    SubscaleKey = "striving_success"
	Worrying           SubscaleKey = "worrying"
	IgnoreProblem      SubscaleKey = "ignore_problem"
	LackCoping         SubscaleKey = "lack_coping"
	TensionReduction   SubscaleKey = "tension_reduction"
	SelfBlame          SubscaleKey = "self_blame"
	RelaxingDiversions SubscaleKey = "relaxing_diversions"
	PositiveFocus      SubscaleKey = "positive_focus"
	BuildHopes         SubscaleKey = "build_hopes"
	SeekBelonging      SubscaleKey = "seek_belonging"
	InvestFriends      SubscaleKey = "invest_friends"
	SpiritualSupport   SubscaleKey = "spiritual_support"
	ProfessionalHelp   SubscaleKey = "professional_help"
	KeepToSelf         SubscaleKey = "keep_to_self"
	SocialSupport      SubscaleKey = "social_support"
	SocialAction       SubscaleKey = "social_action"
	PhysicalRecreation SubscaleKey = "physical_recreation"
)

// Coping archetypes.
const (
	Autonomous ArchetypeKey = "autonomous"
	Impulsive  ArchetypeKey = "impulsive"
	Avoidant   ArchetypeKey = "avoidant"
	Isolative  ArchetypeKey = "isolative"
)

// Chat prompt categories.
const (
	GeneralCategory             PromptCategory = "general" // default
	EmotionalSupportCategory    PromptCategory = "emotional_support"
	CareerGuidanceCategory      PromptCategory = "career_guidance"
	PersonalDevelopmentCategory PromptCategory = "personal_development"
	MarketingCategory           PromptCategory = "marketing"
)

// Profile types. Every archetype is a profile type; NoProfile adds no guidance.
const (
	NoProfile         ProfileType = "none" // default
	AutonomousProfile ProfileType = ProfileType(Autonomous)
	ImpulsiveProfile  ProfileType = ProfileType(Impulsive)
	AvoidantProfile   ProfileType = ProfileType(Avoidant)
	IsolativeProfile  ProfileType = ProfileType(Isolative)
)

// Services a user can register for.
const (
	EducationService Service = "education"
	HHRRService      Service = "hhrr"
	MarketingService Service = "marketing"
)

// Chat roles.
const (
	UserRole      ChatRole = "user"
	AssistantRole ChatRole = "assistant"
)

// Text-generation providers.
const (
	OpenAIProvider    LLMProvider = "openai" // default
	OllamaProvider    LLMProvider = "ollama"
	AnthropicProvider LLMProvider = "anthropic"
)

// AllLabels lists the answers in ordinal order.
var AllLabels = []Label{Never, Rarely, Sometimes, Often, VeryOften}

// AllPromptCategories lists every prompt category in display order.
var AllPromptCategories = []PromptCategory{
	GeneralCategory,
	EmotionalSupportCategory,
	CareerGuidanceCategory,
	PersonalDevelopmentCategory,
	MarketingCategory,
}

// AllProfileTypes lists every profile type in display order.
var AllProfileTypes = []ProfileType{NoProfile, AutonomousProfile, ImpulsiveProfile, AvoidantProfile, IsolativeProfile}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidServices lists all valid registration services.
var ValidServices = map[Service]struct{}{
	EducationService: {},
	HHRRService:      {},
	MarketingService: {},
}

// ValidLLMProviders lists all valid text-generation providers.
var ValidLLMProviders = map[LLMProvider]struct{}{
	OpenAIProvider:    {},
	OllamaProvider:    {},
	AnthropicProvider: {},
}

// labelCodes maps each answer to its ordinal code.
var labelCodes = map[Label]int{
	Never:     1,
	Rarely:    2,
	Sometimes: 3,
	Often:     4,
	VeryOften: 5,
}

// LabelCode returns the ordinal code 1..5 of a label, or 0 for anything unrecognized.
func LabelCode(label Label) int {
	return labelCodes[label]
}

// ParsePromptCategory resolves a category name. The boolean is false for unknown names.
func ParsePromptCategory(s string) (PromptCategory, bool) {
	c := PromptCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllPromptCategories {
		if c == known {
			return c, true
		}
	}
	return GeneralCategory, false
}

// ParseProfileType resolves a profile name. The boolean is false for unknown names.
func ParseProfileType(s string) (ProfileType, bool) {
	p := ProfileType(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return NoProfile, true
	}
	for _, known := range AllProfileTypes {
		if p == known {
			return p, true
		}
	}
	return NoProfile, false
}

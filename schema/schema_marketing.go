package schema

import "strings"

// Custom string types for the marketing flow.
type (
	// MarketingStage is a step of the marketing flow.
	MarketingStage string

	// Industry is the closed set of brand industries.
	Industry string

	// Channel is the closed set of customer contact channels.
	Channel string
)

// Marketing stages in flow order.
const (
	BrandQuestionnaireStage MarketingStage = "brand_questionnaire"
	ICPQuestionnaireStage   MarketingStage = "icp_questionnaire"
	WebpageAnalyzerStage    MarketingStage = "webpage_analyzer"
	MarketingChatStage      MarketingStage = "marketing_chat"
)

// Industries.
const (
	TechnologyIndustry Industry = "Technology"
	HealthcareIndustry Industry = "Healthcare"
	EducationIndustry  Industry = "Education"
	ECommerceIndustry  Industry = "E-commerce"
	OtherIndustry      Industry = "Other"
)

// Channels.
const (
	EmailChannel       Channel = "Email"
	SocialMediaChannel Channel = "Social Media"
	PhoneChannel       Channel = "Phone"
	WebsiteChannel     Channel = "Website"
	OtherChannel       Channel = "Other"
)

// AllIndustries lists the industries in display order.
var AllIndustries = []Industry{TechnologyIndustry, HealthcareIndustry, EducationIndustry, ECommerceIndustry, OtherIndustry}

// AllChannels lists the channels in display order.
var AllChannels = []Channel{EmailChannel, SocialMediaChannel, PhoneChannel, WebsiteChannel, OtherChannel}

// BrandProfile is the outcome of the brand questionnaire.
type BrandProfile struct {
	BrandName      string   `json:"brand_name"`
	Industry       Industry `json:"industry"`
	Values         string   `json:"values"`
	TargetAudience string   `json:"target_audience"`
}

// ICPProfile is the outcome of the ideal customer profile questionnaire.
type ICPProfile struct {
	Demographics string    `json:"demographics"`
	PainPoints   string    `json:"pain_points"`
	Goals        string    `json:"goals"`
	Channels     []Channel `json:"channels"`
}

// PageSummary is what the webpage analyzer extracts from a fetched page.
type PageSummary struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Headings        []string `json:"headings"`
	WordCount       int      `json:"word_count"`
}

// ParseIndustry matches an industry case-insensitively.
func ParseIndustry(s string) (Industry, bool) {
	for _, known := range AllIndustries {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, true
		}
	}
	return "", false
}

// ParseChannel matches a channel case-insensitively.
func ParseChannel(s string) (Channel, bool) {
	for _, known := range AllChannels {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, true
		}
	}
	return "", false
}

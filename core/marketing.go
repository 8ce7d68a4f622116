package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/clio/schema"
)

// Marketing flow errors.
var (
	ErrStageOrder    = errors.New("marketing step submitted out of order")
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidChoice = errors.New("value is not one of the allowed choices")
)

// MarketingFlow walks a user from the brand questionnaire to the marketing chat.
// It is owned by the presentation layer, one per user.
type MarketingFlow struct {
	stage    schema.MarketingStage
	brand    *schema.BrandProfile
	icp      *schema.ICPProfile
	analysis *schema.PageSummary
	seoURL   string
}

// NewMarketingFlow starts a flow at the brand questionnaire.
func NewMarketingFlow() *MarketingFlow {
	return &MarketingFlow{stage: schema.BrandQuestionnaireStage}
}

// Stage returns the current step.
func (f *MarketingFlow) Stage() schema.MarketingStage {
	return f.stage
}

// Brand returns the submitted brand profile, if any.
func (f *MarketingFlow) Brand() (schema.BrandProfile, bool) {
	if f.brand == nil {
		return schema.BrandProfile{}, false
	}
	return *f.brand, true
}

// ICP returns the submitted ideal customer profile, if any.
func (f *MarketingFlow) ICP() (schema.ICPProfile, bool) {
	if f.icp == nil {
		return schema.ICPProfile{}, false
	}
	return *f.icp, true
}

// SubmitBrand records the brand questionnaire and advances to the ICP questionnaire.
func (f *MarketingFlow) SubmitBrand(b schema.BrandProfile) error {
	if f.stage != schema.BrandQuestionnaireStage {
		return fmt.Errorf("%w: expected %s, flow is at %s", ErrStageOrder, schema.BrandQuestionnaireStage, f.stage)
	}
	if err := validateBrand(&b); err != nil {
		return err
	}
	f.brand = &b
	f.stage = schema.ICPQuestionnaireStage
	return nil
}

// SubmitICP records the ideal customer profile and advances to the webpage analyzer.
func (f *MarketingFlow) SubmitICP(icp schema.ICPProfile) error {
	if f.stage != schema.ICPQuestionnaireStage {
		return fmt.Errorf("%w: expected %s, flow is at %s", ErrStageOrder, schema.ICPQuestionnaireStage, f.stage)
	}
	if err := validateICP(&icp); err != nil {
		return err
	}
	f.icp = &icp
	f.stage = schema.WebpageAnalyzerStage
	return nil
}

// CompleteWebpageAnalysis marks the analyzer step done and opens the marketing chat.
// The summary may be nil when the page could not be fetched.
func (f *MarketingFlow) CompleteWebpageAnalysis(url string, summary *schema.PageSummary) error {
	if f.stage != schema.WebpageAnalyzerStage {
		return fmt.Errorf("%w: expected %s, flow is at %s", ErrStageOrder, schema.WebpageAnalyzerStage, f.stage)
	}
	f.seoURL = url
	f.analysis = summary
	f.stage = schema.MarketingChatStage
	return nil
}

func validateBrand(b *schema.BrandProfile) error {
	b.BrandName = strings.TrimSpace(b.BrandName)
	if b.BrandName == "" {
		return fmt.Errorf("%w: brand name", ErrMissingField)
	}
	industry, ok := schema.ParseIndustry(string(b.Industry))
	if !ok {
		return fmt.Errorf("%w: industry %q", ErrInvalidChoice, b.Industry)
	}
	b.Industry = industry
	b.Values = strings.TrimSpace(b.Values)
	b.TargetAudience = strings.TrimSpace(b.TargetAudience)
	return nil
}

func validateICP(icp *schema.ICPProfile) error {
	icp.Demographics = strings.TrimSpace(icp.Demographics)
	icp.PainPoints = strings.TrimSpace(icp.PainPoints)
	icp.Goals = strings.TrimSpace(icp.Goals)
	if icp.Demographics == "" {
		return fmt.Errorf("%w: demographics", ErrMissingField)
	}
	channels := make([]schema.Channel, 0, len(icp.Channels))
	seen := make(map[schema.Channel]struct{})
	for _, raw := range icp.Channels {
		c, ok := schema.ParseChannel(string(raw))
		if !ok {
			return fmt.Errorf("%w: channel %q", ErrInvalidChoice, raw)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		channels = append(channels, c)
	}
	icp.Channels = channels
	return nil
}

// MarketingSystemPrompt returns the marketing prompt for a profile followed by the brand and ICP context.
func MarketingSystemPrompt(f *MarketingFlow, profile schema.ProfileType) string {
	var sb strings.Builder
	sb.WriteString(SystemPrompt(schema.MarketingCategory, profile))

	if b, ok := f.Brand(); ok {
		sb.WriteString("\n\nBrand profile:")
		fmt.Fprintf(&sb, "\n- Name: %s", b.BrandName)
		fmt.Fprintf(&sb, "\n- Industry: %s", b.Industry)
		writeOptional(&sb, "Values", b.Values)
		writeOptional(&sb, "Target audience", b.TargetAudience)
	}
	if icp, ok := f.ICP(); ok {
		sb.WriteString("\n\nIdeal customer profile:")
		fmt.Fprintf(&sb, "\n- Demographics: %s", icp.Demographics)
		writeOptional(&sb, "Pain points", icp.PainPoints)
		writeOptional(&sb, "Goals", icp.Goals)
		if len(icp.Channels) > 0 {
			names := make([]string, len(icp.Channels))
			for i, c := range icp.Channels {
				names[i] = string(c)
			}
			fmt.Fprintf(&sb, "\n- Channels: %s", strings.Join(names, ", "))
		}
	}
	if f.seoURL != "" {
		fmt.Fprintf(&sb, "\n\nAnalyzed webpage: %s", f.seoURL)
		if f.analysis != nil && f.analysis.Title != "" {
			fmt.Fprintf(&sb, " (%s)", f.analysis.Title)
		}
	}
	return sb.String()
}

func writeOptional(sb *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(sb, "\n- %s: %s", name, value)
	}
}

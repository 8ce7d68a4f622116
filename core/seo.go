package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"go.uber.org/zap"
)

// ErrInvalidURL is returned for anything other than an absolute http(s) URL.
var ErrInvalidURL = errors.New("url must be an absolute http or https address")

// maxPromptHeadings caps how many headings are quoted in the SEO prompt.
const maxPromptHeadings = 10

// ValidateURL checks that raw is an absolute http(s) URL and returns it normalized.
func ValidateURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u.String(), nil
}

// BuildSEOPrompt templates the webpage analysis request.
// The summary is optional; without it the prompt names only the URL.
func BuildSEOPrompt(pageURL string, summary *schema.PageSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the content of this URL: %s. ", pageURL)
	sb.WriteString("Provide archetype-driven suggestions based on its meta content and structure. ")
	sb.WriteString("Suggest improvements for readability, SEO, and user engagement.")

	if summary == nil {
		return sb.String()
	}
	sb.WriteString("\n\nExtracted page details:")
	fmt.Fprintf(&sb, "\n- Title: %s", orNA(summary.Title))
	fmt.Fprintf(&sb, "\n- Meta description: %s", orNA(summary.MetaDescription))
	fmt.Fprintf(&sb, "\n- Word count: %d", summary.WordCount)
	if len(summary.Headings) > 0 {
		sb.WriteString("\n- Headings:")
		for i, h := range summary.Headings {
			if i == maxPromptHeadings {
				break
			}
			fmt.Fprintf(&sb, "\n  - %s", h)
		}
	}
	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// SEOAnalysis is the outcome of one webpage analysis.
type SEOAnalysis struct {
	URL     string              `json:"url"`
	Summary *schema.PageSummary `json:"summary,omitempty"`
	Reply   ChatReply           `json:"reply"`
}

// SEOAnalyzer fetches a page, templates the prompt and forwards it to the text-generation boundary.
type SEOAnalyzer struct {
	Fetcher   contract.PageFetcher // optional; nil skips fetching
	Completer contract.Completer
	Logger    *zap.Logger // optional
}

// Analyze runs the analysis for one URL. Only an invalid URL is an error;
// a failed fetch falls back to a URL-only prompt and a failed completion to an apology.
func (a *SEOAnalyzer) Analyze(ctx context.Context, rawURL string, profile schema.ProfileType) (SEOAnalysis, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return SEOAnalysis{}, err
	}
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	result := SEOAnalysis{URL: pageURL}
	if a.Fetcher != nil {
		summary, err := a.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			logger.Warn("webpage fetch failed, using url-only prompt", zap.String("url", pageURL), zap.Error(err))
		} else {
			result.Summary = &summary
		}
	}

	messages := []schema.ChatTurn{{Role: schema.UserRole, Text: BuildSEOPrompt(pageURL, result.Summary)}}
	completion := a.Completer.Complete(ctx, SystemPrompt(schema.MarketingCategory, profile), messages)
	if completion.OK() {
		result.Reply = ChatReply{Text: completion.Text}
	} else {
		logger.Warn("seo completion failed", zap.String("reason", completion.Reason))
		result.Reply = ChatReply{Text: schema.GenericErrorReply, Failed: true, Reason: completion.Reason}
	}
	return result, nil
}

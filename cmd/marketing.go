package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// marketingCmd walks through the brand, ICP and webpage steps before opening a marketing chat.
var marketingCmd = &cobra.Command{
	Use:   "marketing",
	Short: "Build a brand and customer profile, then chat about marketing",
	Long: `Run the marketing flow:

  1. Brand questionnaire (name, industry, values, audience)
  2. Ideal customer profile (demographics, pain points, goals, channels)
  3. Optional webpage analysis
  4. Marketing chat that knows the answers above

The brand and customer profile are saved to the store.

Examples:
  clio marketing
  clio marketing --coping-profile autonomous --email me@example.com`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		userID, err := sessionUserID(rootCtx, viper.GetString("email"))
		if err != nil {
			contract.LogFatal("Failed to sign in", err)
		}
		chatter, err := newChatter(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to start assistant", err)
		}

		flow := core.NewMarketingFlow()
		if err := runMarketingSteps(flow, userID); err != nil {
			if errors.Is(err, errInputClosed) {
				return
			}
			contract.LogFatal("Marketing flow stopped", err)
		}

		session := core.NewChatSession(userID, schema.MarketingCategory, cfg.Profile)
		session.Prompt = core.MarketingSystemPrompt(flow, cfg.Profile)
		if err := chatLoop(rootCtx, chatter, session); err != nil && !errors.Is(err, errInputClosed) {
			contract.LogFatal("Chat ended", err)
		}
	},
}

// runMarketingSteps fills the flow up to the marketing chat. Invalid answers are asked again.
func runMarketingSteps(flow *core.MarketingFlow, userID int64) error {
	fmt.Println("Step 1: Brand questionnaire")
	for flow.Stage() == schema.BrandQuestionnaireStage {
		brand, err := askBrand()
		if err != nil {
			return err
		}
		if err := flow.SubmitBrand(brand); err != nil {
			fmt.Printf("%v, please try again.\n", err)
		}
	}

	fmt.Println("\nStep 2: Ideal customer profile")
	for flow.Stage() == schema.ICPQuestionnaireStage {
		icp, err := askICP()
		if err != nil {
			return err
		}
		if err := flow.SubmitICP(icp); err != nil {
			fmt.Printf("%v, please try again.\n", err)
		}
	}
	saveMarketingProfile(flow, userID)

	fmt.Println("\nStep 3: Webpage analysis")
	pageURL, err := readLine("Webpage to analyze (Enter to skip): ")
	if err != nil {
		return err
	}
	var summary *schema.PageSummary
	if pageURL != "" {
		analyzer, err := newSEOAnalyzer(rootCtx)
		if err != nil {
			return err
		}
		analysis, err := analyzer.Analyze(rootCtx, pageURL, cfg.Profile)
		if err != nil {
			contract.LogWarn("Skipping webpage analysis", err)
			pageURL = ""
		} else {
			summary = analysis.Summary
			_ = printSEOAnalysis(analysis)
		}
	}
	if err := flow.CompleteWebpageAnalysis(pageURL, summary); err != nil {
		return err
	}

	fmt.Println("\nStep 4: Marketing chat")
	return nil
}

func askBrand() (schema.BrandProfile, error) {
	var b schema.BrandProfile
	var err error
	if b.BrandName, err = readLine("Brand name: "); err != nil {
		return b, err
	}
	industry, err := readLine(fmt.Sprintf("Industry (%s): ", joinChoices(schema.AllIndustries)))
	if err != nil {
		return b, err
	}
	b.Industry = schema.Industry(industry)
	if b.Values, err = readLine("Brand values: "); err != nil {
		return b, err
	}
	b.TargetAudience, err = readLine("Target audience: ")
	return b, err
}

func askICP() (schema.ICPProfile, error) {
	var icp schema.ICPProfile
	var err error
	if icp.Demographics, err = readLine("Demographics: "); err != nil {
		return icp, err
	}
	if icp.PainPoints, err = readLine("Pain points: "); err != nil {
		return icp, err
	}
	if icp.Goals, err = readLine("Goals: "); err != nil {
		return icp, err
	}
	channels, err := readLine(fmt.Sprintf("Channels, comma separated (%s): ", joinChoices(schema.AllChannels)))
	if err != nil {
		return icp, err
	}
	for c := range strings.SplitSeq(channels, ",") {
		if c = strings.TrimSpace(c); c != "" {
			icp.Channels = append(icp.Channels, schema.Channel(c))
		}
	}
	return icp, nil
}

// saveMarketingProfile stores the brand and ICP; failures only warn.
func saveMarketingProfile(flow *core.MarketingFlow, userID int64) {
	brand, _ := flow.Brand()
	icp, _ := flow.ICP()
	rec := schema.MarketingProfileRecord{Brand: brand, ICP: icp, CreatedAt: time.Now()}
	if userID != 0 {
		rec.UserID = &userID
	}
	if _, err := datastore.Manager.GetStore().SaveMarketingProfile(rootCtx, rec); err != nil {
		contract.LogWarn("Failed to save marketing profile", err)
	}
}

func joinChoices[T ~string](choices []T) string {
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

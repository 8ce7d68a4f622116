package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/internal/outwriter"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analyzeCmd scores questionnaire answers.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score questionnaire answers and find the dominant coping archetype",
	Long: `Score answers to the coping questionnaire and rank the four archetypes.

Answers come from --answers or, when omitted, from an interactive questionnaire.
Unknown question ids are ignored. The analysis is stored unless --save=false.

Examples:
  # Answer interactively
  clio analyze

  # Score a partial answer set
  clio analyze --answers "q2=Often,q3=Very Often,q11=Rarely"

  # Ask the assistant for a narrative of the result
  clio analyze --answers "q4=Often,q7=Often" --narrate`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		var resp schema.Response
		var err error
		if answers := viper.GetString("answers"); answers != "" {
			resp, err = contract.ParseResponsePairs(answers)
		} else {
			resp, err = askQuestions(rulebook.Questions())
		}
		if err != nil {
			contract.LogFatal("Failed to read answers", err)
		}

		result := rulebook.Analyze(resp)
		if err := outwriter.NewOutWriter().WriteAnalysis(rulebook.BuildRenderModel(resp, result), cfg); err != nil {
			contract.LogFatal("Failed to print analysis", err)
		}

		if viper.GetBool("save") {
			saveAnalysis(rootCtx, datastore.Manager.GetStore(), os.Stderr, resp, result)
		}

		if viper.GetBool("narrate") {
			chatter, err := newChatter(rootCtx)
			if err != nil {
				contract.LogFatal("Failed to start assistant", err)
			}
			reply := chatter.Narrate(rootCtx, rulebook, result)
			_, _ = fmt.Fprintf(narrationWriter(cfg.Output), "\n%s\n", reply.Text)
		}
	},
}

// saveAnalysis stores the result and reports the new id to status; failures are reported but never fatal.
// Status goes to stderr so machine-readable output on stdout stays intact.
func saveAnalysis(ctx context.Context, store contract.Store, status io.Writer, resp schema.Response, result schema.AnalysisResult) {
	id, err := store.SaveAnalysis(ctx, core.NewAnalysisRecord(resp, result, nil))
	if err != nil {
		contract.LogWarn("Failed to save analysis", err)
		return
	}
	if id > 0 {
		_, _ = fmt.Fprintf(status, "Saved analysis #%d\n", id)
	}
}

// narrationWriter keeps free-form text out of stdout unless the output is plain text.
func narrationWriter(mode schema.OutputMode) io.Writer {
	if mode == schema.TextOut || mode == "" {
		return os.Stdout
	}
	return os.Stderr
}

// askQuestions walks through the questionnaire on stdin. Blank answers skip a question.
func askQuestions(questions []schema.Question) (schema.Response, error) {
	fmt.Println("Answer with 1-5 (1=Never, 2=Rarely, 3=Sometimes, 4=Often, 5=Very Often). Press Enter to skip.")
	resp := make(schema.Response)
	for i, q := range questions {
		for {
			line, err := readLine(fmt.Sprintf("\n[%d/%d] %s\n> ", i+1, len(questions), q.Text))
			if err != nil {
				return nil, err
			}
			if line == "" {
				break
			}
			if label, ok := labelFromInput(line); ok {
				resp[q.ID] = label
				break
			}
			fmt.Println("Please answer with a number from 1 to 5 or one of the labels.")
		}
	}
	return resp, nil
}

// labelFromInput accepts an ordinal code or a label name.
func labelFromInput(s string) (schema.Label, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(schema.AllLabels) {
			return schema.AllLabels[n-1], true
		}
		return "", false
	}
	label := contract.NormalizeLabel(s)
	return label, schema.LabelCode(label) > 0
}

// historyCmd lists stored analyses.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analyses, newest first",
	Long: `Show analyses saved by 'clio analyze', the HTTP API or the MCP server.

Examples:
  # Last ten analyses
  clio history --limit 10

  # Everything as CSV
  clio history --limit 0 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := datastore.Manager.GetStore().ListAnalyses(rootCtx, viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to list analyses", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(records, cfg); err != nil {
			contract.LogFatal("Failed to print history", err)
		}
	},
}

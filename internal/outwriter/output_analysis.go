package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAnalysis outputs an analysis, dispatching based on the output format configured.
func PrintAnalysis(model schema.AnalysisRenderModel, cfg *contract.Config) error {
	fmtFloat := newFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisCSV(w, model, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisText(w, model, cfg, fmtFloat)
		}, "Wrote text")
	}
}

// scoreLabel picks the colored or plain label for a percent score.
func scoreLabel(percent float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(percent)
	}
	return contract.GetPlainLabel(percent)
}

// writeAnalysisText writes the ranking, subscale breakdown and recommendations.
func writeAnalysisText(w io.Writer, model schema.AnalysisRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	name := model.Dominant.Name
	if cfg.UseColors {
		name = contract.DominantColor.Sprint(name)
	}
	if err := writeLines(w,
		fmt.Sprintf("🧭 Dominant coping style: %s", name),
		model.Dominant.Description,
		""); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Archetype", "Score", "Label"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(model.Ranks))
	for _, r := range model.Ranks {
		archetype := r.Name
		if r.Dominant {
			archetype += " *"
		}
		percent := schema.Percent(r.Score)
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			archetype,
			fmtFloat(percent),
			scoreLabel(percent, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(model.Result.SubscaleScores) > 0 {
		if err := writeLines(w, "", "Subscales:"); err != nil {
			return err
		}
		for _, s := range sortedSubscales(model.Result.SubscaleScores) {
			if _, err := fmt.Fprintf(w, "  %-22s %6s\n", s, fmtFloat(schema.Percent(model.Result.SubscaleScores[s]))); err != nil {
				return err
			}
		}
	}

	if len(model.Dominant.Recommendations) > 0 {
		if err := writeLines(w, "", "Recommendations:"); err != nil {
			return err
		}
		for _, rec := range model.Dominant.Recommendations {
			if _, err := fmt.Fprintf(w, "  - %s\n", rec); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\nScored %d recognized answers at %s\n",
		model.Responses, model.Result.CreatedAt.Format(contract.DateTimeFormat))
	return err
}

// writeAnalysisCSV writes one row per archetype.
func writeAnalysisCSV(w io.Writer, model schema.AnalysisRenderModel, fmtFloat func(float64) string) error {
	header := []string{"rank", "archetype", "name", "score", "label", "dominant"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range model.Ranks {
			rec := []string{
				strconv.Itoa(r.Rank),
				string(r.Key),
				r.Name,
				fmtFloat(r.Score),
				r.Label,
				strconv.FormatBool(r.Dominant),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// sortedSubscales orders subscales by score descending, then by key.
func sortedSubscales(scores schema.SubscaleScores) []schema.SubscaleKey {
	keys := make([]schema.SubscaleKey, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if scores[keys[i]] != scores[keys[j]] {
			return scores[keys[i]] > scores[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

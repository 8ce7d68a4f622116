package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintQuestions outputs the questionnaire, dispatching based on the output format configured.
func PrintQuestions(questions []schema.Question, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, questions)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQuestionsCSV(w, questions)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQuestionsTable(w, questions, GetMaxTextWidth(cfg, 30))
		}, "Wrote table")
	}
}

func writeQuestionsTable(w io.Writer, questions []schema.Question, textWidth int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Question", "Subscale"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(questions))
	for _, q := range questions {
		data = append(data, []string{q.ID, contract.TruncateText(q.Text, textWidth), string(q.Subscale)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	options := make([]string, len(schema.AllLabels))
	for i, l := range schema.AllLabels {
		options[i] = fmt.Sprintf("%s=%d", l, schema.LabelCode(l))
	}
	_, err := fmt.Fprintf(w, "Answer each with: %s\n", strings.Join(options, ", "))
	return err
}

func writeQuestionsCSV(w io.Writer, questions []schema.Question) error {
	header := []string{"id", "text", "subscale", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, q := range questions {
			if err := cw.Write([]string{q.ID, q.Text, string(q.Subscale), strconv.Itoa(q.Weight)}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// PrintArchetypes outputs archetype definitions. A single archetype is shown in full.
func PrintArchetypes(archetypes []schema.Archetype, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if len(archetypes) == 1 {
				return writeJSON(w, archetypes[0])
			}
			return writeJSON(w, archetypes)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeArchetypesCSV(w, archetypes)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if len(archetypes) == 1 {
				return writeArchetypeDetail(w, archetypes[0])
			}
			return writeArchetypesTable(w, archetypes, GetMaxTextWidth(cfg, 50))
		}, "Wrote text")
	}
}

func writeArchetypesTable(w io.Writer, archetypes []schema.Archetype, textWidth int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Key", "Name", "Subscales", "Description"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(archetypes))
	for _, a := range archetypes {
		data = append(data, []string{
			string(a.Key),
			a.Name,
			joinKeys(a.Subscales, ", "),
			contract.TruncateText(a.Description, textWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeArchetypeDetail(w io.Writer, a schema.Archetype) error {
	if err := writeLines(w,
		fmt.Sprintf("%s (%s)", a.Name, a.Key),
		a.Description,
		"",
		"Subscales: "+joinKeys(a.Subscales, ", "),
		"",
		"Recommendations:"); err != nil {
		return err
	}
	for _, rec := range a.Recommendations {
		if _, err := fmt.Fprintf(w, "  - %s\n", rec); err != nil {
			return err
		}
	}
	return nil
}

func writeArchetypesCSV(w io.Writer, archetypes []schema.Archetype) error {
	header := []string{"key", "name", "subscales", "description", "recommendations"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, a := range archetypes {
			rec := []string{
				string(a.Key),
				a.Name,
				joinKeys(a.Subscales, "|"),
				a.Description,
				strings.Join(a.Recommendations, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// PrintRules outputs how each subscale feeds the archetypes.
func PrintRules(rows []schema.RuleRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"subscale", "questions", "archetypes"}, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{string(r.Subscale), joinKeys(r.Questions, "|"), joinKeys(r.Archetypes, "|")}); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesTable(w, rows)
		}, "Wrote table")
	}
}

func writeRulesTable(w io.Writer, rows []schema.RuleRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Subscale", "Questions", "Archetypes"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	data := make([][]string, 0, len(rows))
	unused := 0
	for _, r := range rows {
		if len(r.Archetypes) == 0 {
			unused++
		}
		data = append(data, []string{string(r.Subscale), joinKeys(r.Questions, ", "), joinKeys(r.Archetypes, ", ")})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d subscales feed no archetype and do not affect the result\n", unused, len(rows))
	return err
}

// PrintRecommendations outputs recommendations ranked by similarity to a concern.
func PrintRecommendations(matches []schema.RecommendationMatch, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, matches)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			format := newFloatFormatter(4)
			return writeCSVWithHeader(w, []string{"rank", "archetype", "score", "recommendation"}, func(cw *csv.Writer) error {
				for i, m := range matches {
					rec := []string{strconv.Itoa(i + 1), string(m.Archetype), format(m.Score), m.Text}
					if err := cw.Write(rec); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationsTable(w, matches, cfg.Precision)
		}, "Wrote table")
	}
}

func writeRecommendationsTable(w io.Writer, matches []schema.RecommendationMatch, precision int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Archetype", "Similarity", "Recommendation"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	format := newFloatFormatter(precision + 2)
	data := make([][]string, 0, len(matches))
	for i, m := range matches {
		data = append(data, []string{strconv.Itoa(i + 1), string(m.Archetype), format(m.Score), m.Text})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// archetypeColumns fixes the column order of per-archetype scores.
var archetypeColumns = []schema.ArchetypeKey{schema.Autonomous, schema.Impulsive, schema.Avoidant, schema.Isolative}

// PrintHistory outputs stored analyses, newest first.
func PrintHistory(records []schema.AnalysisRecord, cfg *contract.Config) error {
	fmtFloat := newFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(w, records, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, fmtFloat)
		}, "Wrote table")
	}
}

func userColumn(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func writeHistoryTable(w io.Writer, records []schema.AnalysisRecord, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	header := []string{"ID", "Created", "User", "Dominant"}
	for _, k := range archetypeColumns {
		header = append(header, string(k))
	}
	table.Header(header)
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format(contract.DateTimeFormat),
			userColumn(r.UserID),
			string(r.DominantArchetype),
		}
		for _, k := range archetypeColumns {
			row = append(row, fmtFloat(schema.Percent(r.ArchetypeScores[k])))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d stored analyses\n", len(records))
	return err
}

func writeHistoryCSV(w io.Writer, records []schema.AnalysisRecord, fmtFloat func(float64) string) error {
	header := []string{"id", "created_at", "user_id", "dominant"}
	for _, k := range archetypeColumns {
		header = append(header, "score_"+string(k))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			rec := []string{
				strconv.FormatInt(r.ID, 10),
				r.CreatedAt.Format(contract.DateTimeFormat),
				userColumn(r.UserID),
				string(r.DominantArchetype),
			}
			for _, k := range archetypeColumns {
				rec = append(rec, fmtFloat(r.ArchetypeScores[k]))
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRawLogResults outputs unreconciled "Name <email>" totals.
func WriteRawLogResults(rows []schema.RawAuthorTotals, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, rows)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRawLogCSV(w, rows)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRawLogTable(w, rows, cfg.Totals)
		}, "Wrote table")
	}
}

// writeRawLogTable renders Name | Commits | +LOC | -LOC | OWN with signed line counts.
func writeRawLogTable(w io.Writer, rows []schema.RawAuthorTotals, totals bool) error {
	table := tablewriter.NewWriter(w)
	table.Header(schema.RawLogHeaders())
	table.Configure(func(c *tablewriter.Config) {
		c.Header.Formatting.AutoFormat = tw.Off
		c.Footer.Formatting.AutoFormat = tw.Off
		c.Row.Alignment.Global = tw.AlignRight
		c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft}
		c.Footer.Alignment.Global = tw.AlignRight
	})

	var sum schema.RawAuthorTotals
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Key, formatCount(r.Commits), "+" + formatCount(r.Added), "-" + formatCount(r.Deleted), formatCount(r.Own)})
		sum.Commits += r.Commits
		sum.Added += r.Added
		sum.Deleted += r.Deleted
		sum.Own += r.Own
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if totals {
		table.Footer([]string{"Total", formatCount(sum.Commits), "+" + formatCount(sum.Added), "-" + formatCount(sum.Deleted), formatCount(sum.Own)})
	}
	return table.Render()
}

func writeRawLogCSV(w io.Writer, rows []schema.RawAuthorTotals) error {
	return writeCSVWithHeader(w, []string{"author", "email", "commits", "added", "deleted", "own"}, func(csvWriter *csv.Writer) error {
		for _, r := range rows {
			rec := []string{r.Key, r.Email, strconv.Itoa(r.Commits), strconv.Itoa(r.Added), strconv.Itoa(r.Deleted), strconv.Itoa(r.Own)}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

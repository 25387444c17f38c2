package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAuthorResults outputs a report, dispatching based on the configured output format.
func WriteAuthorResults(report *schema.Report, cfg *contract.Config) error {
	authors := limitAuthors(report.Authors, cfg.Limit)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, structuredReport(report, authors))
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, structuredReport(report, authors))
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorCSV(w, authors)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorTable(w, authors, cfg.Totals)
		}, "Wrote table")
	}
}

func limitAuthors(authors []schema.AuthorResult, limit int) []schema.AuthorResult {
	if limit > 0 && len(authors) > limit {
		return authors[:limit]
	}
	return authors
}

// jsonReport is the document shape shared by JSON and YAML output.
type jsonReport struct {
	Authors []schema.EnrichedAuthorResult `json:"authors" yaml:"authors"`
	Totals  schema.AuthorResult           `json:"totals" yaml:"totals"`
	Summary schema.ReportSummary          `json:"summary" yaml:"summary"`
}

func structuredReport(report *schema.Report, authors []schema.AuthorResult) jsonReport {
	totals := schema.Totals(authors)
	totals.Name = "total"
	return jsonReport{
		Authors: schema.EnrichAuthors(authors),
		Totals:  totals,
		Summary: report.Summary,
	}
}

// authorRow formats one author as table cells in header order.
func authorRow(a schema.AuthorResult) []string {
	return []string{
		a.Name,
		formatCount(a.LOC),
		formatCount(a.Commits),
		formatCount(a.Files),
		formatCount(a.LocAdded),
		formatCount(a.LocDeleted),
	}
}

// writeAuthorTable renders the bordered author table.
func writeAuthorTable(w io.Writer, authors []schema.AuthorResult, totals bool) error {
	table := tablewriter.NewWriter(w)
	table.Header(schema.AuthorHeaders())
	table.Configure(func(c *tablewriter.Config) {
		c.Header.Formatting.AutoFormat = tw.Off
		c.Footer.Formatting.AutoFormat = tw.Off
		c.Row.Alignment.Global = tw.AlignRight
		c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft}
		c.Footer.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(authors))
	for _, a := range authors {
		data = append(data, authorRow(a))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if totals {
		footer := authorRow(schema.Totals(authors))
		footer[0] = "Total"
		table.Footer(footer)
	}
	return table.Render()
}

// writeAuthorCSV writes one row per author with a leading rank column.
func writeAuthorCSV(w io.Writer, authors []schema.AuthorResult) error {
	header := []string{"rank", "name", "loc", "commits", "files", "loc_added", "loc_deleted", "emails"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, a := range schema.EnrichAuthors(authors) {
			rec := []string{
				strconv.Itoa(a.Rank),
				a.Name,
				strconv.Itoa(a.LOC),
				strconv.Itoa(a.Commits),
				strconv.Itoa(a.Files),
				strconv.Itoa(a.LocAdded),
				strconv.Itoa(a.LocDeleted),
				strings.Join(a.Emails, "|"),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

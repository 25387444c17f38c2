// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/gitreports/internal/contract"
	"github.com/huangsam/gitreports/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints an author report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config) error {
	return WriteAuthorResults(report, cfg)
}

// WriteRawLog prints unreconciled history totals using the configured output format.
func (ow *OutWriter) WriteRawLog(rows []schema.RawAuthorTotals, cfg *contract.Config) error {
	return WriteRawLogResults(rows, cfg)
}

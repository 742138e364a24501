package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/pfrederiksen/ccao-calendar/internal/record"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatXLSX OutputFormat = "xlsx"
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

func (f OutputFormat) valid() bool {
	switch f {
	case FormatXLSX, FormatJSON, FormatText:
		return true
	}
	return false
}

// OutputResult is the stdout form of an assembled record set
type OutputResult struct {
	CollectedAt time.Time           `json:"collected_at"`
	Columns     []string            `json:"columns"`
	Records     []map[string]string `json:"records"`
	Skipped     int                 `json:"skipped,omitempty"`

	result *record.Result
}

// NewOutputResult keys each record's values by column name
func NewOutputResult(result *record.Result, collectedAt time.Time) *OutputResult {
	out := &OutputResult{
		CollectedAt: collectedAt.UTC(),
		Columns:     result.Columns,
		Records:     make([]map[string]string, 0, len(result.Records)),
		Skipped:     result.Skipped,
		result:      result,
	}
	for _, row := range result.Rows() {
		m := make(map[string]string, len(row))
		for i, col := range result.Columns {
			m[col] = row[i]
		}
		out.Records = append(out.Records, m)
	}
	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText prints one block per township with a colored Published? flag
func writeText(w io.Writer, result *OutputResult) error {
	if len(result.result.Records) == 0 {
		fmt.Fprintln(w, "No calendar entries found.")
		return nil
	}

	yes := color.New(color.FgGreen, color.Bold)
	no := color.New(color.FgYellow)
	heading := color.New(color.Bold)

	for _, rec := range result.result.Records {
		heading.Fprintf(w, "%s", rec.Township)
		fmt.Fprint(w, " [")
		if rec.IsPublished() {
			yes.Fprint(w, "published")
		} else {
			no.Fprint(w, "not published")
		}
		fmt.Fprintln(w, "]")

		fmt.Fprintf(w, "  Notices mailed:   %s\n", rec.NoticesMailed)
		fmt.Fprintf(w, "  Appeal deadline:  %s\n", rec.AppealDeadline)
		fmt.Fprintf(w, "  BOR filing:       %s to %s\n", rec.BOROpen, rec.BORClose)
		fmt.Fprintf(w, "  BOR evidence due: %s\n", rec.BOREvidenceDeadline)
		if rec.ReassessmentYear != "" {
			fmt.Fprintf(w, "  Reassessment:     %s (next triennial %s)\n", rec.ReassessmentYear, rec.NextTriennialYear)
		}
	}

	published := len(record.Published(result.result.Records))
	fmt.Fprintf(w, "\nTotal: %d townships, %d published\n", len(result.result.Records), published)
	return nil
}

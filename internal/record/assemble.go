package record

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/ccao-calendar/internal/logger"
	"github.com/pfrederiksen/ccao-calendar/internal/triennial"
)

// Options controls a single assembly pass
type Options struct {
	Now       time.Time
	Reference *triennial.Reference // nil means no triennial data
}

// Result is the normalized record set in output order
type Result struct {
	Columns []string
	Records []*Record
	Skipped int // rows that failed to build
	Dropped int // duplicate rows removed by Dedupe
}

// Rows returns each record's values in column order
func (r *Result) Rows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		row := make([]string, len(r.Columns))
		for i, col := range r.Columns {
			row[i] = rec.Value(col)
		}
		rows = append(rows, row)
	}
	return rows
}

// Assemble builds, joins and deduplicates raw rows. A row that fails to build
// is logged and skipped; it never aborts the pass.
func Assemble(raws []RawEntity, opts Options) *Result {
	records := make([]*Record, 0, len(raws))
	skipped := 0

	for _, raw := range raws {
		rec, err := buildRow(raw, opts.Now)
		if err != nil {
			logger.Warn("Skipping row", logger.Fields{"township": raw.Township, "error": err.Error()})
			logger.IncrCounter("rows.skipped")
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if opts.Reference != nil {
		Join(records, opts.Reference)
	}

	deduped := Dedupe(records)
	dropped := len(records) - len(deduped)
	if dropped > 0 {
		logger.Info("Dropped duplicate township rows", logger.Fields{"count": dropped})
	}
	logger.SetGauge("records.assembled", float64(len(deduped)))
	logger.SetGauge("records.dropped_duplicates", float64(dropped))

	return &Result{
		Columns: OutputColumns(opts.Reference != nil, opts.Reference.HasNextTriennialYear()),
		Records: deduped,
		Skipped: skipped,
		Dropped: dropped,
	}
}

// build is the per-row constructor; tests replace it
var build = Build

// buildRow builds one row, turning a panic into an error so a single
// malformed row cannot abort the pass.
func buildRow(raw RawEntity, now time.Time) (rec *Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("building row: %v", r)
		}
	}()
	return build(raw, now)
}

// OutputColumns returns the column order. Re-assessment Year needs reference
// data; Next Triennial Year also needs the reference to carry that column.
// Columns without data are left out rather than filled with blanks.
func OutputColumns(withTriennial, withNextYear bool) []string {
	cols := make([]string, 0, len(Columns))
	for _, c := range Columns {
		switch c {
		case ColReassessmentYear:
			if !withTriennial {
				continue
			}
		case ColNextTriennialYear:
			if !withTriennial || !withNextYear {
				continue
			}
		}
		cols = append(cols, c)
	}
	return cols
}

// Join fills triennial fields from the reference table. Townships without a
// match keep empty triennial fields.
func Join(records []*Record, ref *triennial.Reference) {
	for _, rec := range records {
		entry, ok := ref.Lookup(rec.Township)
		if !ok {
			continue
		}
		rec.NextTriennialYear = entry.NextTriennialYear
		rec.ReassessmentYear = entry.ReassessmentStatus
	}
}

// Dedupe removes duplicate townships. Townships that appear once pass through
// in their original order. For a township that appears more than once only its
// published rows are kept, appended after the unique rows; if none of its rows
// are published the township is dropped entirely.
func Dedupe(records []*Record) []*Record {
	counts := make(map[string]int, len(records))
	for _, rec := range records {
		counts[rec.Township]++
	}

	unique := make([]*Record, 0, len(records))
	dupes := make([]*Record, 0)
	for _, rec := range records {
		if counts[rec.Township] == 1 {
			unique = append(unique, rec)
			continue
		}
		if rec.IsPublished() {
			dupes = append(dupes, rec)
		}
	}

	return append(unique, dupes...)
}

// Published returns the records whose Published? flag is yes
func Published(records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		if rec.IsPublished() {
			out = append(out, rec)
		}
	}
	return out
}

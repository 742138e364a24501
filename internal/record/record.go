package record

import (
	"errors"
	"strings"
	"time"

	"github.com/pfrederiksen/ccao-calendar/internal/dates"
)

// Output column names, in their fixed order.
const (
	ColTownship          = "Township"
	ColNoticesMailed     = "Reassessment Notices Mailed"
	ColAppealDeadline    = "Assessor Appeal Deadline"
	ColARollCertified    = "Date A-Roll Certified"
	ColARollPublished    = "Date A-Roll Published"
	ColBOROpen           = "BOR Open For Filing Complaint"
	ColBORClose          = "BOR Closed For Filing Complaint"
	ColBOREvidence       = "BOR Evidence Submission Deadline"
	ColPublished         = "Published?"
	ColLastUpdated       = "Last Updated"
	ColNextTriennialYear = "Next Triennial Year"
	ColReassessmentYear  = "Re-assessment Year"
)

// Columns is the full output column order. Triennial columns are only
// emitted when reference data was supplied.
var Columns = []string{
	ColTownship,
	ColNoticesMailed,
	ColAppealDeadline,
	ColARollCertified,
	ColARollPublished,
	ColBOROpen,
	ColBORClose,
	ColBOREvidence,
	ColPublished,
	ColLastUpdated,
	ColNextTriennialYear,
	ColReassessmentYear,
}

// Published flag values.
const (
	PublishedYes = "Yes"
	PublishedNo  = "No"
)

// ErrNoTownship is returned for a row without a township name.
var ErrNoTownship = errors.New("row has no township name")

// RawEntity is one calendar row as supplied by the page collaborator.
type RawEntity struct {
	Township       string
	NoticesMailed  dates.Field
	AppealDeadline dates.Field
	ARollCertified dates.Field
	ARollPublished dates.Field
	BOR            dates.Candidates // singular then pluralized field name
}

// Record is one normalized output row
type Record struct {
	Township            string `json:"township"`
	NoticesMailed       string `json:"reassessment_notices_mailed"`
	AppealDeadline      string `json:"assessor_appeal_deadline"`
	ARollCertified      string `json:"date_a_roll_certified"`
	ARollPublished      string `json:"date_a_roll_published"`
	BOROpen             string `json:"bor_open"`
	BORClose            string `json:"bor_close"`
	BOREvidenceDeadline string `json:"bor_evidence_deadline"`
	Published           string `json:"published"`
	LastUpdated         string `json:"last_updated"`
	NextTriennialYear   string `json:"next_triennial_year,omitempty"`
	ReassessmentYear    string `json:"reassessment_year,omitempty"`
}

// Build normalizes a raw row. now supplies the Last Updated date.
func Build(raw RawEntity, now time.Time) (*Record, error) {
	township := strings.TrimSpace(raw.Township)
	if township == "" {
		return nil, ErrNoTownship
	}

	rec := &Record{
		Township:       township,
		NoticesMailed:  dates.RenderField(raw.NoticesMailed),
		AppealDeadline: dates.RenderField(raw.AppealDeadline),
		ARollCertified: dates.RenderField(raw.ARollCertified),
		ARollPublished: dates.RenderField(raw.ARollPublished),
		LastUpdated:    dates.Render(dates.FromTime(now)),
	}

	bor := dates.ExtractRange(raw.BOR)
	open, closing := dates.SplitRangeToShortDates(bor)
	rec.BOROpen = renderShort(open)
	rec.BORClose = renderShort(closing)
	rec.BOREvidenceDeadline = renderShort(dates.EvidenceDeadline(closing))

	rec.Published = PublishedNo
	if rec.NoticesMailed != dates.TBD && rec.AppealDeadline != dates.TBD {
		rec.Published = PublishedYes
	}

	return rec, nil
}

// renderShort renders an M/D/YYYY value, with TBD for a missing one
func renderShort(short string) string {
	if short == "" {
		return dates.TBD
	}
	return dates.RenderShort(short)
}

// IsPublished reports whether the record's Published? flag is yes
func (r *Record) IsPublished() bool {
	return strings.EqualFold(r.Published, PublishedYes)
}

// Value returns the record's value for an output column
func (r *Record) Value(column string) string {
	switch column {
	case ColTownship:
		return r.Township
	case ColNoticesMailed:
		return r.NoticesMailed
	case ColAppealDeadline:
		return r.AppealDeadline
	case ColARollCertified:
		return r.ARollCertified
	case ColARollPublished:
		return r.ARollPublished
	case ColBOROpen:
		return r.BOROpen
	case ColBORClose:
		return r.BORClose
	case ColBOREvidence:
		return r.BOREvidenceDeadline
	case ColPublished:
		return r.Published
	case ColLastUpdated:
		return r.LastUpdated
	case ColNextTriennialYear:
		return r.NextTriennialYear
	case ColReassessmentYear:
		return r.ReassessmentYear
	default:
		return ""
	}
}

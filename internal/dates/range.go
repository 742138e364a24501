package dates

import (
	"regexp"
	"strings"
)

const monthPattern = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

var (
	// Matches "June 2, 2025", "Jun 2nd, 2025" and "6/2/2025" inside prose.
	embeddedDate = regexp.MustCompile(`(?i)\b(?:` + monthPattern + `\s+\d{1,2}(?:st|nd|rd|th)?,\s*\d{4}|\d{1,2}/\d{1,2}/\d{4})\b`)

	dashReplacer = strings.NewReplacer("–", "-", "—", "-")
)

// Field is one logical field of a calendar row as seen by the HTML collaborator.
type Field struct {
	Found bool     // the field element exists in the row
	Times []string // text of each machine-readable <time> sub-element, in order
	Text  string   // flattened text of the whole field
}

// FirstTime returns the first structured value, or "".
func (f Field) FirstTime() string {
	if len(f.Times) == 0 {
		return ""
	}
	return f.Times[0]
}

// Candidates is an ordered list of alternate accessors for the same concept.
// The first candidate with structured values wins.
type Candidates []Field

// structured returns the first candidate's structured values that are non-empty
func (c Candidates) structured() []string {
	for _, f := range c {
		if len(f.Times) > 0 {
			return f.Times
		}
	}
	return nil
}

// text returns the flattened text of the first candidate that exists
func (c Candidates) text() (string, bool) {
	for _, f := range c {
		if f.Found {
			return f.Text, true
		}
	}
	return "", false
}

// RenderField renders the first structured value of a single-date field.
func RenderField(f Field) string {
	if len(f.Times) == 0 {
		return TBD
	}
	return RenderToken(f.FirstTime())
}

// ExtractRange returns the display text of a date range found in the
// candidates: "<open> - <close>", a single display date, or TBD.
func ExtractRange(candidates Candidates) string {
	if times := candidates.structured(); len(times) > 0 {
		return joinRange(times)
	}

	text, ok := candidates.text()
	if !ok {
		return TBD
	}
	return joinRange(FindTokens(text))
}

func joinRange(tokens []string) string {
	switch {
	case len(tokens) >= 2:
		return RenderToken(tokens[0]) + " - " + RenderToken(tokens[1])
	case len(tokens) == 1:
		return RenderToken(tokens[0])
	default:
		return TBD
	}
}

// FindTokens scans prose for date tokens and returns the first two distinct
// matches in order of appearance. This is a best-effort fallback for fields
// that carry no structured <time> elements.
func FindTokens(text string) []string {
	tokens := make([]string, 0, 2)
	seen := make(map[string]bool)
	for _, m := range embeddedDate.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		tokens = append(tokens, m)
		if len(tokens) == 2 {
			break
		}
	}
	return tokens
}

// SplitRangeToShortDates turns a display range ("Monday, June 2nd, 2025 -
// Friday, August 1st, 2025") into M/D/YYYY open and close dates. A single date
// fills both fields. TBD, empty or unparseable input yields ("", "").
func SplitRangeToShortDates(rangeText string) (string, string) {
	txt := strings.TrimSpace(rangeText)
	if txt == "" || strings.EqualFold(txt, TBD) {
		return "", ""
	}

	txt = dashReplacer.Replace(txt)
	parts := make([]string, 0, 2)
	for _, p := range strings.Split(txt, "-") {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) >= 2 {
		open, _ := parseSegment(parts[0])
		closing, _ := parseSegment(parts[1])
		return open.Short(), closing.Short()
	}

	d, ok := parseSegment(txt)
	if !ok {
		return "", ""
	}
	return d.Short(), d.Short()
}

// parseSegment tries the literal token shapes first and falls back to
// searching for an embedded token.
func parseSegment(segment string) (Date, bool) {
	if d, ok := ParseToken(segment); ok {
		return d, true
	}
	if m := embeddedDate.FindString(cleanToken(segment)); m != "" {
		return ParseToken(m)
	}
	return Date{}, false
}

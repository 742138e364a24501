package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TBD is the display placeholder for a date that could not be derived.
const TBD = "TBD"

// ShortLayout is the machine-readable M/D/YYYY form used for deadline math.
const ShortLayout = "1/2/2006"

// tokenLayouts are tried in order after weekday and ordinal stripping.
var tokenLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	ShortLayout,
}

var (
	weekdayPrefix = regexp.MustCompile(`^[A-Za-z]+,\s+`)
	ordinalSuffix = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)\b`)
	commaSpacing  = regexp.MustCompile(`\s*,\s*`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

// Date is a validated calendar date. The zero value means absent.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// IsZero reports whether the date is absent
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns the date at midnight UTC
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Short formats the date as M/D/YYYY, or "" when absent
func (d Date) Short() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", int(d.Month), d.Day, d.Year)
}

// FromTime converts a time.Time to a Date, dropping the clock
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseToken parses a single date token. It accepts "Month D, YYYY" with a
// full or abbreviated month name (any case) and "M/D/YYYY", after removing a
// leading "Weekday, " prefix and ordinal suffixes on the day number.
// Returns false if no shape matches or the date does not exist.
func ParseToken(text string) (Date, bool) {
	s := cleanToken(text)
	if s == "" {
		return Date{}, false
	}

	for _, layout := range tokenLayouts {
		// time.Parse rejects out-of-range days such as April 31
		t, err := time.Parse(layout, s)
		if err == nil {
			d := FromTime(t)
			return d, !d.IsZero()
		}
	}

	return Date{}, false
}

// ParseShort parses an M/D/YYYY string only.
func ParseShort(text string) (Date, bool) {
	t, err := time.Parse(ShortLayout, strings.TrimSpace(text))
	if err != nil {
		return Date{}, false
	}
	d := FromTime(t)
	return d, !d.IsZero()
}

func cleanToken(text string) string {
	s := strings.TrimSpace(text)
	s = weekdayPrefix.ReplaceAllString(s, "")
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = commaSpacing.ReplaceAllString(s, ", ")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Render produces "Weekday, Month Dth, YYYY" or TBD for an absent date.
func Render(d Date) string {
	if d.IsZero() {
		return TBD
	}
	t := d.Time()
	return fmt.Sprintf("%s, %s %d%s, %d", t.Weekday(), t.Month(), t.Day(), OrdinalSuffix(t.Day()), t.Year())
}

// RenderToken parses text and renders it, funneling failures to TBD.
func RenderToken(text string) string {
	d, _ := ParseToken(text)
	return Render(d)
}

// RenderShort renders an M/D/YYYY string, or returns "" for empty input.
func RenderShort(short string) string {
	if strings.TrimSpace(short) == "" {
		return ""
	}
	d, _ := ParseShort(short)
	return Render(d)
}

// OrdinalSuffix returns the English ordinal suffix for a day of the month.
func OrdinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

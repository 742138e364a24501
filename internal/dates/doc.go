// Package dates normalizes the date text found on the assessment calendar.
//
// It parses single date tokens ("June 2nd, 2025", "Jun 2, 2025", "6/2/2025")
// into validated calendar dates, renders them in the long display form used in
// the spreadsheet ("Monday, June 2nd, 2025"), extracts open/close ranges from
// Board of Review fields and derives the evidence submission deadline.
// Every function here resolves unparseable input to an absent date or "TBD".
package dates

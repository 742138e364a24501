// Package cli implements the command-line interface for ccao-calendar.
//
// The root command fetches the assessment calendar, normalizes every township
// row, joins the optional triennial schedule and writes the result as an .xlsx
// workbook (default), JSON on stdout, or a plain text summary.
package cli

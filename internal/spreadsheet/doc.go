// Package spreadsheet writes assembled calendar records to an .xlsx workbook
// with a frozen, bold header row and columns sized to their content.
package spreadsheet

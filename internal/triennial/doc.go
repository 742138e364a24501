// Package triennial classifies townships within Cook County's three-year
// reassessment cycle and loads the optional "tri schedule" reference table.
package triennial

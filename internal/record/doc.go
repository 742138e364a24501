// Package record assembles normalized assessment-calendar records.
//
// Each raw township row from the calendar page is turned into a Record with
// display dates, Board of Review open/close dates, the derived evidence
// deadline and a Published? flag. Records are then joined to the optional
// triennial reference table and deduplicated by township.
package record

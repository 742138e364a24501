// Package scraper fetches the Cook County Assessor's assessment calendar and
// selects the per-township date fields from its HTML.
//
// Each "div.views-row" becomes one record.RawEntity. Date fields expose their
// <time> sub-elements and their flattened text; the Board of Review field is
// probed under both of the spellings the site has used.
package scraper

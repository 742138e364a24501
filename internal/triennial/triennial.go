package triennial

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Classification labels, in decision order.
const (
	LabelReassessed = "Yes"
	LabelSecondYear = "No - 2nd Year of Tri"
	LabelThirdYear  = "No - 3rd Year of Tri"
	LabelNo         = "No"
)

// Reference CSV column names.
const (
	ColumnTownship  = "Township"
	ColumnYears     = "Years"
	ColumnNextYear  = "Re-assessment 3"
	DefaultFileName = "tri schedule.csv"
)

// Classify places currentYear within the cycle anchored by the years a
// geography was reassessed.
func Classify(years []int, currentYear int) string {
	set := make(map[int]bool, len(years))
	for _, y := range years {
		set[y] = true
	}

	switch {
	case set[currentYear]:
		return LabelReassessed
	case set[currentYear-1]:
		return LabelSecondYear
	case set[currentYear-2]:
		return LabelThirdYear
	default:
		return LabelNo
	}
}

// Entry is one township's row from the reference table
type Entry struct {
	Township           string
	Years              []int
	NextTriennialYear  string
	ReassessmentStatus string
}

// Reference is the reference table keyed by township. When a township
// appears more than once the first row is kept.
type Reference struct {
	entries     map[string]*Entry
	order       []string
	hasNextYear bool
}

// HasNextTriennialYear reports whether the table carried a "Re-assessment 3"
// column. Without it there is no Next Triennial Year to emit.
func (r *Reference) HasNextTriennialYear() bool {
	return r != nil && r.hasNextYear
}

// Lookup returns the entry for a township
func (r *Reference) Lookup(township string) (*Entry, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[township]
	return e, ok
}

// Len returns the number of townships in the table
func (r *Reference) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Load reads the reference table at path. A missing file is not an error:
// it returns a nil Reference, meaning no triennial data.
func Load(path string, currentYear int) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening triennial schedule: %w", err)
	}
	defer f.Close()

	return Parse(f, currentYear)
}

// Parse reads a reference table from r and classifies each row for currentYear.
func Parse(r io.Reader, currentYear int) (*Reference, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading triennial header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	townshipCol, ok := index[ColumnTownship]
	if !ok {
		return nil, fmt.Errorf("triennial schedule missing %q column", ColumnTownship)
	}

	_, hasNextYear := index[ColumnNextYear]
	ref := &Reference{entries: make(map[string]*Entry), hasNextYear: hasNextYear}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading triennial row: %w", err)
		}

		township := strings.TrimSpace(cell(row, townshipCol))
		if township == "" {
			continue
		}
		if _, dup := ref.entries[township]; dup {
			continue
		}

		years := ParseYears(cellByName(row, index, ColumnYears))
		ref.entries[township] = &Entry{
			Township:           township,
			Years:              years,
			NextTriennialYear:  strings.TrimSpace(cellByName(row, index, ColumnNextYear)),
			ReassessmentStatus: Classify(years, currentYear),
		}
		ref.order = append(ref.order, township)
	}

	return ref, nil
}

// ParseYears parses a comma separated list of years, ignoring anything that
// is not a plain number.
func ParseYears(s string) []int {
	years := make([]int, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil || y < 0 {
			continue
		}
		years = append(years, y)
	}
	return years
}

func cellByName(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok {
		return ""
	}
	return cell(row, i)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

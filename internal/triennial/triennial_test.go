package triennial

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		years   []int
		current int
		want    string
	}{
		{"reassessed this year", []int{2024}, 2024, LabelReassessed},
		{"second year", []int{2024}, 2025, LabelSecondYear},
		{"third year", []int{2024}, 2026, LabelThirdYear},
		{"out of cycle", []int{2024}, 2027, LabelNo},
		{"before the cycle", []int{2024}, 2023, LabelNo},
		{"empty", nil, 2025, LabelNo},
		{"current year wins over earlier", []int{2022, 2025, 2024}, 2025, LabelReassessed},
		{"most recent prior year wins", []int{2023, 2024}, 2025, LabelSecondYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.years, tt.current); got != tt.want {
				t.Errorf("Classify(%v, %d) = %q, want %q", tt.years, tt.current, got, tt.want)
			}
		})
	}
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"2018, 2021, 2024", []int{2018, 2021, 2024}},
		{"2024", []int{2024}},
		{"2024,,abc, 2027", []int{2024, 2027}},
		{"", []int{}},
		{"nan", []int{}},
	}
	for _, tt := range tests {
		if got := ParseYears(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseYears(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

const sampleSchedule = `Township,Years,Re-assessment 1,Re-assessment 2,Re-assessment 3,Re-assessment 4
Barrington,"2019, 2022, 2025",2019,2022,2028,2031
Rogers Park,"2018, 2021, 2024",2018,2021,2027,2030
Lemont,"2017, 2020, 2023",2017,2020,2026,2029
Barrington,"2000",2000,2000,2000,2000
`

func TestParse(t *testing.T) {
	ref, err := Parse(strings.NewReader(sampleSchedule), 2025)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if ref.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ref.Len())
	}
	if !ref.HasNextTriennialYear() {
		t.Error("HasNextTriennialYear() = false with a Re-assessment 3 column")
	}

	tests := []struct {
		township   string
		wantStatus string
		wantNext   string
	}{
		{"Barrington", LabelReassessed, "2028"},
		{"Rogers Park", LabelSecondYear, "2027"},
		{"Lemont", LabelThirdYear, "2026"},
	}
	for _, tt := range tests {
		t.Run(tt.township, func(t *testing.T) {
			e, ok := ref.Lookup(tt.township)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.township)
			}
			if e.ReassessmentStatus != tt.wantStatus {
				t.Errorf("status = %q, want %q", e.ReassessmentStatus, tt.wantStatus)
			}
			if e.NextTriennialYear != tt.wantNext {
				t.Errorf("next = %q, want %q", e.NextTriennialYear, tt.wantNext)
			}
		})
	}

	if _, ok := ref.Lookup("Evanston"); ok {
		t.Error("expected Evanston to be absent")
	}
}

func TestParse_MissingTownshipColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Name,Years\nA,2024\n"), 2025)
	if err == nil {
		t.Fatal("expected error for missing Township column")
	}
}

func TestParse_OptionalColumns(t *testing.T) {
	ref, err := Parse(strings.NewReader("\ufeffTownship,Years\nCicero,2024\n"), 2024)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	e, ok := ref.Lookup("Cicero")
	if !ok {
		t.Fatal("Cicero not found")
	}
	if e.NextTriennialYear != "" {
		t.Errorf("NextTriennialYear = %q, want empty", e.NextTriennialYear)
	}
	if ref.HasNextTriennialYear() {
		t.Error("HasNextTriennialYear() = true without a Re-assessment 3 column")
	}
	if e.ReassessmentStatus != LabelReassessed {
		t.Errorf("ReassessmentStatus = %q", e.ReassessmentStatus)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ref, err := Load(filepath.Join(t.TempDir(), DefaultFileName), 2025)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ref != nil {
		t.Errorf("expected nil reference for missing file, got %+v", ref)
	}
	if ref.Len() != 0 {
		t.Errorf("Len() on nil reference = %d", ref.Len())
	}
	if _, ok := ref.Lookup("Barrington"); ok {
		t.Error("Lookup on nil reference should miss")
	}
	if ref.HasNextTriennialYear() {
		t.Error("HasNextTriennialYear() on nil reference = true")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(sampleSchedule), 0644); err != nil {
		t.Fatal(err)
	}
	ref, err := Load(path, 2026)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	e, _ := ref.Lookup("Rogers Park")
	if e == nil || e.ReassessmentStatus != LabelThirdYear {
		t.Errorf("Rogers Park entry = %+v", e)
	}
}

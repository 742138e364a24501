package scraper

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/ccao-calendar/internal/dates"
	"github.com/pfrederiksen/ccao-calendar/internal/logger"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/calendar.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

func TestParseEntities(t *testing.T) {
	entities, err := ParseEntities(strings.NewReader(string(loadFixture(t))))
	if err != nil {
		t.Fatalf("ParseEntities failed: %v", err)
	}

	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Township)
	}
	want := []string{"Barrington", "Rogers Park", "Lemont", "Lemont", "Evanston"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("townships = %v, want %v", names, want)
	}

	barrington := entities[0]
	if got := barrington.NoticesMailed.Times; !reflect.DeepEqual(got, []string{"05/01/2025"}) {
		t.Errorf("NoticesMailed.Times = %v", got)
	}
	if got := barrington.BOR[0].Times; !reflect.DeepEqual(got, []string{"08/01/2025", "08/29/2025"}) {
		t.Errorf("BOR[0].Times = %v", got)
	}
	if barrington.BOR[1].Found {
		t.Error("pluralized BOR field should be absent for Barrington")
	}

	rogersPark := entities[1]
	if rogersPark.BOR[0].Found {
		t.Error("singular BOR field should be absent for Rogers Park")
	}
	if got := rogersPark.BOR[1].Times; !reflect.DeepEqual(got, []string{"09/02/2025", "10/01/2025"}) {
		t.Errorf("BOR[1].Times = %v", got)
	}
	if rogersPark.ARollCertified.Found {
		t.Error("ARollCertified should be absent for Rogers Park")
	}

	lemont := entities[2]
	if !lemont.NoticesMailed.Found || len(lemont.NoticesMailed.Times) != 0 {
		t.Errorf("NoticesMailed = %+v, want found without times", lemont.NoticesMailed)
	}
	if got := lemont.BOR[0].Text; got != "Opens June 2, 2025 Closes Jul 1, 2025" {
		t.Errorf("BOR[0].Text = %q", got)
	}

	evanston := entities[4]
	if evanston.NoticesMailed.Found || evanston.BOR[0].Found || evanston.BOR[1].Found {
		t.Errorf("Evanston should have no fields, got %+v", evanston)
	}
}

func TestParseEntities_RangeDisplay(t *testing.T) {
	entities, err := ParseEntities(strings.NewReader(string(loadFixture(t))))
	if err != nil {
		t.Fatalf("ParseEntities failed: %v", err)
	}

	tests := []struct {
		index int
		want  string
	}{
		{0, "Friday, August 1st, 2025 - Friday, August 29th, 2025"},
		{1, "Tuesday, September 2nd, 2025 - Wednesday, October 1st, 2025"},
		{2, "Monday, June 2nd, 2025 - Tuesday, July 1st, 2025"},
		{3, "Monday, June 23rd, 2025 - Tuesday, July 22nd, 2025"},
		{4, dates.TBD},
	}
	for _, tt := range tests {
		t.Run(entities[tt.index].Township, func(t *testing.T) {
			if got := dates.ExtractRange(entities[tt.index].BOR); got != tt.want {
				t.Errorf("ExtractRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlattenText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div id="f"><b>Open</b>June 2, 2025<i> - </i><span>August 1, 2025 </span></div>`))
	if err != nil {
		t.Fatal(err)
	}
	if got := flattenText(doc.Find("#f")); got != "Open June 2, 2025 - August 1, 2025" {
		t.Errorf("flattenText() = %q", got)
	}
}

func TestFetchEntities(t *testing.T) {
	fixture := loadFixture(t)
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write(fixture) // nolint:errcheck
	}))
	defer srv.Close()

	s := New(srv.URL, time.Second)
	entities, err := s.FetchEntities(context.Background())
	if err != nil {
		t.Fatalf("FetchEntities() error = %v", err)
	}
	if len(entities) != 5 {
		t.Errorf("got %d entities, want 5", len(entities))
	}
	if gotAgent != UserAgent {
		t.Errorf("User-Agent = %q", gotAgent)
	}
}

func TestFetchEntities_BadStatus(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.Default()
	logger.SetDefault(logger.New(logger.LevelDebug, &logs))
	defer logger.SetDefault(prev)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).FetchEntities(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("FetchEntities() error = %v, want ErrUnexpectedStatus", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q should include the status code", err)
	}
	if !strings.Contains(logs.String(), `"component":"scraper"`) || !strings.Contains(logs.String(), `"status":503`) {
		t.Errorf("expected a scraper-tagged status warning, got %s", logs.String())
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New("", 0)
	if s.URL() != CalendarURL {
		t.Errorf("URL() = %q", s.URL())
	}
	if s.client.Timeout != Timeout {
		t.Errorf("Timeout = %v", s.client.Timeout)
	}
}

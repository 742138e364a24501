package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/ccao-calendar/internal/dates"
	"github.com/pfrederiksen/ccao-calendar/internal/logger"
	"github.com/pfrederiksen/ccao-calendar/internal/record"
)

const (
	CalendarURL = "https://www.cookcountyassessor.com/assessment-calendar-and-deadlines"
	UserAgent   = "ccao-calendar/1.0 (github.com/pfrederiksen/ccao-calendar)"
	Timeout     = 30 * time.Second
)

// Selectors for the calendar page
const (
	rowSelector   = "div.views-row"
	titleSelector = ".views-field-title a"

	fieldNoticesMailed  = ".field--name-field-reassessment-notice-date"
	fieldAppealDeadline = ".field--name-field-last-file-date"
	fieldARollCertified = ".field--name-field-date-a-roll-certified"
	fieldARollPublished = ".field--name-field-date-a-roll-published"
)

// BORSelectors are the Board of Review field spellings, probed in order.
var BORSelectors = []string{
	".field--name-field-board-of-review-appeal-dat",
	".field--name-field-board-of-review-appeal-dates",
}

// ErrUnexpectedStatus is returned when the calendar page does not answer 200
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Scraper handles fetching and parsing the assessment calendar
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for url. Empty url and zero timeout use the defaults.
func New(url string, timeout time.Duration) *Scraper {
	if url == "" {
		url = CalendarURL
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// URL returns the page the scraper reads
func (s *Scraper) URL() string {
	return s.url
}

// FetchEntities fetches the calendar page and returns its township rows
func (s *Scraper) FetchEntities(ctx context.Context) ([]record.RawEntity, error) {
	log := scraperLog().With(logger.Fields{"url": s.url})
	start := time.Now()
	defer func() {
		logger.RecordTiming("fetch.duration", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Calendar page returned an error status", logger.Fields{"status": resp.StatusCode})
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	log.Debug("Fetched calendar page", logger.Fields{"status": resp.StatusCode})

	return parseEntities(resp.Body, log)
}

// ParseEntities extracts township rows from calendar HTML. Rows without a
// title link are skipped.
func ParseEntities(r io.Reader) ([]record.RawEntity, error) {
	return parseEntities(r, scraperLog())
}

// scraperLog tags entries from this package with their component
func scraperLog() *logger.Logger {
	return logger.Default().With(logger.Fields{"component": "scraper"})
}

func parseEntities(r io.Reader, log *logger.Logger) ([]record.RawEntity, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	entities := make([]record.RawEntity, 0)
	doc.Find(rowSelector).Each(func(i int, row *goquery.Selection) {
		logger.IncrCounter("rows.seen")

		title := row.Find(titleSelector).First()
		if title.Length() == 0 {
			log.Debug("Row has no title link", logger.Fields{"index": i})
			return
		}

		borCandidates := make(dates.Candidates, 0, len(BORSelectors))
		for _, sel := range BORSelectors {
			borCandidates = append(borCandidates, field(row, sel))
		}

		entities = append(entities, record.RawEntity{
			Township:       strings.TrimSpace(title.Text()),
			NoticesMailed:  field(row, fieldNoticesMailed),
			AppealDeadline: field(row, fieldAppealDeadline),
			ARollCertified: field(row, fieldARollCertified),
			ARollPublished: field(row, fieldARollPublished),
			BOR:            borCandidates,
		})
	})

	return entities, nil
}

// field reads the first element matching selector within row
func field(row *goquery.Selection, selector string) dates.Field {
	sel := row.Find(selector).First()
	if sel.Length() == 0 {
		return dates.Field{}
	}

	times := make([]string, 0)
	row.Find(selector + " time").Each(func(_ int, t *goquery.Selection) {
		if text := strings.TrimSpace(t.Text()); text != "" {
			times = append(times, text)
		}
	})

	return dates.Field{
		Found: true,
		Times: times,
		Text:  flattenText(sel),
	}
}

// flattenText joins the trimmed text nodes under sel with single spaces, so
// adjacent elements do not run together ("June 2, 2025</span><span>August").
func flattenText(sel *goquery.Selection) string {
	parts := make([]string, 0)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

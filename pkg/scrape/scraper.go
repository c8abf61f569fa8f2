package scrape

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ScrapeReport captures the outcome of one listing crawl.
type ScrapeReport struct {
	// URLs are the discovered data.xml URLs, deduplicated, in first-seen order.
	URLs []string `json:"urls"`

	// PagesFetched is the number of listing pages visited.
	PagesFetched int `json:"pages_fetched"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Scraper paginates a legislation.gov.uk listing and collects the data.xml
// URL of every statutory instrument it links to.
type Scraper struct {
	config     Config
	httpClient HTTPClient
}

// NewScraper creates a scraper for the configured listing. The underlying
// HTTP client is throttled with the configured delays.
func NewScraper(config Config) *Scraper {
	return &Scraper{
		config:     config,
		httpClient: NewThrottledHTTPClient(http.DefaultClient, config.MinDelay, config.MaxDelay),
	}
}

// SetHTTPClient replaces the HTTP client (useful for tests with mock servers;
// the replacement is used as-is, without throttling).
func (scraper *Scraper) SetHTTPClient(httpClient HTTPClient) {
	scraper.httpClient = httpClient
}

// Run crawls listing pages starting from the configured base URL, following
// pagination until no next page exists or the page cap is reached.
func (scraper *Scraper) Run() (*ScrapeReport, error) {
	report := &ScrapeReport{StartedAt: time.Now()}
	seen := make(map[string]bool)

	currentPage := scraper.config.BaseURL
	for currentPage != "" {
		if scraper.config.MaxPages > 0 && report.PagesFetched >= scraper.config.MaxPages {
			break
		}

		listing, err := scraper.fetchListing(currentPage)
		if err != nil {
			return nil, err
		}
		report.PagesFetched++

		for _, dataURL := range extractDataURLs(listing) {
			if seen[dataURL] {
				continue
			}
			seen[dataURL] = true
			report.URLs = append(report.URLs, dataURL)
		}

		currentPage, err = nextPageURL(listing, currentPage)
		if err != nil {
			return nil, err
		}
	}

	report.CompletedAt = time.Now()
	return report, nil
}

// SaveURLList writes the discovered URLs to the configured output path, one
// per line.
func (scraper *Scraper) SaveURLList(report *ScrapeReport) error {
	if report == nil || len(report.URLs) == 0 {
		return fmt.Errorf("no URLs to save; run the scraper first")
	}

	var builder strings.Builder
	for _, discoveredURL := range report.URLs {
		builder.WriteString(discoveredURL)
		builder.WriteString("\n")
	}

	if err := os.WriteFile(scraper.config.OutputPath, []byte(builder.String()), 0644); err != nil {
		return fmt.Errorf("failed to write URL list %s: %w", scraper.config.OutputPath, err)
	}
	return nil
}

// fetchListing fetches one listing page and parses it into a goquery document.
func (scraper *Scraper) fetchListing(pageURL string) (*goquery.Document, error) {
	request, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", pageURL, err)
	}
	request.Header.Set("User-Agent", scraper.config.UserAgent)
	request.Header.Set("Accept", "text/html, application/xhtml+xml")

	response, err := scraper.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page %s: %w", pageURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("listing page %s returned HTTP %d", pageURL, response.StatusCode)
	}

	listing, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page %s: %w", pageURL, err)
	}
	return listing, nil
}

// extractDataURLs pulls statutory-instrument links from a listing page and
// rewrites each to its data.xml form. Listing links point at the /contents
// view; that segment is removed before appending /data.xml.
func extractDataURLs(listing *goquery.Document) []string {
	var dataURLs []string

	listing.Find("a[href^='/uksi/']").Each(func(_ int, anchor *goquery.Selection) {
		href, exists := anchor.Attr("href")
		if !exists || !strings.HasPrefix(href, "/uksi/") {
			return
		}
		href = strings.ReplaceAll(href, "/contents", "")
		fullURL := LegislationBaseURL + href
		dataURLs = append(dataURLs, strings.TrimRight(fullURL, "/")+"/data.xml")
	})

	return dataURLs
}

// nextPageURL returns the absolute URL of the next listing page, or "" when
// pagination is exhausted. Relative links are resolved against the current
// page.
func nextPageURL(listing *goquery.Document, currentPage string) (string, error) {
	nextAnchor := listing.Find("ul.pagination li.next a").First()
	if nextAnchor.Length() == 0 {
		nextAnchor = listing.Find("a[rel='next']").First()
	}
	if nextAnchor.Length() == 0 {
		return "", nil
	}

	href, exists := nextAnchor.Attr("href")
	if !exists || href == "" {
		return "", nil
	}

	currentURL, err := url.Parse(currentPage)
	if err != nil {
		return "", fmt.Errorf("invalid current page URL %s: %w", currentPage, err)
	}
	nextURL, err := currentURL.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid next page link %q: %w", href, err)
	}
	return nextURL.String(), nil
}

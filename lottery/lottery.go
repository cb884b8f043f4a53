// Package lottery scrapes the latest draw for a region from ketqua.net.
//
// Only two values are read from the page, the draw date and the special
// prize. Either may be missing from the markup; that yields a fixed
// placeholder rather than an error, while transport and status failures are
// returned to the caller.
package lottery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/prognoshealth/vnlookup/localtime"
	"github.com/prognoshealth/vnlookup/observability"
	"github.com/prognoshealth/vnlookup/regions"
)

const (
	// Source is reported in every result.
	Source = "ketqua.net"

	// DefaultBaseURL is the live results site.
	DefaultBaseURL = "https://ketqua.net"

	// DefaultDrawDate stands in when the page has no draw date ("today").
	DefaultDrawDate = "Hôm nay"

	// DefaultSpecialPrize stands in when the special prize is not out yet.
	DefaultSpecialPrize = "Chưa có"

	drawDateSelector     = ".ngay"
	specialPrizeSelector = ".giaidb span"

	metricsSource = "ketqua"
)

// Result is the lottery payload returned to callers.
type Result struct {
	Region       string `json:"dai"`
	DrawDate     string `json:"ngay"`
	SpecialPrize string `json:"giaiDB"`
	Source       string `json:"nguon"`
	FetchedAt    string `json:"cap_nhat"`
}

// Client fetches results pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	stamper    *localtime.Stamper
	metrics    *observability.Metrics
	userAgent  string
}

// NewClient creates a Client for baseURL. httpClient carries the timeout;
// metrics may be nil.
func NewClient(baseURL string, httpClient *http.Client, stamper *localtime.Stamper, metrics *observability.Metrics) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if stamper == nil {
		stamper = localtime.NewStamper(nil)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		stamper:    stamper,
		metrics:    metrics,
		userAgent:  "vnlookup/1.0",
	}
}

// Fetch returns the latest draw for code. Unknown codes fail with an error
// whose cause is regions.ErrUnknownRegion before any request is made.
func (c *Client) Fetch(ctx context.Context, code string) (Result, error) {
	segment, err := regions.Lookup(code)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	drawDate, prize, err := c.scrape(ctx, c.baseURL+"/"+segment)
	c.metrics.ObserveUpstream(metricsSource, time.Since(start).Seconds(), err)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Region:       strings.ToUpper(regions.Normalize(code)),
		DrawDate:     drawDate,
		SpecialPrize: prize,
		Source:       Source,
		FetchedAt:    c.stamper.Stamp(),
	}, nil
}

func (c *Client) scrape(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", errors.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", errors.Wrapf(err, "get %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", "", fmt.Errorf("%s responded %d: %s", url, resp.StatusCode, snippet)
	}

	drawDate, prize, err := Parse(resp.Body)
	if err != nil {
		return "", "", errors.Wrapf(err, "parse %s", url)
	}

	return drawDate, prize, nil
}

// Parse extracts the draw date and special prize from a results page,
// substituting the defaults for whichever is absent or blank.
func Parse(r io.Reader) (drawDate, specialPrize string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", err
	}

	drawDate = firstText(doc, drawDateSelector, DefaultDrawDate)
	specialPrize = firstText(doc, specialPrizeSelector, DefaultSpecialPrize)

	return drawDate, specialPrize, nil
}

func firstText(doc *goquery.Document, selector, fallback string) string {
	if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
		return text
	}
	return fallback
}

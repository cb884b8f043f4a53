// Package weather turns the wttr.in j1 report into a short current conditions
// and forecast summary.
//
// Unlike the lottery scraper every field read here is required: a report
// missing any of them fails the lookup.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/prognoshealth/vnlookup/localtime"
	"github.com/prognoshealth/vnlookup/observability"
)

const (
	// DefaultBaseURL is the public wttr.in service.
	DefaultBaseURL = "https://wttr.in"

	// DefaultLocation is used when the caller names none.
	DefaultLocation = "Ha Noi"

	// ForecastHours is the number of hourly entries kept.
	ForecastHours = 3

	metricsSource = "wttr"
)

// Forecast is one hourly entry.
type Forecast struct {
	Hour         string `json:"gio"`
	TemperatureC string `json:"nhiet_do"`
	Description  string `json:"mo_ta"`
}

// Report is the weather payload returned to callers.
type Report struct {
	Location        string     `json:"dia_diem"`
	TemperatureC    string     `json:"nhiet_do"`
	HumidityPct     string     `json:"do_am"`
	Condition       string     `json:"tinh_trang"`
	PrecipitationMm string     `json:"luong_mua"`
	VisibilityKm    string     `json:"tam_nhin"`
	Forecast        []Forecast `json:"du_bao"`
	FetchedAt       string     `json:"cap_nhat"`
}

// Client queries wttr.in.
type Client struct {
	httpClient *http.Client
	baseURL    string
	stamper    *localtime.Stamper
	metrics    *observability.Metrics
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
	}
}

// Fetch returns the report for location, or for DefaultLocation when it is
// blank.
func (c *Client) Fetch(ctx context.Context, location string) (Report, error) {
	if strings.TrimSpace(location) == "" {
		location = DefaultLocation
	}

	start := time.Now()
	doc, err := c.get(ctx, location)
	c.metrics.ObserveUpstream(metricsSource, time.Since(start).Seconds(), err)
	if err != nil {
		return Report{}, err
	}

	report, err := doc.report(location)
	if err != nil {
		return Report{}, errors.Wrapf(err, "unexpected report for '%s'", location)
	}

	report.FetchedAt = c.stamper.Stamp()
	return report, nil
}

func (c *Client) get(ctx context.Context, location string) (*document, error) {
	u := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", u)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%s responded %d: %s", u, resp.StatusCode, snippet)
	}

	doc := new(document)
	if err := json.NewDecoder(resp.Body).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "decode %s", u)
	}

	return doc, nil
}

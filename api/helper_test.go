package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/prognoshealth/vnlookup/localtime"
	"github.com/prognoshealth/vnlookup/lottery"
	"github.com/prognoshealth/vnlookup/observability"
	"github.com/prognoshealth/vnlookup/weather"
)

var testNow = time.Date(2026, 10, 19, 3, 4, 5, 0, time.UTC)

const testStamp = "10:04:05 19/10/2026"

// upstream is a stub of both outbound sources. Lottery pages echo the
// requested segment as the draw date; weather reports echo the location as
// the condition.
type upstream struct {
	server       *httptest.Server
	lotteryCalls int32
	weatherCalls int32
	status       int32
	delay        time.Duration
	lotteryHTML  string
	weatherJSON  string
}

func newUpstream(t *testing.T) *upstream {
	u := &upstream{status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/kq/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.lotteryCalls, 1)
		if !u.wait(w, r) {
			return
		}

		segment := strings.TrimPrefix(r.URL.Path, "/kq/")
		body := u.lotteryHTML
		if body == "" {
			body = `<div class="ngay">` + segment + `</div><div class="giaidb"><span>` + segment + `-db</span></div>`
		}
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/wttr/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&u.weatherCalls, 1)
		if !u.wait(w, r) {
			return
		}

		body := u.weatherJSON
		if body == "" {
			location := strings.TrimPrefix(r.URL.Path, "/wttr/")
			desc, _ := json.Marshal(location)
			body = `{"current_condition": [{"temp_C": "28", "humidity": "79", "weatherDesc": [{"value": ` + string(desc) + `}], "precipMM": "0.3", "visibility": "10"}],
				"weather": [{"hourly": [
					{"time": "0", "tempC": "25", "weatherDesc": [{"value": "Clear"}]},
					{"time": "300", "tempC": "24", "weatherDesc": [{"value": "Mist"}]},
					{"time": "600", "tempC": "26", "weatherDesc": [{"value": "Sunny"}]},
					{"time": "900", "tempC": "29", "weatherDesc": [{"value": "Hot"}]}
				]}]}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	u.server = httptest.NewServer(mux)
	t.Cleanup(u.server.Close)

	return u
}

func (u *upstream) wait(w http.ResponseWriter, r *http.Request) bool {
	if u.delay > 0 {
		select {
		case <-time.After(u.delay):
		case <-r.Context().Done():
			return false
		}
	}
	if status := int(atomic.LoadInt32(&u.status)); status != http.StatusOK {
		w.WriteHeader(status)
		return false
	}
	return true
}

type handlerOption func(*Options)

func withMount(mount string) handlerOption {
	return func(o *Options) { o.Mount = mount }
}

func withInfoRoute(route string) handlerOption {
	return func(o *Options) { o.InfoRoute = route }
}

func newTestHandler(t *testing.T, u *upstream, timeout time.Duration, opts ...handlerOption) *Handler {
	stamper := localtime.NewStamper(clockwork.NewFakeClockAt(testNow))
	metrics := observability.NewMetrics(nil)
	httpClient := &http.Client{Timeout: timeout}

	o := Options{
		Lottery: lottery.NewClient(u.server.URL+"/kq", httpClient, stamper, metrics),
		Weather: weather.NewClient(u.server.URL+"/wttr", httpClient, stamper, metrics),
		Stamper: stamper,
		Metrics: metrics,
		Logger:  observability.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := New(o)
	require.NoError(t, err)
	return h
}

func get(path string, query map[string]string) events.APIGatewayV2HTTPRequest {
	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}

	return events.APIGatewayV2HTTPRequest{
		RawPath:               path,
		RawQueryString:        values.Encode(),
		QueryStringParameters: query,
		Headers:               map[string]string{},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: "GET",
				Path:   path,
			},
		},
	}
}

func call(t *testing.T, h *Handler, request events.APIGatewayV2HTTPRequest) (int, map[string]interface{}) {
	t.Helper()

	response, err := h.Handle(context.Background(), request)
	require.NoError(t, err)
	require.Equal(t, "application/json; charset=utf-8", response.Headers["Content-Type"])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(response.Body), &body))

	return response.StatusCode, body
}

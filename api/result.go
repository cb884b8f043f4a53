package api

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/prognoshealth/vnlookup/observability"
	"github.com/prognoshealth/vnlookup/proxy"
)

// Kind classifies the outcome of a route.
type Kind int

const (
	KindOK Kind = iota
	KindUserError
	KindUpstreamError
)

// Result is what a route produces before it is turned into a response.
//
// User errors are answered with 200 and an error body, upstream errors with
// 500. Existing callers depend on that split.
type Result struct {
	Kind    Kind
	Payload interface{}
	Message string
	Err     error
}

// OK wraps a successful payload.
func OK(payload interface{}) Result {
	return Result{Kind: KindOK, Payload: payload}
}

// UserError reports bad input with message.
func UserError(message string) Result {
	return Result{Kind: KindUserError, Message: message}
}

// UpstreamError reports a failed outbound call. err is logged, only message
// reaches the caller.
func UpstreamError(message string, err error) Result {
	return Result{Kind: KindUpstreamError, Message: message, Err: err}
}

// Status is the http status code the result maps to.
func (r Result) Status() int {
	if r.Kind == KindUpstreamError {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// Outcome is the metrics label for the result.
func (r Result) Outcome() string {
	switch r.Kind {
	case KindUserError:
		return observability.OutcomeUserError
	case KindUpstreamError:
		return observability.OutcomeUpstreamError
	default:
		return observability.OutcomeOK
	}
}

// Response renders the result.
func (r Result) Response() (events.APIGatewayProxyResponse, error) {
	if r.Kind == KindOK {
		return proxy.JSON(r.Status(), r.Payload)
	}
	return proxy.JSONError(r.Status(), r.Message)
}

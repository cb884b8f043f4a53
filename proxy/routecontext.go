package proxy

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// RouteContext contains all the request information for a route when matched.
type RouteContext struct {
	Context context.Context
	Request events.APIGatewayV2HTTPRequest
	Params  map[string]string
}

// Body returns a string representation of the request body
func (ctx *RouteContext) Body() (string, error) {
	if ctx.Request.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(ctx.Request.Body)
		if err != nil {
			return "", errors.Wrapf(err, "unable to decode request body for %s", ctx.Request.RawPath)
		}

		return string(b), nil
	}

	return ctx.Request.Body, nil
}

// Param returns the named parameter or "" when absent.
func (ctx *RouteContext) Param(name string) string {
	return ctx.Params[name]
}

// ParamOr returns the named parameter, or fallback when it is absent or
// blank.
func (ctx *RouteContext) ParamOr(name, fallback string) string {
	if v := ctx.Params[name]; strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// extractParamsFromQuery copies query parameters into params. Api gateway
// fills QueryStringParameters itself; requests built by hand may only carry
// RawQueryString, in which case the first value of each key wins.
func extractParamsFromQuery(params map[string]string, request events.APIGatewayV2HTTPRequest) {
	if len(request.QueryStringParameters) > 0 {
		for k, v := range request.QueryStringParameters {
			params[k] = v
		}
		return
	}

	if request.RawQueryString == "" {
		return
	}

	// ParseQuery keeps every well formed pair even when it reports an error.
	values, _ := url.ParseQuery(request.RawQueryString)

	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
}

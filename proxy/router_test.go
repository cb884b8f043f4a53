package proxy

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Valid_true(t *testing.T) {
	r := &Router{}

	assert.True(t, r.Valid())
}

func TestRouter_Valid_false(t *testing.T) {
	r := &Router{}
	r.AddBuildError(errors.New("some error"))

	assert.False(t, r.Valid())
}

func TestRouter_AddRoute(t *testing.T) {
	r := &Router{}

	assert.Empty(t, r.Routes)

	route, err := NewRoute(GET, "/xoso", testHandler)
	assert.NoError(t, err)

	r.AddRoute(route)

	assert.Len(t, r.Routes, 1)
	assert.Equal(t, route, r.Routes[0])

	route2, err := NewRoute(GET, "/thoitiet", testHandler)
	assert.NoError(t, err)

	r.AddRoute(route2)

	assert.Len(t, r.Routes, 2)
	assert.Equal(t, route2, r.Routes[1])
}

func TestRouter_BuildErrors(t *testing.T) {
	r := &Router{}

	r.AddBuildError(errors.New("some error"))
	r.AddBuildError(errors.New("some other error"))

	err := r.BuildErrors()

	assert.Equal(t, "some other error: some error: failed building router", err.Error())
}

func TestRouter_AddRouteIfNoError(t *testing.T) {
	r := &Router{}

	r.AddRouteIfNoError(NewRoute(GET, "/xoso", testHandler))
	r.AddRouteIfNoError(NewRoute(GET, "asom (?<in-invalid>.*)", testHandler))

	assert.Len(t, r.Routes, 1)
	assert.Len(t, r.errors, 1)

	assert.Equal(t, "GET ^/xoso/?$", r.Routes[0].String())

	err := r.BuildErrors()
	assert.Equal(t, "failed compiling regex pattern 'asom (?<in-invalid>.*)': error parsing regexp: invalid or unsupported Perl syntax: `(?<`: failed building router", err.Error())
}

func TestRouter_ConvenienceMethods(t *testing.T) {
	r := &Router{}
	r.GET("/route", testHandler)
	r.HEAD("/route", testHandler)
	r.OPTIONS("/route", testHandler)

	assert.Len(t, r.Routes, 3)
	assert.Equal(t, "GET ^/route/?$", r.Routes[0].String())
	assert.Equal(t, "HEAD ^/route/?$", r.Routes[1].String())
	assert.Equal(t, "OPTIONS ^/route/?$", r.Routes[2].String())
}

func TestRouter_Route(t *testing.T) {
	r := &Router{}
	r.GET("/route", testHandler)

	response, err := r.Route(context.Background(), testRequest(GET, "/route"))

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
}

func TestRouter_Route_multiple(t *testing.T) {
	r := &Router{}

	routeHandler := func(context *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{
				StatusCode: 200,
				Body:       context.Request.RawPath,
			},
			nil
	}

	r.GET("/route", routeHandler)
	r.GET("/route2", routeHandler)
	r.GET("/route/to/(?P<id>[0-9]+)/something", routeHandler)

	response, err := r.Route(context.Background(), testRequest(GET, "/route2"))

	assert.NoError(t, err)
	assert.Equal(t, "/route2", response.Body)

	response, err = r.Route(context.Background(), testRequest(GET, "/route/to/5/something"))

	assert.NoError(t, err)
	assert.Equal(t, "/route/to/5/something", response.Body)
}

func TestRouter_Route_params(t *testing.T) {
	r := &Router{}

	routeHandler := func(context *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{
				StatusCode: 200,
				Body:       context.Params["id"] + "/" + context.Params["dai"],
			},
			nil
	}

	r.GET("/route/to/(?P<id>[0-9]+)", routeHandler)

	request := testQueryRequest(GET, "/route/to/42", map[string]string{"dai": "mega"})
	response, err := r.Route(context.Background(), request)

	assert.NoError(t, err)
	assert.Equal(t, "42/mega", response.Body)
}

func TestRouter_Route_mount(t *testing.T) {
	r := &Router{Mount: "/.netlify/functions/api/"}

	routeHandler := func(context *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 200, Body: "hit"}, nil
	}

	r.GET("/xoso", routeHandler)
	r.GET("/", routeHandler)

	response, err := r.Route(context.Background(), testRequest(GET, "/.netlify/functions/api/xoso"))
	assert.NoError(t, err)
	assert.Equal(t, "hit", response.Body)

	response, err = r.Route(context.Background(), testRequest(GET, "/.netlify/functions/api"))
	assert.NoError(t, err)
	assert.Equal(t, "hit", response.Body)

	_, err = r.Route(context.Background(), testRequest(GET, "/xoso"))
	assert.Error(t, err)

	_, err = r.Route(context.Background(), testRequest(GET, "/.netlify/functions/apixoso"))
	assert.Error(t, err)
}

func TestRouter_Route_fallbackToContextPath(t *testing.T) {
	r := &Router{}
	r.GET("/xoso", testHandler)

	request := testRequest(GET, "/xoso")
	request.RawPath = ""

	response, err := r.Route(context.Background(), request)
	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
}

func TestRouter_Route_catchError_error(t *testing.T) {
	r := &Router{}

	errorHandler := func(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Body:       err.Error(),
		}, nil
	}

	routeHandler := func(context *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 500}, errors.New("failed")
	}

	r.GET("/route", routeHandler)
	r.AddErrorHandler(errorHandler)

	response, err := r.Route(context.Background(), testRequest(GET, "/route"))

	assert.NoError(t, err)
	assert.Equal(t, 500, response.StatusCode)
	assert.Equal(t, "failed", response.Body)
}

func TestRouter_Route_catchError_noError(t *testing.T) {
	r := &Router{}

	errorHandler := func(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 500, Body: err.Error()}, nil
	}

	r.GET("/route", testHandler)
	r.AddErrorHandler(errorHandler)

	response, err := r.Route(context.Background(), testRequest(GET, "/route"))

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
}

func TestRouter_Route_noCatchError_error(t *testing.T) {
	r := &Router{}

	routeHandler := func(context *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 500}, errors.New("failed")
	}

	r.GET("/route", routeHandler)

	response, err := r.Route(context.Background(), testRequest(GET, "/route"))

	assert.Error(t, err)
	assert.Equal(t, "failed", err.Error())
	assert.Equal(t, 500, response.StatusCode)
}

func TestRouter_Route_noCatchAll_noMatch(t *testing.T) {
	r := &Router{}

	_, err := r.Route(context.Background(), testRequest(GET, "/yolo"))

	assert.Error(t, err)
	assert.Equal(t, "'GET /yolo' not found", err.Error())
}

func TestRouter_Route_CatchAll_noMatch(t *testing.T) {
	r := &Router{}

	handler := func(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{
			StatusCode: 404,
			Body:       "not found",
		}, nil
	}

	r.AddCatchAllHandler(handler)

	response, err := r.Route(context.Background(), testRequest(GET, "/yolo"))

	assert.NoError(t, err)
	assert.Equal(t, 404, response.StatusCode)
	assert.Equal(t, "not found", response.Body)
}

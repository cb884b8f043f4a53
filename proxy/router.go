package proxy

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ErrorHandler defines the function interface the router uses to handle any
// error that occurs while processing routes.
type ErrorHandler func(context.Context, events.APIGatewayV2HTTPRequest, error) (events.APIGatewayProxyResponse, error)

// CatchAllHandler defines the function interface the router uses to handle any
// request that doesn't match a route.
type CatchAllHandler func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error)

// Router routes an incoming events.APIGatewayV2HTTPRequest to the first
// matching route, in the order routes were added, and returns its
// events.APIGatewayProxyResponse.
//
// When Mount is set only paths under it are considered and the prefix is
// stripped before matching, so the same routes work behind "/" or behind a
// platform function path such as "/.netlify/functions/api".
//
// If the CatchAll handler is set any request that doesn't match a route will be
// handled by it. If the CatchError handler is set any route error is passed to
// it for conversion into a response.
//
// Example:
//
//	func pingHandler(ctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
//		return proxy.JSON(200, map[string]string{"pong": ctx.Param("who")})
//	}
//
//	func handler(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
//		router := &proxy.Router{Mount: "/api"}
//		router.GET("/ping", pingHandler)
//
//		if !router.Valid() {
//			return events.APIGatewayProxyResponse{}, router.BuildErrors()
//		}
//
//		return router.Route(ctx, request)
//	}
type Router struct {
	Mount      string
	Routes     []*Route
	CatchAll   CatchAllHandler
	CatchError ErrorHandler

	errors []error
}

// Valid returns true if the routers' routes have all been built successfully.
// Otherwise false.
func (router *Router) Valid() bool {
	return len(router.errors) == 0
}

// AddRoute appends route to the list of routes used for request matching.
func (router *Router) AddRoute(route *Route) {
	router.Routes = append(router.Routes, route)
}

// AddBuildError appends an error to the list of router errors.
func (router *Router) AddBuildError(err error) {
	router.errors = append(router.errors, err)
}

// BuildErrors returns a single error that encapsulates all the route errors
// found during router construction.
func (router *Router) BuildErrors() error {
	topError := errors.New("failed building router")

	for _, err := range router.errors {
		topError = errors.Wrap(topError, err.Error())
	}

	return topError
}

// AddRouteIfNoError appends the provided route if no error is present.
// Otherwise it adds the error to the build errors.
func (router *Router) AddRouteIfNoError(route *Route, err error) {
	if err != nil {
		router.AddBuildError(err)
	} else {
		router.AddRoute(route)
	}
}

// GET adds a new GET route with the specified pattern match and handler.
func (router *Router) GET(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(GET, match, handler))
}

// HEAD adds a new HEAD route with the specified pattern match and handler.
func (router *Router) HEAD(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(HEAD, match, handler))
}

// OPTIONS adds a new OPTIONS route with the specified pattern match and handler.
func (router *Router) OPTIONS(match string, handler RouteHandler) {
	router.AddRouteIfNoError(NewRoute(OPTIONS, match, handler))
}

// AddCatchAllHandler attaches a catchall handler to the router.
func (router *Router) AddCatchAllHandler(handler CatchAllHandler) {
	router.CatchAll = handler
}

// AddErrorHandler attaches a error handler to the router.
func (router *Router) AddErrorHandler(handler ErrorHandler) {
	router.CatchError = handler
}

// relativePath strips the mount prefix from the request path. ok is false
// when the path lives outside the mount.
func (router *Router) relativePath(request events.APIGatewayV2HTTPRequest) (string, bool) {
	path := request.RawPath
	if path == "" {
		path = request.RequestContext.HTTP.Path
	}

	mount := strings.TrimRight(router.Mount, "/")
	if mount == "" {
		return path, true
	}

	if path != mount && !strings.HasPrefix(path, mount+"/") {
		return "", false
	}

	rel := strings.TrimPrefix(path, mount)
	if rel == "" {
		rel = "/"
	}

	return rel, true
}

// routeInternal executes the first route matching the request, falling back
// to the catch all handler. Without a catch all an unmatched request is an
// error.
func (router *Router) routeInternal(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	method := request.RequestContext.HTTP.Method

	if path, ok := router.relativePath(request); ok {
		for _, route := range router.Routes {
			matched, groups := route.IsMatch(method, path)
			if !matched {
				continue
			}

			return route.Follow(ctx, request, groups)
		}
	}

	if router.CatchAll != nil {
		return router.CatchAll(ctx, request)
	}

	return events.APIGatewayProxyResponse{}, fmt.Errorf("'%s %s' not found", method, request.RawPath)
}

// Route dispatches the request as described on Router. If an error handler is
// set any error is handed to it and its result returned instead.
func (router *Router) Route(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	if router.CatchError == nil {
		return router.routeInternal(ctx, request)
	}

	response, err := router.routeInternal(ctx, request)
	if err != nil {
		return router.CatchError(ctx, request, err)
	}

	return response, nil
}

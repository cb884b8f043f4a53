// Package api is the request handler of the function: an info route, the
// lottery lookup on /xoso and the weather lookup on /thoitiet, all answered
// with JSON.
//
// The mount prefix and which info route exists (/home or /docs) are options,
// so one handler serves every deployment.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/prognoshealth/vnlookup/config"
	"github.com/prognoshealth/vnlookup/lambdautils"
	"github.com/prognoshealth/vnlookup/localtime"
	"github.com/prognoshealth/vnlookup/lottery"
	"github.com/prognoshealth/vnlookup/observability"
	"github.com/prognoshealth/vnlookup/proxy"
	"github.com/prognoshealth/vnlookup/regions"
	"github.com/prognoshealth/vnlookup/weather"
)

// Messages returned to callers. They are part of the public contract.
const (
	InvalidRegionMessage  = "❌ Đài không hợp lệ."
	LotteryFailureMessage = "Không thể lấy dữ liệu xổ số."
	WeatherFailureMessage = "Không thể lấy dữ liệu thời tiết."
	NotFoundMessage       = "not found"
	InternalErrorMessage  = "internal error"
)

// Query parameter names.
const (
	RegionParam   = "dai"
	LocationParam = "dia_diem"
)

// LotteryFetcher returns the latest draw for a region code.
type LotteryFetcher interface {
	Fetch(ctx context.Context, code string) (lottery.Result, error)
}

// WeatherFetcher returns the weather report for a location.
type WeatherFetcher interface {
	Fetch(ctx context.Context, location string) (weather.Report, error)
}

// Options configures a Handler. Lottery and Weather are required.
type Options struct {
	Mount     string
	InfoRoute string
	Lottery   LotteryFetcher
	Weather   WeatherFetcher
	Stamper   *localtime.Stamper
	Metrics   *observability.Metrics
	Logger    *slog.Logger
}

// Handler dispatches api gateway requests.
type Handler struct {
	router    *proxy.Router
	infoRoute string
	mount     string
	lottery   LotteryFetcher
	weather   WeatherFetcher
	stamper   *localtime.Stamper
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New builds a Handler and its routes.
func New(opts Options) (*Handler, error) {
	if opts.Lottery == nil || opts.Weather == nil {
		return nil, errors.New("lottery and weather fetchers are required")
	}
	if opts.InfoRoute == "" {
		opts.InfoRoute = config.InfoRouteHome
	}
	if opts.InfoRoute != config.InfoRouteHome && opts.InfoRoute != config.InfoRouteDocs {
		return nil, errors.Errorf("unknown info route '%s'", opts.InfoRoute)
	}
	if opts.Stamper == nil {
		opts.Stamper = localtime.NewStamper(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := &Handler{
		infoRoute: opts.InfoRoute,
		lottery:   opts.Lottery,
		weather:   opts.Weather,
		stamper:   opts.Stamper,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}

	h.mount = strings.TrimRight(opts.Mount, "/")
	router := &proxy.Router{Mount: h.mount}

	router.GET("/"+opts.InfoRoute, h.serve(opts.InfoRoute, h.info))
	router.GET("/xoso", h.serve("xoso", h.xoso))
	router.GET("/thoitiet", h.serve("thoitiet", h.thoitiet))
	router.AddCatchAllHandler(h.notFound)
	router.AddErrorHandler(h.internalError)

	if !router.Valid() {
		return nil, router.BuildErrors()
	}

	h.router = router
	return h, nil
}

// Handle is the lambda entry point.
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	return h.router.Route(ctx, request)
}

// Router exposes the underlying router, e.g. for proxy.NewHTTPHandler.
func (h *Handler) Router() *proxy.Router {
	return h.router
}

func (h *Handler) serve(route string, fn func(*proxy.RouteContext) Result) proxy.RouteHandler {
	return func(rctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
		result := fn(rctx)
		h.metrics.CountRequest(route, result.Outcome())

		logger := lambdautils.Logger(rctx.Context, h.logger).With(slog.String("route", route))
		switch result.Kind {
		case KindUpstreamError:
			logger.Error("upstream request failed", slog.Any("error", result.Err))
		case KindUserError:
			logger.Info("rejected request", slog.String("reason", result.Message))
		default:
			logger.Debug("request served")
		}

		return result.Response()
	}
}

func (h *Handler) info(*proxy.RouteContext) Result {
	return OK(infoDocument(h.infoRoute, h.mount, h.stamper))
}

func (h *Handler) xoso(rctx *proxy.RouteContext) Result {
	result, err := h.lottery.Fetch(rctx.Context, rctx.Param(RegionParam))
	if err != nil {
		if errors.Is(err, regions.ErrUnknownRegion) {
			return UserError(InvalidRegionMessage)
		}
		return UpstreamError(LotteryFailureMessage, err)
	}

	return OK(result)
}

func (h *Handler) thoitiet(rctx *proxy.RouteContext) Result {
	report, err := h.weather.Fetch(rctx.Context, rctx.ParamOr(LocationParam, weather.DefaultLocation))
	if err != nil {
		return UpstreamError(WeatherFailureMessage, err)
	}

	return OK(report)
}

func (h *Handler) notFound(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	h.metrics.CountRequest("unmatched", observability.OutcomeUserError)
	return proxy.JSONError(http.StatusNotFound, NotFoundMessage)
}

func (h *Handler) internalError(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
	lambdautils.Logger(ctx, h.logger).Error("request failed",
		slog.String("method", request.RequestContext.HTTP.Method),
		slog.String("path", request.RawPath),
		slog.Any("error", err),
	)
	return proxy.JSONError(http.StatusInternalServerError, InternalErrorMessage)
}

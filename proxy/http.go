package proxy

import (
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// maxBodyBytes bounds how much of a local request body is forwarded.
const maxBodyBytes = 1 << 20

// NewHTTPHandler serves router over net/http by translating each request into
// the api gateway v2 event the lambda runtime would deliver.
func NewHTTPHandler(router *Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request, err := EventFromHTTP(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		response, err := router.Route(r.Context(), request)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if err := WriteHTTP(w, response); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// EventFromHTTP converts r into an events.APIGatewayV2HTTPRequest. Repeated
// query keys and headers are joined with commas as api gateway does.
func EventFromHTTP(r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, errors.Wrap(err, "failed reading request body")
	}

	request := events.APIGatewayV2HTTPRequest{
		Version:        "2.0",
		RouteKey:       "$default",
		RawPath:        r.URL.Path,
		RawQueryString: r.URL.RawQuery,
		Headers:        map[string]string{},
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			Stage:     "$default",
			TimeEpoch: time.Now().UnixMilli(),
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  sourceIP(r.RemoteAddr),
				UserAgent: r.UserAgent(),
			},
		},
	}

	if query := r.URL.Query(); len(query) > 0 {
		request.QueryStringParameters = make(map[string]string, len(query))
		for k, v := range query {
			request.QueryStringParameters[k] = strings.Join(v, ",")
		}
	}

	for k, v := range r.Header {
		request.Headers[strings.ToLower(k)] = strings.Join(v, ",")
	}

	if len(body) > 0 {
		if utf8.Valid(body) {
			request.Body = string(body)
		} else {
			request.Body = base64.StdEncoding.EncodeToString(body)
			request.IsBase64Encoded = true
		}
	}

	return request, nil
}

// WriteHTTP writes a lambda proxy response to w.
func WriteHTTP(w http.ResponseWriter, response events.APIGatewayProxyResponse) error {
	body := []byte(response.Body)
	if response.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(response.Body)
		if err != nil {
			return errors.Wrap(err, "failed decoding response body")
		}
		body = decoded
	}

	for k, v := range response.Headers {
		w.Header().Set(k, v)
	}
	for k, values := range response.MultiValueHeaders {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

func sourceIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

package proxy

import (
	"github.com/aws/aws-lambda-go/events"
)

func testHandler(context *RouteContext) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

func testRequest(method HttpMethod, path string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method.String(),
				Path:   path,
			},
		},
		Headers: map[string]string{},
	}
}

func testQueryRequest(method HttpMethod, path string, query map[string]string) events.APIGatewayV2HTTPRequest {
	request := testRequest(method, path)
	request.QueryStringParameters = query
	return request
}

// Package proxy routes aws api gateway v2 (http) events inside a lambda
// function. Requests arrive as events.APIGatewayV2HTTPRequest and leave as
// events.APIGatewayProxyResponse; the same router can also be served over
// plain net/http for local development via NewHTTPHandler.
//
// The router is deliberately small: ordered regex matching, an optional mount
// prefix, a catch all and an error hook.
package proxy

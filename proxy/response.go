package proxy

import (
	"bytes"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ContentTypeJSON is the content type attached to every JSON response.
const ContentTypeJSON = "application/json; charset=utf-8"

// JSON encodes v as the body of a response with the given status code. HTML
// characters are left unescaped so payloads read the same as they were built.
func JSON(status int, v interface{}) (events.APIGatewayProxyResponse, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return events.APIGatewayProxyResponse{}, errors.Wrapf(err, "failed encoding %T", v)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type": ContentTypeJSON,
		},
		Body:            string(bytes.TrimRight(buf.Bytes(), "\n")),
		IsBase64Encoded: false,
	}, nil
}

// ErrorBody is the payload shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSONError responds with {"error": message}.
func JSONError(status int, message string) (events.APIGatewayProxyResponse, error) {
	return JSON(status, ErrorBody{Error: message})
}

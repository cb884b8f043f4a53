package proxy

import (
	"strconv"
	"strings"
)

// HttpMethod is an enum of the standard Http Methods.
type HttpMethod int

const (
	GET HttpMethod = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var methodNames = [...]string{
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
}

func (m HttpMethod) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "HttpMethod(" + strconv.Itoa(int(m)) + ")"
	}
	return methodNames[m]
}

// Is reports whether the raw request method names m. Case is ignored.
func (m HttpMethod) Is(raw string) bool {
	return strings.EqualFold(m.String(), raw)
}

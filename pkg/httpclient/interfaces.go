package httpclient

import (
	"context"
	"net/url"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	Post(ctx context.Context, url string, headers map[string]string, body Body) (Response, error)
}

// Body is an outgoing request payload, encoded either as JSON or as a form.
type Body struct {
	JSON any
	Form url.Values
}

// JSONBody wraps v so it is sent as application/json.
func JSONBody(v any) Body { return Body{JSON: v} }

// FormBody wraps values so they are sent as application/x-www-form-urlencoded.
func FormBody(values url.Values) Body { return Body{Form: values} }

// IsForm reports whether the body is form encoded.
func (b Body) IsForm() bool { return b.Form != nil }

package httpclient

import (
	"fmt"
	"strings"
)

const maxSnippetBytes = 512

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http response status %d: %s", e.StatusCode, Snippet(e.Body))
}

// CheckStatus returns a *StatusError when resp is not a 2xx response.
func CheckStatus(resp Response) error {
	if resp == nil {
		return fmt.Errorf("http response is nil")
	}
	code := resp.StatusCode()
	if code < 200 || code > 299 {
		return &StatusError{StatusCode: code, Body: resp.Body()}
	}
	return nil
}

// Snippet trims body to a printable prefix for error messages and logs.
func Snippet(body []byte) string {
	if len(body) > maxSnippetBytes {
		body = body[:maxSnippetBytes]
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	return s
}

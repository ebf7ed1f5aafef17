// Package envelope decodes the JSON envelopes returned by the open platform
// gateway and token endpoint.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorKey is the top-level key of a failure envelope.
const ErrorKey = "error_response"

// Response is a decoded JSON envelope. Numbers are kept as json.Number so
// 64-bit identifiers survive decoding.
type Response map[string]any

// RemoteAPIError is returned when the remote side answers with an
// error_response envelope. Only error_msg is kept.
type RemoteAPIError struct {
	Message string
}

func (e *RemoteAPIError) Error() string { return e.Message }

// Decode parses body into a Response. Parse errors are returned as produced
// by encoding/json.
func Decode(body []byte) (Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var resp Response
	if err := dec.Decode(&resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CheckError converts an error_response envelope into a *RemoteAPIError.
func CheckError(resp Response) error {
	raw, ok := resp[ErrorKey]
	if !ok {
		return nil
	}

	errResp, _ := raw.(map[string]any)
	return &RemoteAPIError{Message: stringField(errResp, "error_msg")}
}

// Unwrap returns the payload stored under key, or the whole response when
// the key is absent.
func Unwrap(resp Response, key string) any {
	if v, ok := resp[key]; ok {
		return v
	}
	return resp
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

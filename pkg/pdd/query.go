package pdd

import (
	"fmt"
	"net/url"
)

// System parameter names injected by the client.
const (
	ParamType        = "type"
	ParamClientID    = "client_id"
	ParamTimestamp   = "timestamp"
	ParamAccessToken = "access_token"
	ParamSign        = "sign"
)

// Query is the flat, signed parameter set posted to the gateway.
type Query map[string]Value

// Get returns the canonical string stored under key.
func (q Query) Get(key string) (string, bool) {
	v, ok := q[key]
	if !ok {
		return "", false
	}
	s, err := v.Canonical()
	if err != nil {
		return "", false
	}
	return s, true
}

// Form renders the query as form values.
func (q Query) Form() (url.Values, error) {
	out := make(url.Values, len(q))
	for k, v := range q {
		s, err := v.Canonical()
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		out.Set(k, s)
	}
	return out, nil
}

// Redacted returns a copy safe for logging.
func (q Query) Redacted() map[string]string {
	out := make(map[string]string, len(q))
	for k := range q {
		switch k {
		case ParamAccessToken, ParamSign:
			out[k] = "***"
		default:
			out[k], _ = q.Get(k)
		}
	}
	return out
}

package pdd

import (
	"time"

	"github.com/samvad-hq/pdd-open-client/pkg/httpclient"
)

// BodyEncoding selects how the signed query is written to the request body.
type BodyEncoding string

const (
	EncodingJSON BodyEncoding = "json"
	EncodingForm BodyEncoding = "form"
)

type clientOptions struct {
	accessToken string
	gatewayURL  string
	transport   httpclient.Client
	log         Logger
	now         func() time.Time
	encoding    BodyEncoding
	recorder    Recorder
}

// Option configures a Client.
type Option func(o *clientOptions)

// WithAccessToken makes every request carry access_token. Without it the
// client runs in anonymous mode.
func WithAccessToken(token string) Option {
	return func(o *clientOptions) {
		o.accessToken = token
	}
}

// WithGatewayURL overrides DefaultGatewayURL.
func WithGatewayURL(u string) Option {
	return func(o *clientOptions) {
		o.gatewayURL = u
	}
}

// WithTransport injects the HTTP transport. The default is a resty client
// without a timeout.
func WithTransport(c httpclient.Client) Option {
	return func(o *clientOptions) {
		o.transport = c
	}
}

func WithLogger(log Logger) Option {
	return func(o *clientOptions) {
		o.log = log
	}
}

// WithClock replaces time.Now as the source of the timestamp parameter.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) {
		o.now = now
	}
}

// WithBodyEncoding chooses between a JSON (default) and a form encoded body.
func WithBodyEncoding(enc BodyEncoding) Option {
	return func(o *clientOptions) {
		o.encoding = enc
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *clientOptions) {
		o.recorder = r
	}
}

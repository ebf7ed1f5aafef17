// Package oauth exchanges an authorization code for an access token. The
// token endpoint is unsigned and independent of the RPC gateway client.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samvad-hq/pdd-open-client/pkg/envelope"
	"github.com/samvad-hq/pdd-open-client/pkg/httpclient"
	"github.com/samvad-hq/pdd-open-client/pkg/pdd"
)

const (
	DefaultTokenURL = "http://open-api.pinduoduo.com/oauth/token"

	grantTypeAuthorizationCode = "authorization_code"
)

// Credentials are the same application credentials the gateway client uses.
type Credentials = pdd.Credentials

// Logger defines the logging surface the token exchange relies on.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}

type options struct {
	tokenURL  string
	transport httpclient.Client
	log       Logger
}

// Option configures GetAccessToken.
type Option func(o *options)

func WithTokenURL(u string) Option {
	return func(o *options) { o.tokenURL = u }
}

func WithTransport(c httpclient.Client) Option {
	return func(o *options) { o.transport = c }
}

func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	Code         string `json:"code"`
	GrantType    string `json:"grant_type"`
	ClientSecret string `json:"client_secret"`
}

// GetAccessToken posts code to the token endpoint. An error_response
// envelope becomes *envelope.RemoteAPIError; any other body is returned as
// decoded.
func GetAccessToken(ctx context.Context, creds Credentials, code string, opts ...Option) (envelope.Response, error) {
	o := options{tokenURL: DefaultTokenURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = httpclient.NewRestyClient(0)
	}
	if o.log == nil {
		o.log = noopLogger{}
	}

	req := tokenRequest{
		ClientID:     creds.ClientID,
		Code:         code,
		GrantType:    grantTypeAuthorizationCode,
		ClientSecret: creds.ClientSecret,
	}

	o.log.DebugObj("oauth token exchange", "oauth_request", map[string]any{
		"client_id": creds.ClientID,
		"token_url": o.tokenURL,
	})

	httpResp, err := o.transport.Post(ctx, o.tokenURL, nil, httpclient.JSONBody(req))
	if err != nil {
		return nil, err
	}
	if err := httpclient.CheckStatus(httpResp); err != nil {
		return nil, err
	}

	resp, err := envelope.Decode(httpResp.Body())
	if err != nil {
		return nil, err
	}
	if err := envelope.CheckError(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Token is a typed view of a successful token response.
type Token struct {
	AccessToken           string   `json:"access_token"`
	ExpiresIn             int64    `json:"expires_in"`
	ExpiresAt             int64    `json:"expires_at"`
	RefreshToken          string   `json:"refresh_token"`
	RefreshTokenExpiresIn int64    `json:"refresh_token_expires_in"`
	RefreshTokenExpiresAt int64    `json:"refresh_token_expires_at"`
	Scope                 []string `json:"scope"`
	OwnerID               string   `json:"owner_id"`
	OwnerName             string   `json:"owner_name"`
}

// DecodeToken maps resp onto Token. Fields are not validated.
func DecodeToken(resp envelope.Response) (Token, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return Token{}, fmt.Errorf("encode token response: %w", err)
	}
	var tok Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return Token{}, fmt.Errorf("decode token response: %w", err)
	}
	return tok, nil
}

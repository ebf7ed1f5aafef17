package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samvad-hq/pdd-open-client/pkg/envelope"
	"github.com/samvad-hq/pdd-open-client/pkg/httpclient"
	"github.com/samvad-hq/pdd-open-client/pkg/pdd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, reply string, got *tokenRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetAccessTokenSuccess(t *testing.T) {
	var req tokenRequest
	srv := newTokenServer(t, `{"access_token":"at","expires_in":86400,"refresh_token":"rt","scope":["pdd.order.list"],"owner_id":"42","owner_name":"shop"}`, &req)

	resp, err := GetAccessToken(context.Background(), Credentials{ClientID: "cid", ClientSecret: "secret"}, "the-code",
		WithTokenURL(srv.URL), WithTransport(httpclient.NewRestyClient(2*time.Second)))
	require.NoError(t, err)

	assert.Equal(t, tokenRequest{
		ClientID:     "cid",
		Code:         "the-code",
		GrantType:    "authorization_code",
		ClientSecret: "secret",
	}, req)

	assert.Equal(t, "at", resp["access_token"])
	assert.Equal(t, json.Number("86400"), resp["expires_in"])
	assert.Equal(t, []any{"pdd.order.list"}, resp["scope"])

	tok, err := DecodeToken(resp)
	require.NoError(t, err)
	assert.Equal(t, "at", tok.AccessToken)
	assert.Equal(t, int64(86400), tok.ExpiresIn)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.Equal(t, "42", tok.OwnerID)
}

func TestGetAccessTokenErrorEnvelope(t *testing.T) {
	srv := newTokenServer(t, `{"error_response":{"error_code":10000,"error_msg":"code is invalid"}}`, nil)

	_, err := GetAccessToken(context.Background(), Credentials{ClientID: "cid", ClientSecret: "secret"}, "stale",
		WithTokenURL(srv.URL))
	require.Error(t, err)
	assert.Equal(t, "code is invalid", err.Error())

	var apiErr *envelope.RemoteAPIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestGetAccessTokenNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := GetAccessToken(context.Background(), Credentials{ClientID: "cid", ClientSecret: "secret"}, "c",
		WithTokenURL(srv.URL))
	var statusErr *httpclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestGetAccessTokenPostsBlankCode(t *testing.T) {
	var req tokenRequest
	srv := newTokenServer(t, `{"error_response":{"error_msg":"code is required"}}`, &req)

	creds := pdd.Credentials{ClientID: "cid", ClientSecret: "secret"}
	_, err := GetAccessToken(context.Background(), creds, "",
		WithTokenURL(srv.URL))
	require.EqualError(t, err, "code is required")
	assert.Equal(t, "", req.Code)
	assert.Equal(t, "authorization_code", req.GrantType)
}

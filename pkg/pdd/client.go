// Package pdd is a client for the Pinduoduo open platform RPC gateway. It
// signs requests, posts them to the router endpoint and unwraps the
// response envelope.
package pdd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/pdd-open-client/pkg/envelope"
	"github.com/samvad-hq/pdd-open-client/pkg/httpclient"
)

const (
	DefaultGatewayURL = "https://gw-api.pinduoduo.com/api/router"
	DefaultVersion    = "V1"
)

// RemoteAPIError is returned when the gateway answers with error_response.
type RemoteAPIError = envelope.RemoteAPIError

// Response is a decoded gateway envelope.
type Response = envelope.Response

// Credentials identify the calling application.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Client calls gateway methods. It is read-only after New and safe for
// concurrent use.
type Client struct {
	creds       Credentials
	accessToken string
	gatewayURL  string
	transport   httpclient.Client
	log         Logger
	now         func() time.Time
	encoding    BodyEncoding
	recorder    Recorder
}

// New builds a Client for creds.
func New(creds Credentials, opts ...Option) (*Client, error) {
	if strings.TrimSpace(creds.ClientID) == "" {
		return nil, errors.New("client id is required")
	}
	if creds.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}

	o := clientOptions{
		gatewayURL: DefaultGatewayURL,
		now:        time.Now,
		encoding:   EncodingJSON,
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch o.encoding {
	case EncodingJSON, EncodingForm:
	case "":
		o.encoding = EncodingJSON
	default:
		return nil, fmt.Errorf("unsupported body encoding %q", o.encoding)
	}
	if o.transport == nil {
		o.transport = httpclient.NewRestyClient(0)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if strings.TrimSpace(o.gatewayURL) == "" {
		o.gatewayURL = DefaultGatewayURL
	}

	return &Client{
		creds:       creds,
		accessToken: o.accessToken,
		gatewayURL:  o.gatewayURL,
		transport:   o.transport,
		log:         ensureLogger(o.log),
		now:         o.now,
		encoding:    o.encoding,
		recorder:    o.recorder,
	}, nil
}

// ClientID returns the application id the client signs for.
func (c *Client) ClientID() string { return c.creds.ClientID }

// Anonymous reports whether the client was built without an access token.
func (c *Client) Anonymous() bool { return c.accessToken == "" }

// GenericRequest calls method and returns the payload stored under the
// method's response key (see ResponseKey), or the whole envelope when that
// key is missing.
func (c *Client) GenericRequest(ctx context.Context, params Params, method string) (any, error) {
	resp, err := c.SendRequest(ctx, params, method, DefaultVersion)
	if err != nil {
		return nil, err
	}
	if err := envelope.CheckError(resp); err != nil {
		return nil, err
	}
	return envelope.Unwrap(resp, ResponseKey(method)), nil
}

// Call is GenericRequest with the payload decoded into out.
func (c *Client) Call(ctx context.Context, method string, params Params, out any) error {
	payload, err := c.GenericRequest(ctx, params, method)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("re-encode %s payload: %w", method, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s payload: %w", method, err)
	}
	return nil
}

// SendRequest posts the signed query for method and returns the decoded
// envelope without interpreting it. version defaults to DefaultVersion and
// is not transmitted.
func (c *Client) SendRequest(ctx context.Context, params Params, method, version string) (resp Response, err error) {
	if version == "" {
		version = DefaultVersion
	}

	call := Call{ID: uuid.NewString(), Method: method, Started: time.Now()}
	defer func() {
		call.Duration = time.Since(call.Started)
		call.Err = err
		if err == nil {
			call.Err = envelope.CheckError(resp)
		}
		c.record(ctx, call)
	}()

	query, err := c.GenerateQuery(params, method, version)
	if err != nil {
		return nil, err
	}

	body, err := c.body(query)
	if err != nil {
		return nil, err
	}

	c.log.DebugObj("pdd request", "pdd_request", map[string]any{
		"call_id": call.ID,
		"method":  method,
		"version": version,
		"query":   query.Redacted(),
	})

	httpResp, err := c.transport.Post(ctx, c.gatewayURL, nil, body)
	if err != nil {
		return nil, err
	}
	if err := httpclient.CheckStatus(httpResp); err != nil {
		return nil, err
	}

	resp, err = envelope.Decode(httpResp.Body())
	if err != nil {
		return nil, err
	}

	c.log.DebugObj("pdd response", "pdd_response", map[string]any{
		"call_id": call.ID,
		"method":  method,
		"status":  httpResp.StatusCode(),
		"bytes":   len(httpResp.Body()),
	})
	return resp, nil
}

// GenerateQuery builds the signed parameter set for method. Caller params
// override system params on key collision; structured values are replaced
// by their JSON string. version is accepted but not added to the query.
func (c *Client) GenerateQuery(params Params, method, version string) (Query, error) {
	query := make(Query, len(params)+5)
	query[ParamType] = String(method)
	query[ParamClientID] = String(c.creds.ClientID)
	query[ParamTimestamp] = Int(c.now().Unix())
	if c.accessToken != "" {
		query[ParamAccessToken] = String(c.accessToken)
	}

	for k, v := range params {
		query[k] = v
	}
	for k, v := range query {
		sv, err := v.serialized()
		if err != nil {
			return nil, fmt.Errorf("serialize param %q: %w", k, err)
		}
		query[k] = sv
	}

	sign, err := c.GenerateSign(query)
	if err != nil {
		return nil, err
	}
	query[ParamSign] = String(sign)
	return query, nil
}

// GenerateSign signs params with the client secret.
func (c *Client) GenerateSign(params Query) (string, error) {
	return Sign(c.creds.ClientSecret, params)
}

// ResponseKey derives the success envelope key for method:
// "pdd.order.list" becomes "order_list_response".
func ResponseKey(method string) string {
	parts := strings.Split(method, ".")
	return strings.Join(append(parts[1:], "response"), "_")
}

func (c *Client) body(query Query) (httpclient.Body, error) {
	if c.encoding == EncodingForm {
		form, err := query.Form()
		if err != nil {
			return httpclient.Body{}, err
		}
		return httpclient.FormBody(form), nil
	}
	return httpclient.JSONBody(query), nil
}

func (c *Client) record(ctx context.Context, call Call) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ctx, call); err != nil {
		c.log.WarnObj("pdd call record failed", "pdd_record_error", map[string]any{
			"call_id": call.ID,
			"method":  call.Method,
			"error":   err.Error(),
		})
	}
}

package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/pdd-open-client/internal/config"
	"github.com/samvad-hq/pdd-open-client/internal/journal"
	"github.com/samvad-hq/pdd-open-client/internal/logger"
	"github.com/samvad-hq/pdd-open-client/pkg/envelope"
	"github.com/samvad-hq/pdd-open-client/pkg/httpclient"
	"github.com/samvad-hq/pdd-open-client/pkg/oauth"
	"github.com/samvad-hq/pdd-open-client/pkg/pdd"
)

// App wires the gateway client, the token exchange and the call journal
// from config.
type App struct {
	cfg       *config.Config
	creds     pdd.Credentials
	client    *pdd.Client
	transport httpclient.Client
	journal   journal.Journal
	log       logger.Logger
}

// New builds an App runtime from config.
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	j, err := journal.New(cfg.JournalType, cfg.JournalPath, journal.Options{
		TTL:             cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}
	log.InfoObj("journal initialized", "journal_config", map[string]any{
		"type":                     cfg.JournalType,
		"path":                     cfg.JournalPath,
		"ttl_seconds":              int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	transport := httpclient.NewRestyClient(cfg.HTTPTimeout)

	creds := pdd.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}
	client, err := pdd.New(creds,
		pdd.WithAccessToken(cfg.AccessToken),
		pdd.WithGatewayURL(cfg.GatewayURL),
		pdd.WithBodyEncoding(pdd.BodyEncoding(cfg.BodyEncoding)),
		pdd.WithTransport(transport),
		pdd.WithLogger(log),
		pdd.WithRecorder(j),
	)
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("init gateway client: %w", err)
	}

	return &App{
		cfg:       cfg,
		creds:     creds,
		client:    client,
		transport: transport,
		journal:   j,
		log:       log,
	}, nil
}

// Call invokes method on the gateway and returns the unwrapped payload.
func (a *App) Call(ctx context.Context, method string, params pdd.Params) (any, error) {
	if a == nil || a.client == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	if method == "" {
		return nil, fmt.Errorf("method is required")
	}

	a.log.InfoObj("gateway call", "call_meta", map[string]any{
		"method":      method,
		"param_count": len(params),
		"anonymous":   a.client.Anonymous(),
	})
	return a.client.GenericRequest(ctx, params, method)
}

// Raw invokes method and returns the envelope as received, with the version
// forwarded to SendRequest.
func (a *App) Raw(ctx context.Context, method, version string, params pdd.Params) (envelope.Response, error) {
	if a == nil || a.client == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	return a.client.SendRequest(ctx, params, method, version)
}

// ExchangeCode trades an authorization code for a token response.
func (a *App) ExchangeCode(ctx context.Context, code string) (envelope.Response, error) {
	if a == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	a.log.InfoObj("token exchange", "token_meta", map[string]any{
		"client_id": a.cfg.ClientID,
		"token_url": a.cfg.TokenURL,
	})
	return oauth.GetAccessToken(ctx, a.creds, code,
		oauth.WithTokenURL(a.cfg.TokenURL),
		oauth.WithTransport(a.transport),
		oauth.WithLogger(a.log),
	)
}

// History lists recently journaled calls, newest first.
func (a *App) History(limit int) ([]journal.Entry, error) {
	if a == nil || a.journal == nil {
		return nil, fmt.Errorf("app is not initialized")
	}
	return a.journal.Recent(limit)
}

// Close releases the journal.
func (a *App) Close() {
	if a == nil || a.journal == nil {
		return
	}
	if err := a.journal.Close(); err != nil {
		a.log.ErrorObj("journal close failed", "error", err)
	}
}

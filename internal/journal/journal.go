// Package journal keeps a short-lived record of gateway calls for local
// troubleshooting. It never stores credentials or tokens.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/pdd-open-client/pkg/pdd"
)

// Entry is one recorded gateway call.
type Entry struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

const (
	OutcomeOK          = "ok"
	OutcomeRemoteError = "remote_error"
	OutcomeFailed      = "failed"
)

// Journal records calls and lists the ones that have not expired.
type Journal interface {
	Close() error
	Record(ctx context.Context, call pdd.Call) error
	Recent(limit int) ([]Entry, error)
}

// Options controls retention characteristics for concrete journal implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 7 * 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// New creates the configured journal backend.
func New(typ, path string, opts Options) (Journal, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopJournal{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt journal requires a path")
		}
		j, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return j, nil
	default:
		return nil, fmt.Errorf("unsupported journal type %q", typ)
	}
}

// EntryFromCall classifies call into an Entry.
func EntryFromCall(call pdd.Call) Entry {
	e := Entry{
		ID:         call.ID,
		Method:     call.Method,
		Outcome:    OutcomeOK,
		DurationMs: call.Duration.Milliseconds(),
		At:         call.Started.UTC(),
	}
	if call.Err != nil {
		e.Error = call.Err.Error()
		e.Outcome = OutcomeFailed
		var apiErr *pdd.RemoteAPIError
		if errors.As(call.Err, &apiErr) {
			e.Outcome = OutcomeRemoteError
		}
	}
	return e
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopJournal struct{}

func (noopJournal) Close() error                           { return nil }
func (noopJournal) Record(context.Context, pdd.Call) error { return nil }
func (noopJournal) Recent(int) ([]Entry, error)            { return nil, nil }

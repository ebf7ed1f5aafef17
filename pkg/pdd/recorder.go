package pdd

import (
	"context"
	"time"
)

// Call describes one finished gateway round trip.
type Call struct {
	ID       string
	Method   string
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Recorder receives a Call after every SendRequest. Record errors are logged
// and never fail the request.
type Recorder interface {
	Record(ctx context.Context, call Call) error
}

package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_list_response":{"total_count":1,"order_list":[]}}`))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("PDD_CLIENT_ID", "cid")
	t.Setenv("PDD_CLIENT_SECRET", "secret")
	t.Setenv("PDD_GATEWAY_URL", srv.URL)
	t.Setenv("PDD_TOKEN_URL", srv.URL)
	t.Setenv("JOURNAL_TYPE", "bbolt")
	t.Setenv("JOURNAL_PATH", filepath.Join(t.TempDir(), "journal.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestRunCallRawThenHistory(t *testing.T) {
	setupEnv(t)

	var out bytes.Buffer
	if err := run([]string{"call", "-method", "pdd.order.list", "-raw"}, &out); err != nil {
		t.Fatalf("call: %v", err)
	}
	if !strings.Contains(out.String(), `"order_list_response"`) {
		t.Fatalf("raw call should print the envelope, got %s", out.String())
	}

	out.Reset()
	if err := run([]string{"history", "-limit", "5"}, &out); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out.String(), `"method": "pdd.order.list"`) {
		t.Fatalf("history should list the call, got %s", out.String())
	}
	if !strings.Contains(out.String(), `"outcome": "ok"`) {
		t.Fatalf("history should record an ok outcome, got %s", out.String())
	}
}

func TestRunCallUnwraps(t *testing.T) {
	setupEnv(t)

	var out bytes.Buffer
	if err := run([]string{"call", "-method", "pdd.order.list"}, &out); err != nil {
		t.Fatalf("call: %v", err)
	}
	if strings.Contains(out.String(), "order_list_response") {
		t.Fatalf("call should print the unwrapped payload, got %s", out.String())
	}
	if !strings.Contains(out.String(), `"total_count": 1`) {
		t.Fatalf("unexpected payload %s", out.String())
	}
}

func TestRunUsage(t *testing.T) {
	if err := run(nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("empty args: expected errUsage, got %v", err)
	}

	setupEnv(t)
	if err := run([]string{"bogus"}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("unknown command: expected errUsage, got %v", err)
	}
	if err := run([]string{"call"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("call without -method should fail")
	}
}

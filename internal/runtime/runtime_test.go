package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "meeting-planner", "warn")

	logger.Info("skipped")
	logger.Warn("kept", "meeting_id", "42")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["service"] != "meeting-planner" || rec["msg"] != "kept" || rec["meeting_id"] != "42" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != slog.LevelDebug || ParseLevel("") != slog.LevelInfo || ParseLevel("error") != slog.LevelError {
		t.Fatalf("unexpected level mapping")
	}
}

func TestReadyMux(t *testing.T) {
	ok := ReadyCheck{Name: "db", Check: func(context.Context) error { return nil }}
	broken := ReadyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	rec := httptest.NewRecorder()
	NewBaseMuxWithReady(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	NewBaseMuxWithReady(ok, broken).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "redis: connection refused") {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	NewBaseMuxWithReady(broken).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz must not depend on checks, got %d", rec.Code)
	}
}

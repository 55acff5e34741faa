package metrics

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-shooter/internal/storage"
)

type fakeLedger struct {
	runs []storage.Run
	err  error
	mode string
}

func (f *fakeLedger) RecentRuns(int) ([]storage.Run, error) { return f.runs, f.err }

func (f *fakeLedger) TopRuns(mode string, _ int) ([]storage.Run, error) {
	f.mode = mode
	return f.runs, f.err
}

func TestCounters(t *testing.T) {
	m := New()

	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()
	if got := testutil.ToFloat64(m.sessionsActive); got != 1 {
		t.Errorf("sessionsActive = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(m.sessionsTotal); got != 2 {
		t.Errorf("sessionsTotal = %v, expected 2", got)
	}

	m.RecordRejected(ReasonRateLimit)
	if got := testutil.ToFloat64(m.sessionsRejected.WithLabelValues(ReasonRateLimit)); got != 1 {
		t.Errorf("rejected = %v, expected 1", got)
	}

	m.RecordTick(time.Millisecond)
	m.RecordTick(time.Millisecond)
	if got := testutil.ToFloat64(m.ticksTotal); got != 2 {
		t.Errorf("ticksTotal = %v, expected 2", got)
	}

	m.RecordRun("hard", 120)
	if got := testutil.ToFloat64(m.runsTotal.WithLabelValues("hard")); got != 1 {
		t.Errorf("runsTotal = %v, expected 1", got)
	}

	m.RecordVerification(ResultMismatch)
	if got := testutil.ToFloat64(m.verifications.WithLabelValues(ResultMismatch)); got != 1 {
		t.Errorf("verifications = %v, expected 1", got)
	}
}

func TestRouterEndpoints(t *testing.T) {
	m := New()
	m.RecordRun("normal", 10)

	id := uuid.New()
	ledger := &fakeLedger{runs: []storage.Run{{ID: id, Mode: "normal", Players: 1, Seed: 9, Score: 10, Ticks: 60, Digest: "ff"}}}
	ts := httptest.NewServer(NewRouter(m, ledger))
	defer ts.Close()

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"health", "/healthz", http.StatusOK, "OK"},
		{"metrics", "/metrics", http.StatusOK, "shooter_runs_total"},
		{"recent runs", "/runs", http.StatusOK, id.String()},
		{"top runs", "/runs/hard?limit=5", http.StatusOK, `"digest":"ff"`},
		{"unknown", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tt.status)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body = %q, expected to contain %q", body, tt.contains)
			}
		})
	}

	if ledger.mode != "hard" {
		t.Errorf("TopRuns mode = %q, expected hard", ledger.mode)
	}
}

func TestRouterLedgerError(t *testing.T) {
	ts := httptest.NewServer(NewRouter(New(), &fakeLedger{err: errors.New("locked")}))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/runs")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body is empty")
	}
}

func TestRouterWithoutLedger(t *testing.T) {
	ts := httptest.NewServer(NewRouter(New(), nil))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/runs")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", resp.StatusCode)
	}
}

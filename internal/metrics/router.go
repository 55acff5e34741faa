package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-shooter/internal/storage"
)

// RunLister is the part of the ledger the router reads.
type RunLister interface {
	RecentRuns(limit int) ([]storage.Run, error)
	TopRuns(mode string, limit int) ([]storage.Run, error)
}

// NewRouter builds the HTTP handler: /metrics, /healthz and, when runs is
// non-nil, /runs and /runs/{mode}. It starts no goroutines, so it can be
// used with httptest.NewServer.
func NewRouter(m *Metrics, runs RunLister) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if runs != nil {
		h := runsHandler{runs: runs}
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", h.recent)
			r.Get("/{mode}", h.top)
		})
	}
	return r
}

// Serve runs an HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type runsHandler struct {
	runs RunLister
}

type runJSON struct {
	ID       string `json:"id"`
	Mode     string `json:"mode"`
	Player   string `json:"player,omitempty"`
	Players  int    `json:"players"`
	Seed     uint32 `json:"seed"`
	Score    int64  `json:"score"`
	Ticks    uint64 `json:"ticks"`
	Digest   string `json:"digest"`
	Verified bool   `json:"verified"`
	Created  string `json:"created_at"`
}

func (h runsHandler) recent(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runs.RecentRuns(limitParam(r))
	if err != nil {
		writeError(w, "cannot read ledger", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toJSON(runs))
}

func (h runsHandler) top(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runs.TopRuns(chi.URLParam(r, "mode"), limitParam(r))
	if err != nil {
		writeError(w, "cannot read ledger", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toJSON(runs))
}

func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n > 100 {
		return 0
	}
	return n
}

func toJSON(runs []storage.Run) []runJSON {
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, runJSON{
			ID:       run.ID.String(),
			Mode:     run.Mode,
			Player:   run.Player,
			Players:  run.Players,
			Seed:     run.Seed,
			Score:    run.Score,
			Ticks:    run.Ticks,
			Digest:   run.Digest,
			Verified: run.Verified,
			Created:  run.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

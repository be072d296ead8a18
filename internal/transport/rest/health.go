package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// ledgerTail reads the hash of the newest ledger entry. A successful read
// proves the audit table is reachable and the chain has a usable anchor.
type ledgerTail interface {
	LastHash(ctx context.Context) (string, error)
}

// HealthHandler serves the probe endpoints.
type HealthHandler struct {
	db      dbPinger
	ledger  ledgerTail
	version string
	started time.Time
}

func NewHealthHandler(db dbPinger, ledger ledgerTail, version string) *HealthHandler {
	return &HealthHandler{db: db, ledger: ledger, version: version, started: time.Now()}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Uptime     string                `json:"uptime,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// Ready answers 503 until the database accepts connections.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now().UTC()})
}

// Health probes the database and the ledger tail concurrently and reports
// each with its latency. Any component down makes the whole response 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	var (
		mu         sync.Mutex
		components = make(map[string]CompStatus, 2)
	)
	record := func(name string, start time.Time, detail string, err error) {
		c := CompStatus{Status: "ok", Latency: time.Since(start).String(), Detail: detail}
		if err != nil {
			c = CompStatus{Status: "down"}
		}
		mu.Lock()
		components[name] = c
		mu.Unlock()
	}

	// Probe errors are recorded per component, never returned to the group.
	var g errgroup.Group
	g.Go(func() error {
		start := time.Now()
		record("database", start, "", h.db.Ping(ctx))
		return nil
	})
	if h.ledger != nil {
		g.Go(func() error {
			start := time.Now()
			hash, err := h.ledger.LastHash(ctx)
			record("ledger", start, tailDetail(hash), err)
			return nil
		})
	}
	_ = g.Wait()

	overall, code := "ok", http.StatusOK
	for _, c := range components {
		if c.Status != "ok" {
			overall, code = "down", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Uptime:     time.Since(h.started).Truncate(time.Second).String(),
		Components: components,
		Timestamp:  time.Now().UTC(),
	})
}

// tailDetail abbreviates the tail hash the way git abbreviates commits.
func tailDetail(hash string) string {
	const abbrev = 12
	if len(hash) > abbrev {
		hash = hash[:abbrev]
	}
	return "tail " + hash
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

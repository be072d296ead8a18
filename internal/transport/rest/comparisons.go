package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

type comparisonService interface {
	ComputeDiff(ctx context.Context, fromID, toID uuid.UUID) (domain.DiffResult, error)
	GetUnifiedDiff(ctx context.Context, fromID, toID uuid.UUID, includeText bool) (domain.UnifiedDiff, error)
	ListComparisons(ctx context.Context, versionID uuid.UUID, limit int) ([]domain.StoredComparison, error)
}

// ComparisonHandler serves /comparisons.
type ComparisonHandler struct {
	comparisons comparisonService
	log         *slog.Logger
}

// NewComparisonHandler creates a ComparisonHandler.
func NewComparisonHandler(comparisons comparisonService, logger *slog.Logger) *ComparisonHandler {
	return &ComparisonHandler{comparisons: comparisons, log: logger.With("handler", "comparison")}
}

type compareRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Compute handles POST /comparisons.
func (h *ComparisonHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	from, err := parseUUID(req.From, "from")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	to, err := parseUUID(req.To, "to")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	res, err := h.comparisons.ComputeDiff(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDiffResultResponse(res))
}

// Unified handles GET /comparisons/unified?from=&to=&include_text=.
func (h *ComparisonHandler) Unified(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseUUID(q.Get("from"), "from")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	to, err := parseUUID(q.Get("to"), "to")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	includeText, err := queryBool(r, "include_text")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	res, err := h.comparisons.GetUnifiedDiff(r.Context(), from, to, includeText)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUnifiedDiffResponse(res))
}

// ListByVersion handles GET /versions/{id}/comparisons.
func (h *ComparisonHandler) ListByVersion(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	items, err := h.comparisons.ListComparisons(r.Context(), id, limit)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := make([]comparisonResponse, 0, len(items))
	for _, c := range items {
		resp = append(resp, toComparisonResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"comparisons": resp})
}

package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/pkg/ctxutil"
)

type ledgerService interface {
	Append(ctx context.Context, input ledger.AppendInput) (domain.AuditEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (domain.AuditEntry, error)
	ListEntries(ctx context.Context, input ledger.ListInput) (ledger.EntryPage, error)
	LastHash(ctx context.Context) (string, error)
	VerifyChain(ctx context.Context) (domain.ChainVerification, error)
	Export(ctx context.Context, w io.Writer) (int, error)
}

// AuditHandler serves /audit.
type AuditHandler struct {
	ledger ledgerService
	log    *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(ledger ledgerService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{ledger: ledger, log: logger.With("handler", "audit")}
}

type appendEventRequest struct {
	EventType    string         `json:"eventType"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	Details      map[string]any `json:"details"`
}

// Append handles POST /audit/events. The entry is attributed to the caller.
func (h *AuditHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeServiceError(w, r, h.log, domain.ErrUnauthorized)
		return
	}
	var req appendEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	entry, err := h.ledger.Append(r.Context(), ledger.AppendInput{
		EventType:    domain.EventType(req.EventType),
		UserID:       &userID,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Details:      req.Details,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// List handles GET /audit/entries.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := listInputFromQuery(r)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	page, err := h.ledger.ListEntries(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := entryPageResponse{
		Entries:      make([]entryResponse, 0, len(page.Entries)),
		NextAfterSeq: page.NextAfterSeq,
		HasMore:      page.HasMore,
	}
	for _, e := range page.Entries {
		resp.Entries = append(resp.Entries, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func listInputFromQuery(r *http.Request) (ledger.ListInput, error) {
	q := r.URL.Query()
	input := ledger.ListInput{
		EventType:    domain.EventType(q.Get("event_type")),
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
	}

	if raw := q.Get("user_id"); raw != "" {
		id, err := parseUUID(raw, "user_id")
		if err != nil {
			return ledger.ListInput{}, err
		}
		input.UserID = &id
	}

	var err error
	if input.From, err = queryTime(r, "from"); err != nil {
		return ledger.ListInput{}, err
	}
	if input.To, err = queryTime(r, "to"); err != nil {
		return ledger.ListInput{}, err
	}
	if input.AfterSeq, err = queryInt64(r, "after"); err != nil {
		return ledger.ListInput{}, err
	}
	if input.Limit, err = queryInt(r, "limit", 0); err != nil {
		return ledger.ListInput{}, err
	}
	return input, nil
}

// Get handles GET /audit/entries/{id}.
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	entry, err := h.ledger.GetEntry(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// LastHash handles GET /audit/last-hash.
func (h *AuditHandler) LastHash(w http.ResponseWriter, r *http.Request) {
	hash, err := h.ledger.LastHash(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"lastHash": hash})
}

// Verify handles GET /audit/verify. A broken chain is still a 200; the
// body reports where and why.
func (h *AuditHandler) Verify(w http.ResponseWriter, r *http.Request) {
	res, err := h.ledger.VerifyChain(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVerificationResponse(res))
}

// Export handles GET /audit/export and streams the ledger as
// zstd-compressed JSON Lines.
func (h *AuditHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/zstd")
	w.Header().Set("Content-Disposition", `attachment; filename="audit-ledger.jsonl.zst"`)

	n, err := h.ledger.Export(r.Context(), w)
	if err != nil {
		// The status is already on the wire. The archive has no trailer, so
		// offline verification rejects it.
		h.log.ErrorContext(r.Context(), "export failed",
			slog.Int("entries_written", n),
			slog.String("error", err.Error()),
		)
		return
	}
	h.log.InfoContext(r.Context(), "ledger exported", slog.Int("entries", n))
}

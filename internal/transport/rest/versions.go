package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/versioning"
)

type versionService interface {
	CreateVersion(ctx context.Context, input versioning.CreateVersionInput) (domain.VersionedEntity, error)
	UpdateVersion(ctx context.Context, input versioning.UpdateVersionInput) (domain.VersionedEntity, error)
	LockVersion(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error)
	GetVersion(ctx context.Context, versionID uuid.UUID) (domain.VersionedEntity, error)
	GetCurrent(ctx context.Context, kind domain.VersionKind, parentID uuid.UUID) (domain.VersionedEntity, error)
	GetHistory(ctx context.Context, input versioning.HistoryInput) (versioning.HistoryPage, error)
}

// VersionHandler serves /versions and the per-resource chain views.
type VersionHandler struct {
	versions versionService
	log      *slog.Logger
}

// NewVersionHandler creates a VersionHandler.
func NewVersionHandler(versions versionService, logger *slog.Logger) *VersionHandler {
	return &VersionHandler{versions: versions, log: logger.With("handler", "version")}
}

type createVersionRequest struct {
	Kind     string         `json:"kind"`
	ParentID string         `json:"parentId"`
	Content  map[string]any `json:"content"`
}

type updateVersionRequest struct {
	Content map[string]any `json:"content"`
}

// Create handles POST /versions.
func (h *VersionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVersionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	parentID, err := parseUUID(req.ParentID, "parentId")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	v, err := h.versions.CreateVersion(r.Context(), versioning.CreateVersionInput{
		Kind:     domain.VersionKind(req.Kind),
		ParentID: parentID,
		Content:  req.Content,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVersionResponse(v))
}

// Get handles GET /versions/{id}.
func (h *VersionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	v, err := h.versions.GetVersion(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVersionResponse(v))
}

// Update handles PATCH /versions/{id}. The body is a partial content patch;
// the response is the new current version.
func (h *VersionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	var req updateVersionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	v, err := h.versions.UpdateVersion(r.Context(), versioning.UpdateVersionInput{
		VersionID: id,
		Content:   req.Content,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVersionResponse(v))
}

// Lock handles POST /versions/{id}/lock.
func (h *VersionHandler) Lock(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	v, err := h.versions.LockVersion(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVersionResponse(v))
}

// Current handles GET /resources/{id}/versions/{kind}/current.
func (h *VersionHandler) Current(w http.ResponseWriter, r *http.Request) {
	parentID, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	v, err := h.versions.GetCurrent(r.Context(), domain.VersionKind(chi.URLParam(r, "kind")), parentID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toVersionResponse(v))
}

// History handles GET /resources/{id}/versions/{kind}?before=&limit=.
func (h *VersionHandler) History(w http.ResponseWriter, r *http.Request) {
	parentID, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	before, err := queryInt(r, "before", 0)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	page, err := h.versions.GetHistory(r.Context(), versioning.HistoryInput{
		Kind:          domain.VersionKind(chi.URLParam(r, "kind")),
		ParentID:      parentID,
		BeforeVersion: before,
		Limit:         limit,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := historyResponse{
		Versions:          make([]versionResponse, 0, len(page.Versions)),
		NextBeforeVersion: page.NextBeforeVersion,
		HasMore:           page.HasMore,
	}
	for _, v := range page.Versions {
		resp.Versions = append(resp.Versions, toVersionResponse(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

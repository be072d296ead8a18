package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/resource"
)

type resourceService interface {
	CreateResource(ctx context.Context, input resource.CreateResourceInput) (domain.Resource, error)
	GetResource(ctx context.Context, id uuid.UUID) (domain.Resource, error)
}

// ResourceHandler serves /resources.
type ResourceHandler struct {
	resources resourceService
	log       *slog.Logger
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(resources resourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{resources: resources, log: logger.With("handler", "resource")}
}

type createResourceRequest struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// Create handles POST /resources.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createResourceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	res, err := h.resources.CreateResource(r.Context(), resource.CreateResourceInput{
		Kind:  domain.ResourceKind(req.Kind),
		Title: req.Title,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResourceResponse(res))
}

// Get handles GET /resources/{id}.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	res, err := h.resources.GetResource(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toResourceResponse(res))
}

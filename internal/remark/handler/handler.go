package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"grantflow/internal/remark"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/httputil"
	"grantflow/pkg/requestcontext"
)

// Service defines the interface for remark ledger operations.
type Service interface {
	ListByProject(ctx context.Context, projectID id.ProjectID) ([]*remark.Remark, error)
	ToggleStatus(ctx context.Context, remarkID id.RemarkID, actorID id.UserID) (*remark.Remark, error)
}

// Handler wires remark endpoints to the remark ledger.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a remark handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts remark endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/projects/{projectID}/remarks", h.HandleListByProject)
	r.Post("/remarks/{remarkID}/toggle", h.HandleToggleStatus)
}

// HandleListByProject handles GET /projects/{projectID}/remarks requests.
func (h *Handler) HandleListByProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	remarks, err := h.service.ListByProject(ctx, projectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "remark list failed",
			"request_id", requestcontext.RequestID(ctx),
			"project_id", projectID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRemarks(remarks))
}

// HandleToggleStatus handles POST /remarks/{remarkID}/toggle requests.
func (h *Handler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	actorID := requestcontext.ActorID(ctx)
	if actorID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	remarkID, err := id.ParseRemarkID(chi.URLParam(r, "remarkID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	toggled, err := h.service.ToggleStatus(ctx, remarkID, actorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "remark toggle rejected",
			"request_id", requestID,
			"remark_id", remarkID.String(),
			"actor_id", actorID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "remark toggled",
		"request_id", requestID,
		"remark_id", remarkID.String(),
		"actor_id", actorID.String(),
		"status", string(toggled.Status),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRemark(toggled))
}

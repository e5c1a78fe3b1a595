package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"grantflow/internal/checklist"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/httputil"
	"grantflow/pkg/requestcontext"
)

// Service defines the interface for checklist gate operations.
type Service interface {
	Get(ctx context.Context, projectID id.ProjectID) (*checklist.Checklist, error)
	SetLink(ctx context.Context, projectID id.ProjectID, slotIndex int, rawURL string, actorID id.UserID) (*checklist.Checklist, error)
	Raise(ctx context.Context, projectID id.ProjectID, actorID id.UserID) (*checklist.Checklist, error)
	Approve(ctx context.Context, projectID id.ProjectID, actorID id.UserID) (*checklist.Checklist, error)
	Deny(ctx context.Context, projectID id.ProjectID, actorID id.UserID, remarkMessage string) (*checklist.Checklist, error)
}

// Handler wires checklist endpoints to the checklist gate.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a checklist handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts checklist endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/projects/{projectID}/checklist", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Put("/links/{slot}", h.HandleSetLink)
		r.Post("/raise", h.HandleRaise)
		r.Post("/approve", h.HandleApprove)
		r.Post("/deny", h.HandleDeny)
	})
}

// HandleGet handles GET /projects/{projectID}/checklist requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Get(ctx, projectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "checklist read failed",
			"request_id", requestcontext.RequestID(ctx),
			"project_id", projectID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromChecklist(c))
}

// HandleSetLink handles PUT /projects/{projectID}/checklist/links/{slot} requests.
func (h *Handler) HandleSetLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID, projectID, ok := h.identify(w, r)
	if !ok {
		return
	}
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "slot must be a number"))
		return
	}

	req, decoded := httputil.DecodeAndPrepare[SetLinkRequest](w, r, h.logger, ctx, requestID)
	if !decoded {
		return
	}

	c, err := h.service.SetLink(ctx, projectID, slot, req.URL, actorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "link write rejected",
			"request_id", requestID,
			"project_id", projectID.String(),
			"slot", slot,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "link slot written",
		"request_id", requestID,
		"project_id", projectID.String(),
		"slot", slot,
		"actor_id", actorID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromChecklist(c))
}

// HandleRaise handles POST /projects/{projectID}/checklist/raise requests.
func (h *Handler) HandleRaise(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "raise", func(ctx context.Context, projectID id.ProjectID, actorID id.UserID) (*checklist.Checklist, error) {
		return h.service.Raise(ctx, projectID, actorID)
	})
}

// HandleApprove handles POST /projects/{projectID}/checklist/approve requests.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve", func(ctx context.Context, projectID id.ProjectID, actorID id.UserID) (*checklist.Checklist, error) {
		return h.service.Approve(ctx, projectID, actorID)
	})
}

// HandleDeny handles POST /projects/{projectID}/checklist/deny requests.
func (h *Handler) HandleDeny(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID, projectID, ok := h.identify(w, r)
	if !ok {
		return
	}

	req, decoded := httputil.DecodeAndPrepare[DenyRequest](w, r, h.logger, ctx, requestID)
	if !decoded {
		return
	}

	c, err := h.service.Deny(ctx, projectID, actorID, req.Remark)
	if err != nil {
		h.logger.ErrorContext(ctx, "checklist denial rejected",
			"request_id", requestID,
			"project_id", projectID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checklist denied",
		"request_id", requestID,
		"project_id", projectID.String(),
		"actor_id", actorID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromChecklist(c))
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, kind string, op func(context.Context, id.ProjectID, id.UserID) (*checklist.Checklist, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID, projectID, ok := h.identify(w, r)
	if !ok {
		return
	}

	c, err := op(ctx, projectID, actorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "checklist transition rejected",
			"request_id", requestID,
			"project_id", projectID.String(),
			"kind", kind,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checklist transition committed",
		"request_id", requestID,
		"project_id", projectID.String(),
		"kind", kind,
		"actor_id", actorID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromChecklist(c))
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request) (id.UserID, id.ProjectID, bool) {
	ctx := r.Context()
	actorID := requestcontext.ActorID(ctx)
	if actorID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, id.ProjectID{}, false
	}
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, id.ProjectID{}, false
	}
	return actorID, projectID, true
}

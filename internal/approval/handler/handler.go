package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"grantflow/internal/approval"
	"grantflow/internal/remark"
	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/httputil"
	"grantflow/pkg/requestcontext"
)

// Service defines the interface for approval engine operations.
type Service interface {
	Register(ctx context.Context, projectID id.ProjectID) error
	Decide(ctx context.Context, projectID id.ProjectID, actorID id.UserID, action approval.Action, drafts []remark.Draft) (*approval.Decision, error)
	ListStageRoster(ctx context.Context, s stage.Stage) ([]approval.ProjectSummary, error)
	ProjectDetail(ctx context.Context, projectID id.ProjectID) (*approval.ProjectDetail, error)
}

// Handler wires approval endpoints to the approval engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an approval handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts approval endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/projects", h.HandleRegister)
	r.Get("/projects/{projectID}", h.HandleProjectDetail)
	r.Post("/projects/{projectID}/decision", h.HandleDecide)
	r.Get("/stages/{stage}/projects", h.HandleStageRoster)
}

// HandleRegister handles POST /projects requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID := requestcontext.ActorID(ctx)
	if actorID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Register(ctx, req.ParsedProjectID()); err != nil {
		h.logger.ErrorContext(ctx, "project registration failed",
			"request_id", requestID,
			"project_id", req.ProjectID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "project registered",
		"request_id", requestID,
		"project_id", req.ProjectID,
		"actor_id", actorID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"project_id": req.ParsedProjectID().String(),
		"stage":      stage.InternalReview.String(),
	})
}

// HandleDecide handles POST /projects/{projectID}/decision requests.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	actorID := requestcontext.ActorID(ctx)
	if actorID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[DecideRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision, err := h.service.Decide(ctx, projectID, actorID, req.ParsedAction(), req.ParsedDrafts())
	if err != nil {
		h.logger.ErrorContext(ctx, "decision rejected",
			"request_id", requestID,
			"project_id", projectID.String(),
			"actor_id", actorID.String(),
			"action", req.Action,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "decision committed",
		"request_id", requestID,
		"project_id", projectID.String(),
		"actor_id", actorID.String(),
		"from_stage", decision.FromStage.String(),
		"to_stage", decision.ToStage.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandleStageRoster handles GET /stages/{stage}/projects requests.
func (h *Handler) HandleStageRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	st, err := stage.Parse(chi.URLParam(r, "stage"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summaries, err := h.service.ListStageRoster(ctx, st)
	if err != nil {
		h.logger.ErrorContext(ctx, "stage roster lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"stage", st.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSummaries(st.String(), summaries))
}

// HandleProjectDetail handles GET /projects/{projectID} requests.
func (h *Handler) HandleProjectDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.service.ProjectDetail(ctx, projectID)
	if err != nil {
		h.logger.ErrorContext(ctx, "project detail lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"project_id", projectID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDetail(detail))
}

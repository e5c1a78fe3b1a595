package approval

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"grantflow/internal/approval/metrics"
	"grantflow/internal/checklist"
	"grantflow/internal/notify"
	"grantflow/internal/remark"
	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/sentinel"
)

// Service is the approval engine: the only writer of a project's stage field.
// Each decision is one read-validate-CAS cycle; remarks are appended after the
// stage commit so a lost race never leaves orphan ledger entries.
type Service struct {
	projects  ProjectStore
	identity  Identity
	checklist ChecklistReader
	ledger    Ledger
	events    Notifier
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Config carries the service's collaborators.
type Config struct {
	Projects  ProjectStore
	Identity  Identity
	Checklist ChecklistReader
	Ledger    Ledger
	Events    Notifier
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

func NewService(cfg Config) *Service {
	return &Service{
		projects:  cfg.Projects,
		identity:  cfg.Identity,
		checklist: cfg.Checklist,
		ledger:    cfg.Ledger,
		events:    cfg.Events,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		tracer:    otel.Tracer("grantflow/approval"),
	}
}

// Register creates the stage record for a new project at InternalReview.
// Registering an existing project fails with a conflict.
func (s *Service) Register(ctx context.Context, projectID id.ProjectID) error {
	err := s.projects.CompareAndSetStage(ctx, projectID, 0, stage.InternalReview)
	if err != nil {
		if errors.Is(err, sentinel.ErrVersionConflict) {
			return dErrors.New(dErrors.CodeConflict, "project already registered")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "project registration failed")
	}
	return nil
}

// Decide applies a reviewer's verdict to the project's current stage.
//
// Approve advances to the next stage in order; disapprove moves the project
// to the terminal Disapproved stage. At the two compliance stages an approve
// additionally requires the project's checklist to be Approved. Every decision
// carries at least one remark; drafts are validated in full before any write.
func (s *Service) Decide(ctx context.Context, projectID id.ProjectID, actorID id.UserID, action Action, drafts []remark.Draft) (*Decision, error) {
	ctx, span := s.tracer.Start(ctx, "approval.Decide")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveDecideLatency(time.Since(start)) }()

	current, version, err := s.loadStage(ctx, projectID)
	if err != nil {
		return nil, s.reject(err)
	}
	if current.IsTerminal() {
		return nil, s.reject(dErrors.New(dErrors.CodeAlreadyTerminal, "project lifecycle already concluded"))
	}

	if err := s.authorize(ctx, actorID, current); err != nil {
		return nil, s.reject(err)
	}

	if err := s.validateDrafts(ctx, drafts); err != nil {
		return nil, s.reject(err)
	}

	if action == ActionApprove && current.RequiresCompliance() {
		if err := s.requireChecklistApproved(ctx, projectID); err != nil {
			return nil, s.reject(err)
		}
	}

	next := stage.Disapproved
	if action == ActionApprove {
		var ok bool
		next, ok, err = stage.Next(current)
		if err != nil || !ok {
			return nil, s.reject(dErrors.New(dErrors.CodeInvalidStage, "no next stage from current position"))
		}
	}

	// The CAS is the sole commit point. A lost race means another decision
	// landed since our read; nothing has been written yet, so the caller can
	// simply re-read and retry.
	if err := s.projects.CompareAndSetStage(ctx, projectID, version, next); err != nil {
		if errors.Is(err, sentinel.ErrVersionConflict) {
			s.metrics.IncStageConflict()
			return nil, s.reject(dErrors.New(dErrors.CodeStaleStage, "project stage changed since it was read"))
		}
		return nil, s.reject(dErrors.Wrap(err, dErrors.CodeInternal, "stage commit failed"))
	}

	remarkIDs, err := s.ledger.AppendAll(ctx, projectID, actorID, current, drafts)
	if err != nil {
		// The stage already committed; surface the ledger failure without
		// pretending the transition did not happen.
		s.logger.ErrorContext(ctx, "remark append failed after stage commit",
			"project_id", projectID.String(),
			"from_stage", current.String(),
			"to_stage", next.String(),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "remark append failed")
	}

	decision := &Decision{
		ProjectID: projectID,
		FromStage: current,
		ToStage:   next,
		Action:    action,
		RemarkIDs: remarkIDs,
	}
	s.metrics.IncDecision(string(action), next.String())
	s.emit(ctx, actorID, decision)
	return decision, nil
}

// ListStageRoster returns every project currently sitting at the given stage.
func (s *Service) ListStageRoster(ctx context.Context, st stage.Stage) ([]ProjectSummary, error) {
	if !st.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidStage, "unknown stage")
	}
	summaries, err := s.projects.ListByStage(ctx, st)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "stage roster lookup failed")
	}
	return summaries, nil
}

// ProjectDetail aggregates a project's review state for display: current
// stage, checklist, and remark history, fetched concurrently.
type ProjectDetail struct {
	ProjectID id.ProjectID
	Stage     stage.Stage
	Checklist *checklist.Checklist
	Remarks   []*remark.Remark
}

func (s *Service) ProjectDetail(ctx context.Context, projectID id.ProjectID) (*ProjectDetail, error) {
	detail := &ProjectDetail{ProjectID: projectID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, _, err := s.loadStage(gctx, projectID)
		if err != nil {
			return err
		}
		detail.Stage = st
		return nil
	})
	g.Go(func() error {
		c, err := s.checklist.Get(gctx, projectID)
		if err != nil {
			return err
		}
		detail.Checklist = c
		return nil
	})
	g.Go(func() error {
		remarks, err := s.ledger.ListByProject(gctx, projectID)
		if err != nil {
			return err
		}
		detail.Remarks = remarks
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// GetStage satisfies the checklist gate's stage reader so denial remarks can
// be tagged with the project's current stage.
func (s *Service) GetStage(ctx context.Context, projectID id.ProjectID) (stage.Stage, uint64, error) {
	return s.loadStage(ctx, projectID)
}

func (s *Service) loadStage(ctx context.Context, projectID id.ProjectID) (stage.Stage, uint64, error) {
	st, version, err := s.projects.GetStage(ctx, projectID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", 0, dErrors.New(dErrors.CodeNotFound, "project not found")
		}
		return "", 0, dErrors.Wrap(err, dErrors.CodeInternal, "project stage read failed")
	}
	return st, version, nil
}

func (s *Service) authorize(ctx context.Context, actorID id.UserID, current stage.Stage) error {
	authorized, err := stage.AuthorizedRoles(current)
	if err != nil {
		return err
	}
	roles, err := s.identity.RoleOf(ctx, actorID)
	if err != nil {
		return err
	}
	if !roles.HasAny(authorized) {
		return dErrors.New(dErrors.CodeUnauthorized, "actor role cannot act at this stage")
	}
	return nil
}

// validateDrafts runs one validation pass over the whole remark list before
// anything is written, so a bad draft can never partially apply.
func (s *Service) validateDrafts(ctx context.Context, drafts []remark.Draft) error {
	if len(drafts) == 0 {
		return dErrors.New(dErrors.CodeInvalidRemark, "a decision requires at least one remark")
	}
	for _, draft := range drafts {
		if err := draft.Validate(); err != nil {
			return err
		}
		exists, err := s.identity.Exists(ctx, draft.AssignedTo)
		if err != nil {
			return err
		}
		if !exists {
			return dErrors.New(dErrors.CodeInvalidRemark, "remark assignee is not a known user")
		}
	}
	return nil
}

func (s *Service) requireChecklistApproved(ctx context.Context, projectID id.ProjectID) error {
	c, err := s.checklist.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if c.Status != checklist.StatusApproved {
		return dErrors.New(dErrors.CodeComplianceNotApproved, "compliance checklist is not approved")
	}
	return nil
}

func (s *Service) emit(ctx context.Context, actorID id.UserID, d *Decision) {
	kind := notify.KindStageAdvanced
	switch d.ToStage {
	case stage.Approved:
		kind = notify.KindProjectApproved
	case stage.Disapproved:
		kind = notify.KindProjectDisapproved
	}
	s.events.Emit(ctx, notify.Event{
		ProjectID: d.ProjectID,
		ActorID:   actorID,
		Kind:      kind,
		FromStage: d.FromStage,
		Stage:     d.ToStage,
		Detail:    string(d.Action),
		RemarkIDs: d.RemarkIDs,
	})
}

func (s *Service) reject(err error) error {
	s.metrics.IncRejection(string(dErrors.CodeOf(err)))
	return err
}

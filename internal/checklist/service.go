package checklist

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"grantflow/internal/checklist/metrics"
	"grantflow/internal/remark"
	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/sentinel"
	"grantflow/pkg/requestcontext"
)

// Identity resolves an actor's roles for the capability checks.
type Identity interface {
	RoleOf(ctx context.Context, actorID id.UserID) (id.RoleSet, error)
}

// Ledger appends the remark created by a denial.
type Ledger interface {
	Append(ctx context.Context, projectID id.ProjectID, createdBy id.UserID, stageAtCreation stage.Stage, draft remark.Draft) (id.RemarkID, error)
}

// StageReader reports the project's current stage so denial remarks can be
// tagged with the stage they were created at.
type StageReader interface {
	GetStage(ctx context.Context, projectID id.ProjectID) (stage.Stage, uint64, error)
}

// Service is the checklist gate. Every mutation is a read-validate-CAS cycle;
// a conflicting concurrent write surfaces as StaleChecklistStatus and the
// caller re-reads and retries.
type Service struct {
	store           Store
	identity        Identity
	ledger          Ledger
	stages          StageReader
	policy          *LinkPolicy
	defaultAssignee id.UserID
	logger          *slog.Logger
	metrics         *metrics.Metrics
	tracer          trace.Tracer
}

// Config carries the service's collaborators.
type Config struct {
	Store    Store
	Identity Identity
	Ledger   Ledger
	Stages   StageReader
	Policy   *LinkPolicy

	// DefaultAssignee receives denial remarks when no slot has a contributor.
	// Zero means denial requires at least one contributor.
	DefaultAssignee id.UserID

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func NewService(cfg Config) *Service {
	return &Service{
		store:           cfg.Store,
		identity:        cfg.Identity,
		ledger:          cfg.Ledger,
		stages:          cfg.Stages,
		policy:          cfg.Policy,
		defaultAssignee: cfg.DefaultAssignee,
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
		tracer:          otel.Tracer("grantflow/checklist"),
	}
}

// Get returns the project's checklist, materializing the lazy Pending default
// for projects that have never written one. The default is not persisted.
func (s *Service) Get(ctx context.Context, projectID id.ProjectID) (*Checklist, error) {
	c, _, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SetLink writes or clears one evidence slot. Permitted only while the
// checklist is Pending; the slot records who wrote it and when.
func (s *Service) SetLink(ctx context.Context, projectID id.ProjectID, slotIndex int, rawURL string, actorID id.UserID) (*Checklist, error) {
	ctx, span := s.tracer.Start(ctx, "checklist.SetLink")
	defer span.End()

	if slotIndex < 1 || slotIndex > SlotCount {
		return nil, dErrors.New(dErrors.CodeValidation, "slot index must be between 1 and 4")
	}
	if err := s.policy.Validate(rawURL); err != nil {
		s.metrics.IncLinkRejected()
		return nil, err
	}

	c, version, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if c.Status != StatusPending {
		return nil, dErrors.New(dErrors.CodeChecklistLocked, "checklist is locked once raised")
	}

	next := c.Clone()
	if rawURL == "" {
		next.Slots[slotIndex-1] = Slot{}
	} else {
		next.Slots[slotIndex-1] = Slot{
			URL:     rawURL,
			AddedBy: actorID,
			AddedAt: requestcontext.Now(ctx),
		}
	}

	if err := s.commit(ctx, projectID, version, next); err != nil {
		return nil, err
	}
	s.metrics.IncLinkWritten()
	return next, nil
}

// Raise submits the checklist for compliance approval. Requires the
// compliance-office capability and a complete set of slots.
func (s *Service) Raise(ctx context.Context, projectID id.ProjectID, actorID id.UserID) (*Checklist, error) {
	ctx, span := s.tracer.Start(ctx, "checklist.Raise")
	defer span.End()

	if err := s.requireRole(ctx, actorID, id.RoleComplianceOfficer, "compliance office capability required to raise"); err != nil {
		return nil, err
	}

	c, version, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if c.Status != StatusPending {
		return nil, dErrors.New(dErrors.CodeInvalidChecklistState, "checklist can only be raised from pending")
	}
	if !c.IsComplete() {
		return nil, dErrors.New(dErrors.CodeIncompleteChecklist, "all 4 evidence links are required before raising")
	}

	next := c.Clone()
	next.Status = StatusRaised
	if err := s.commit(ctx, projectID, version, next); err != nil {
		return nil, err
	}
	s.metrics.IncTransition("raise")
	s.logger.InfoContext(ctx, "checklist raised",
		"project_id", projectID,
		"actor_id", actorID,
	)
	return next, nil
}

// Approve marks the raised checklist approved, unblocking the compliance
// stages of the pipeline. Requires the final-compliance-approval capability.
// It does not advance the project's stage.
func (s *Service) Approve(ctx context.Context, projectID id.ProjectID, actorID id.UserID) (*Checklist, error) {
	ctx, span := s.tracer.Start(ctx, "checklist.Approve")
	defer span.End()

	if err := s.requireRole(ctx, actorID, id.RoleComplianceHead, "final compliance approval capability required"); err != nil {
		return nil, err
	}

	c, version, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if c.Status != StatusRaised {
		return nil, dErrors.New(dErrors.CodeInvalidChecklistState, "checklist can only be approved from raised")
	}

	next := c.Clone()
	next.Status = StatusApproved
	if err := s.commit(ctx, projectID, version, next); err != nil {
		return nil, err
	}
	s.metrics.IncTransition("approve")
	s.logger.InfoContext(ctx, "checklist approved",
		"project_id", projectID,
		"actor_id", actorID,
	)
	return next, nil
}

// Deny sends the raised checklist back to Pending and appends a remark
// assigned to the last link contributor, or to the configured default when no
// slot has a contributor yet.
func (s *Service) Deny(ctx context.Context, projectID id.ProjectID, actorID id.UserID, remarkMessage string) (*Checklist, error) {
	ctx, span := s.tracer.Start(ctx, "checklist.Deny")
	defer span.End()

	if err := s.requireRole(ctx, actorID, id.RoleComplianceHead, "final compliance approval capability required"); err != nil {
		return nil, err
	}
	if err := remark.ValidateDenialMessage(remarkMessage); err != nil {
		return nil, err
	}

	c, version, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if c.Status != StatusRaised {
		return nil, dErrors.New(dErrors.CodeInvalidChecklistState, "checklist can only be denied from raised")
	}

	assignee, ok := c.LastContributor()
	if !ok {
		assignee = s.defaultAssignee
	}
	if assignee.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidRemark, "no assignee available for denial remark")
	}

	currentStage, _, err := s.stages.GetStage(ctx, projectID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "project not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "project stage lookup failed")
	}

	next := c.Clone()
	next.Status = StatusPending
	if err := s.commit(ctx, projectID, version, next); err != nil {
		return nil, err
	}

	// The status reset is the commit point; the remark append follows it so a
	// rejected denial never writes a remark.
	if _, err := s.ledger.Append(ctx, projectID, actorID, currentStage, remark.Draft{
		Message:    remarkMessage,
		AssignedTo: assignee,
	}); err != nil {
		s.logger.ErrorContext(ctx, "denial remark append failed after status reset",
			"project_id", projectID,
			"actor_id", actorID,
			"error", err,
		)
		return nil, err
	}

	s.metrics.IncTransition("deny")
	s.logger.InfoContext(ctx, "checklist denied",
		"project_id", projectID,
		"actor_id", actorID,
		"assignee_id", assignee,
	)
	return next, nil
}

func (s *Service) load(ctx context.Context, projectID id.ProjectID) (*Checklist, uint64, error) {
	c, version, err := s.store.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return NewChecklist(projectID), 0, nil
		}
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "checklist load failed")
	}
	return c, version, nil
}

func (s *Service) commit(ctx context.Context, projectID id.ProjectID, expectedVersion uint64, c *Checklist) error {
	if err := s.store.CompareAndSet(ctx, projectID, expectedVersion, c); err != nil {
		if errors.Is(err, sentinel.ErrVersionConflict) {
			s.metrics.IncConflict()
			return dErrors.New(dErrors.CodeStaleChecklistStatus, "checklist changed concurrently, re-read and retry")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "checklist write failed")
	}
	return nil
}

func (s *Service) requireRole(ctx context.Context, actorID id.UserID, role id.Role, message string) error {
	roles, err := s.identity.RoleOf(ctx, actorID)
	if err != nil {
		return err
	}
	if !roles.Has(role) {
		return dErrors.New(dErrors.CodeUnauthorized, message)
	}
	return nil
}

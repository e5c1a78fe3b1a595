package remark

import (
	"context"
	"errors"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/sentinel"
	"grantflow/pkg/requestcontext"
)

// Service is the remark ledger. Drafts arrive already validated by the
// transition that creates them; the ledger assigns ids and timestamps and
// guards the assignee-only status toggle.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AppendAll materializes the drafts into remarks and appends them atomically,
// returning the new remark ids in draft order.
func (s *Service) AppendAll(
	ctx context.Context,
	projectID id.ProjectID,
	createdBy id.UserID,
	stageAtCreation stage.Stage,
	drafts []Draft,
) ([]id.RemarkID, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	now := requestcontext.Now(ctx)
	remarks := make([]*Remark, 0, len(drafts))
	ids := make([]id.RemarkID, 0, len(drafts))
	for _, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		remarkID := id.NewRemarkID()
		remarks = append(remarks, &Remark{
			ID:              remarkID,
			ProjectID:       projectID,
			Message:         d.Message,
			AssignedTo:      d.AssignedTo,
			CreatedBy:       createdBy,
			Status:          StatusTodo,
			StageAtCreation: stageAtCreation,
			CreatedAt:       now,
		})
		ids = append(ids, remarkID)
	}

	if err := s.store.AppendAll(ctx, remarks); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "append remarks failed")
	}
	return ids, nil
}

// Append appends a single remark and returns its id.
func (s *Service) Append(
	ctx context.Context,
	projectID id.ProjectID,
	createdBy id.UserID,
	stageAtCreation stage.Stage,
	draft Draft,
) (id.RemarkID, error) {
	ids, err := s.AppendAll(ctx, projectID, createdBy, stageAtCreation, []Draft{draft})
	if err != nil {
		return id.RemarkID{}, err
	}
	return ids[0], nil
}

// ToggleStatus flips the remark between todo and done. Only the assignee may
// toggle; the flip never touches project or checklist state.
func (s *Service) ToggleStatus(ctx context.Context, remarkID id.RemarkID, actorID id.UserID) (*Remark, error) {
	r, err := s.store.Get(ctx, remarkID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "remark not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "remark lookup failed")
	}
	if r.AssignedTo != actorID {
		return nil, dErrors.New(dErrors.CodeNotAssignee, "only the assignee may toggle a remark")
	}

	next := r.Status.Toggle()
	if err := s.store.SetStatus(ctx, remarkID, next); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "remark status update failed")
	}
	toggled := *r
	toggled.Status = next
	return &toggled, nil
}

// ListByProject returns a project's remarks oldest first.
func (s *Service) ListByProject(ctx context.Context, projectID id.ProjectID) ([]*Remark, error) {
	remarks, err := s.store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "remark list failed")
	}
	return remarks, nil
}

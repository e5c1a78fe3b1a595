package checklist

import (
	"context"

	id "grantflow/pkg/domain"
)

// Store persists checklists behind a versioned compare-and-set, the only
// concurrency-control mechanism for checklist mutations.
//
// Get returns sentinel.ErrNotFound for a project with no checklist yet; the
// service materializes the lazy default and creates it with expectedVersion 0.
// CompareAndSet returns sentinel.ErrVersionConflict when the stored version
// differs from expectedVersion.
type Store interface {
	Get(ctx context.Context, projectID id.ProjectID) (*Checklist, uint64, error)
	CompareAndSet(ctx context.Context, projectID id.ProjectID, expectedVersion uint64, c *Checklist) error
}

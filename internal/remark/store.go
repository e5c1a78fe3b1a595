package remark

import (
	"context"

	id "grantflow/pkg/domain"
)

// Store persists remarks. AppendAll is all-or-nothing: either every remark in
// the batch lands or none do. Stores never delete or rewrite a remark; the
// only permitted mutation is the status flag.
type Store interface {
	AppendAll(ctx context.Context, remarks []*Remark) error
	Get(ctx context.Context, remarkID id.RemarkID) (*Remark, error)
	SetStatus(ctx context.Context, remarkID id.RemarkID, status Status) error
	ListByProject(ctx context.Context, projectID id.ProjectID) ([]*Remark, error)
}

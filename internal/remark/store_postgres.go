package remark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

// PostgresStore persists remarks in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE remarks (
//	    id          UUID PRIMARY KEY,
//	    project_id  UUID NOT NULL,
//	    message     TEXT NOT NULL,
//	    assigned_to UUID NOT NULL,
//	    created_by  UUID NOT NULL,
//	    status      TEXT NOT NULL,
//	    stage       TEXT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX remarks_project_idx ON remarks (project_id, created_at);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed remark store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AppendAll(ctx context.Context, remarks []*Remark) error {
	if len(remarks) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remark append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range remarks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO remarks (id, project_id, message, assigned_to, created_by, status, stage, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.UUID(r.ID), uuid.UUID(r.ProjectID), r.Message,
			uuid.UUID(r.AssignedTo), uuid.UUID(r.CreatedBy),
			string(r.Status), r.StageAtCreation.String(), r.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert remark %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remark append: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, remarkID id.RemarkID) (*Remark, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, message, assigned_to, created_by, status, stage, created_at
		 FROM remarks WHERE id = $1`,
		uuid.UUID(remarkID),
	)
	r, err := scanRemark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("remark %s: %w", remarkID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query remark: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) SetStatus(ctx context.Context, remarkID id.RemarkID, status Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE remarks SET status = $2 WHERE id = $1`,
		uuid.UUID(remarkID), string(status),
	)
	if err != nil {
		return fmt.Errorf("update remark status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update remark status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remark %s: %w", remarkID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) ListByProject(ctx context.Context, projectID id.ProjectID) ([]*Remark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, message, assigned_to, created_by, status, stage, created_at
		 FROM remarks WHERE project_id = $1 ORDER BY created_at, id`,
		uuid.UUID(projectID),
	)
	if err != nil {
		return nil, fmt.Errorf("query project remarks: %w", err)
	}
	defer rows.Close()

	var out []*Remark
	for rows.Next() {
		r, err := scanRemark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan remark: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate remarks: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRemark(row rowScanner) (*Remark, error) {
	var (
		r          Remark
		remarkID   uuid.UUID
		projectID  uuid.UUID
		assignedTo uuid.UUID
		createdBy  uuid.UUID
		status     string
		stageRaw   string
	)
	if err := row.Scan(&remarkID, &projectID, &r.Message, &assignedTo, &createdBy, &status, &stageRaw, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.ID = id.RemarkID(remarkID)
	r.ProjectID = id.ProjectID(projectID)
	r.AssignedTo = id.UserID(assignedTo)
	r.CreatedBy = id.UserID(createdBy)
	r.Status = Status(status)
	r.StageAtCreation = stage.Stage(stageRaw)
	return &r, nil
}

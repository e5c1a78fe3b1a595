package approval

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

// PostgresProjectStore persists project stage records in PostgreSQL. The
// version column carries the compare-and-set guard.
//
// Schema:
//
//	CREATE TABLE projects (
//	    project_id UUID PRIMARY KEY,
//	    stage      TEXT NOT NULL,
//	    version    BIGINT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX projects_stage_idx ON projects (stage, updated_at);
type PostgresProjectStore struct {
	db *sql.DB
}

// NewPostgresProjectStore constructs a PostgreSQL-backed project store.
func NewPostgresProjectStore(db *sql.DB) *PostgresProjectStore {
	return &PostgresProjectStore{db: db}
}

func (s *PostgresProjectStore) GetStage(ctx context.Context, projectID id.ProjectID) (stage.Stage, uint64, error) {
	var (
		rawStage string
		version  uint64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT stage, version FROM projects WHERE project_id = $1`,
		uuid.UUID(projectID),
	).Scan(&rawStage, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, fmt.Errorf("project %s: %w", projectID, sentinel.ErrNotFound)
	}
	if err != nil {
		return "", 0, fmt.Errorf("query project: %w", err)
	}
	return stage.Stage(rawStage), version, nil
}

func (s *PostgresProjectStore) CompareAndSetStage(ctx context.Context, projectID id.ProjectID, expectedVersion uint64, newStage stage.Stage) error {
	if expectedVersion == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO projects (project_id, stage, version, updated_at)
			 VALUES ($1, $2, 1, now())`,
			uuid.UUID(projectID), newStage.String(),
		)
		if err != nil {
			if isProjectUniqueViolation(err) {
				return fmt.Errorf("project %s already registered: %w", projectID, sentinel.ErrVersionConflict)
			}
			return fmt.Errorf("insert project: %w", err)
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET stage = $3, version = version + 1, updated_at = now()
		 WHERE project_id = $1 AND version = $2`,
		uuid.UUID(projectID), expectedVersion, newStage.String(),
	)
	if err != nil {
		return fmt.Errorf("update project stage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project stage: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("project %s, expected version %d: %w",
			projectID, expectedVersion, sentinel.ErrVersionConflict)
	}
	return nil
}

func (s *PostgresProjectStore) ListByStage(ctx context.Context, st stage.Stage) ([]ProjectSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, stage, version, updated_at
		 FROM projects WHERE stage = $1
		 ORDER BY updated_at, project_id`,
		st.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query stage roster: %w", err)
	}
	defer rows.Close()

	var out []ProjectSummary
	for rows.Next() {
		var (
			projectID uuid.UUID
			rawStage  string
			summary   ProjectSummary
		)
		if err := rows.Scan(&projectID, &rawStage, &summary.Version, &summary.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		summary.ProjectID = id.ProjectID(projectID)
		summary.Stage = stage.Stage(rawStage)
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stage roster: %w", err)
	}
	return out, nil
}

func isProjectUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// unique_violation SQLSTATE
		return pqErr.Code == "23505"
	}
	return false
}

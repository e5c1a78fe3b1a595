package checklist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

// PostgresStore persists checklists in PostgreSQL. The version column carries
// the compare-and-set guard; the four slots are flattened into columns since
// the slot count is a domain constant.
//
// Schema:
//
//	CREATE TABLE checklists (
//	    project_id UUID PRIMARY KEY,
//	    status     TEXT NOT NULL,
//	    version    BIGINT NOT NULL,
//	    url_1 TEXT NOT NULL DEFAULT '', added_by_1 UUID, added_at_1 TIMESTAMPTZ,
//	    url_2 TEXT NOT NULL DEFAULT '', added_by_2 UUID, added_at_2 TIMESTAMPTZ,
//	    url_3 TEXT NOT NULL DEFAULT '', added_by_3 UUID, added_at_3 TIMESTAMPTZ,
//	    url_4 TEXT NOT NULL DEFAULT '', added_by_4 UUID, added_at_4 TIMESTAMPTZ
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed checklist store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, projectID id.ProjectID) (*Checklist, uint64, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT status, version,
		        url_1, added_by_1, added_at_1,
		        url_2, added_by_2, added_at_2,
		        url_3, added_by_3, added_at_3,
		        url_4, added_by_4, added_at_4
		 FROM checklists WHERE project_id = $1`,
		uuid.UUID(projectID),
	)

	var (
		c       Checklist
		status  string
		version uint64
		urls    [SlotCount]string
		addedBy [SlotCount]sql.Null[uuid.UUID]
		addedAt [SlotCount]sql.NullTime
	)
	err := row.Scan(
		&status, &version,
		&urls[0], &addedBy[0], &addedAt[0],
		&urls[1], &addedBy[1], &addedAt[1],
		&urls[2], &addedBy[2], &addedAt[2],
		&urls[3], &addedBy[3], &addedAt[3],
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, fmt.Errorf("checklist for project %s: %w", projectID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("query checklist: %w", err)
	}

	c.ProjectID = projectID
	c.Status = Status(status)
	for i := 0; i < SlotCount; i++ {
		if urls[i] == "" {
			continue
		}
		slot := Slot{URL: urls[i]}
		if addedBy[i].Valid {
			slot.AddedBy = id.UserID(addedBy[i].V)
		}
		if addedAt[i].Valid {
			slot.AddedAt = addedAt[i].Time
		}
		c.Slots[i] = slot
	}
	return &c, version, nil
}

func (s *PostgresStore) CompareAndSet(ctx context.Context, projectID id.ProjectID, expectedVersion uint64, c *Checklist) error {
	if expectedVersion == 0 {
		return s.insert(ctx, projectID, c)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE checklists SET
		     status = $3, version = version + 1,
		     url_1 = $4,  added_by_1 = $5,  added_at_1 = $6,
		     url_2 = $7,  added_by_2 = $8,  added_at_2 = $9,
		     url_3 = $10, added_by_3 = $11, added_at_3 = $12,
		     url_4 = $13, added_by_4 = $14, added_at_4 = $15
		 WHERE project_id = $1 AND version = $2`,
		slotArgs(projectID, expectedVersion, c)...,
	)
	if err != nil {
		return fmt.Errorf("update checklist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update checklist: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("checklist for project %s, expected version %d: %w",
			projectID, expectedVersion, sentinel.ErrVersionConflict)
	}
	return nil
}

func (s *PostgresStore) insert(ctx context.Context, projectID id.ProjectID, c *Checklist) error {
	args := slotArgs(projectID, 1, c)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checklists (project_id, version, status,
		     url_1, added_by_1, added_at_1,
		     url_2, added_by_2, added_at_2,
		     url_3, added_by_3, added_at_3,
		     url_4, added_by_4, added_at_4)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		args...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("checklist for project %s already created: %w", projectID, sentinel.ErrVersionConflict)
		}
		return fmt.Errorf("insert checklist: %w", err)
	}
	return nil
}

func slotArgs(projectID id.ProjectID, version uint64, c *Checklist) []any {
	args := []any{uuid.UUID(projectID), version, string(c.Status)}
	for _, slot := range c.Slots {
		var (
			by sql.Null[uuid.UUID]
			at sql.NullTime
		)
		if slot.IsFilled() {
			by = sql.Null[uuid.UUID]{V: uuid.UUID(slot.AddedBy), Valid: true}
			at = sql.NullTime{Time: slot.AddedAt, Valid: true}
		}
		args = append(args, slot.URL, by, at)
	}
	return args
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// unique_violation SQLSTATE
		return pqErr.Code == "23505"
	}
	return false
}

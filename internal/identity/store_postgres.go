package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "grantflow/pkg/domain"
)

// PostgresStore reads role grants from PostgreSQL.
//
// Schema:
//
//	CREATE TABLE users (
//	    id UUID PRIMARY KEY
//	);
//	CREATE TABLE user_roles (
//	    user_id UUID NOT NULL REFERENCES users(id),
//	    role    TEXT NOT NULL,
//	    PRIMARY KEY (user_id, role)
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed role store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) RolesOf(ctx context.Context, userID id.UserID) (id.RoleSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1`,
		uuid.UUID(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("query user roles: %w", err)
	}
	defer rows.Close()

	set := id.RoleSet{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		set[id.Role(raw)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user roles: %w", err)
	}
	return set, nil
}

func (s *PostgresStore) Exists(ctx context.Context, userID id.UserID) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE id = $1`,
		uuid.UUID(userID),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user existence: %w", err)
	}
	return true, nil
}

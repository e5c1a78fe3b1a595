//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// schema creates every table the stores expect. Kept in one place so
// integration suites start from the same shape the production migrations
// produce.
const schema = `
CREATE TABLE IF NOT EXISTS projects (
    project_id UUID PRIMARY KEY,
    stage      TEXT NOT NULL,
    version    BIGINT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS projects_stage_idx ON projects (stage, updated_at);

CREATE TABLE IF NOT EXISTS checklists (
    project_id UUID PRIMARY KEY,
    status     TEXT NOT NULL,
    version    BIGINT NOT NULL,
    url_1 TEXT NOT NULL DEFAULT '', added_by_1 UUID, added_at_1 TIMESTAMPTZ,
    url_2 TEXT NOT NULL DEFAULT '', added_by_2 UUID, added_at_2 TIMESTAMPTZ,
    url_3 TEXT NOT NULL DEFAULT '', added_by_3 UUID, added_at_3 TIMESTAMPTZ,
    url_4 TEXT NOT NULL DEFAULT '', added_by_4 UUID, added_at_4 TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS remarks (
    id          UUID PRIMARY KEY,
    project_id  UUID NOT NULL,
    message     TEXT NOT NULL,
    assigned_to UUID NOT NULL,
    created_by  UUID NOT NULL,
    status      TEXT NOT NULL,
    stage       TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS remarks_project_idx ON remarks (project_id, created_at);

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS user_roles (
    user_id UUID NOT NULL REFERENCES users(id),
    role    TEXT NOT NULL,
    PRIMARY KEY (user_id, role)
);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with an open
// connection pool and the schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new PostgreSQL container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("grantflow"),
		tcpostgres.WithUsername("grantflow"),
		tcpostgres.WithPassword("grantflow"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	// Container lifetime is managed by the singleton Manager; Ryuk reaps it
	// when the test process exits.
	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// TruncateTables empties the given tables. Use between tests for isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.ExecContext(ctx,
		fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	return err
}

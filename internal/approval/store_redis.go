package approval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	"grantflow/pkg/platform/sentinel"
)

// RedisProjectStore persists project stage records in Redis for hosts that
// run without PostgreSQL. Each project is a hash keyed by id; a per-stage set
// serves the roster. The compare-and-set rides an optimistic WATCH
// transaction on the project key.
type RedisProjectStore struct {
	client *redis.Client
}

// NewRedisProjectStore constructs a Redis-backed project store.
func NewRedisProjectStore(client *redis.Client) *RedisProjectStore {
	return &RedisProjectStore{client: client}
}

func projectKey(projectID id.ProjectID) string {
	return "grantflow:project:" + projectID.String()
}

func stageKey(s stage.Stage) string {
	return "grantflow:stage:" + s.String()
}

func (s *RedisProjectStore) GetStage(ctx context.Context, projectID id.ProjectID) (stage.Stage, uint64, error) {
	values, err := s.client.HGetAll(ctx, projectKey(projectID)).Result()
	if err != nil {
		return "", 0, fmt.Errorf("read project %s: %w", projectID, err)
	}
	if len(values) == 0 {
		return "", 0, fmt.Errorf("project %s: %w", projectID, sentinel.ErrNotFound)
	}
	var version uint64
	if _, err := fmt.Sscanf(values["version"], "%d", &version); err != nil {
		return "", 0, fmt.Errorf("project %s has corrupt version %q", projectID, values["version"])
	}
	return stage.Stage(values["stage"]), version, nil
}

func (s *RedisProjectStore) CompareAndSetStage(ctx context.Context, projectID id.ProjectID, expectedVersion uint64, newStage stage.Stage) error {
	key := projectKey(projectID)

	txn := func(tx *redis.Tx) error {
		values, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("read project %s: %w", projectID, err)
		}

		current := uint64(0)
		previous := stage.Stage("")
		if len(values) > 0 {
			if _, err := fmt.Sscanf(values["version"], "%d", &current); err != nil {
				return fmt.Errorf("project %s has corrupt version %q", projectID, values["version"])
			}
			previous = stage.Stage(values["stage"])
		}
		if current != expectedVersion {
			return fmt.Errorf("project %s at version %d, expected %d: %w",
				projectID, current, expectedVersion, sentinel.ErrVersionConflict)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				"stage", newStage.String(),
				"version", current+1,
				"updated_at", time.Now().UTC().Format(time.RFC3339Nano),
			)
			if previous != "" && previous != newStage {
				pipe.SRem(ctx, stageKey(previous), projectID.String())
			}
			pipe.SAdd(ctx, stageKey(newStage), projectID.String())
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txn, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Another writer touched the key between our read and the exec.
		return fmt.Errorf("project %s: concurrent write: %w", projectID, sentinel.ErrVersionConflict)
	}
	return err
}

func (s *RedisProjectStore) ListByStage(ctx context.Context, st stage.Stage) ([]ProjectSummary, error) {
	members, err := s.client.SMembers(ctx, stageKey(st)).Result()
	if err != nil {
		return nil, fmt.Errorf("read stage roster: %w", err)
	}

	out := make([]ProjectSummary, 0, len(members))
	for _, member := range members {
		projectID, err := id.ParseProjectID(member)
		if err != nil {
			continue
		}
		values, err := s.client.HGetAll(ctx, projectKey(projectID)).Result()
		if err != nil {
			return nil, fmt.Errorf("read project %s: %w", projectID, err)
		}
		// The roster set can briefly lag the hash; trust the hash.
		if len(values) == 0 || stage.Stage(values["stage"]) != st {
			continue
		}
		var summary ProjectSummary
		summary.ProjectID = projectID
		summary.Stage = st
		if _, err := fmt.Sscanf(values["version"], "%d", &summary.Version); err != nil {
			continue
		}
		if at, err := time.Parse(time.RFC3339Nano, values["updated_at"]); err == nil {
			summary.UpdatedAt = at
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].ProjectID.String() < out[j].ProjectID.String()
	})
	return out, nil
}

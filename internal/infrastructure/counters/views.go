package counters

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

// RedisViewCounter counts mission detail views in Redis. The count is
// diagnostic, so a failed bump is logged and dropped rather than failing
// the request.
type RedisViewCounter struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisViewCounter(client *redis.Client, log zerolog.Logger) *RedisViewCounter {
	return &RedisViewCounter{client: client, log: log}
}

func (c *RedisViewCounter) Bump(ctx context.Context, id domain.MissionID) {
	key := "mission:views:" + id.String()
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		c.log.Debug().Err(err).Str("mission_id", id.String()).Msg("view counter bump failed")
	}
}

// DBViewCounter bumps the missions.view_count column directly. Fallback
// for deployments without Redis.
type DBViewCounter struct {
	missions ports.MissionRepository
	log      zerolog.Logger
}

func NewDBViewCounter(missions ports.MissionRepository, log zerolog.Logger) *DBViewCounter {
	return &DBViewCounter{missions: missions, log: log}
}

func (c *DBViewCounter) Bump(ctx context.Context, id domain.MissionID) {
	if err := c.missions.IncrementViewCount(ctx, id); err != nil {
		c.log.Debug().Err(err).Str("mission_id", id.String()).Msg("view counter bump failed")
	}
}

var (
	_ ports.ViewCounter = (*RedisViewCounter)(nil)
	_ ports.ViewCounter = (*DBViewCounter)(nil)
)

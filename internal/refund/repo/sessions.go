// Package repo persists session snapshots in Redis.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/refundflow/server/internal/core/error"
	logx "github.com/refundflow/server/pkg/logger"

	"github.com/refundflow/server/internal/refund/model"
)

// RedisSessionRepository stores one JSON snapshot document per session with
// a sliding TTL.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisSessionRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("refund:session:%s", sessionID)
}

// Save writes the snapshot, refreshing the TTL.
func (r *RedisSessionRepository) Save(ctx context.Context, snap model.SessionSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		logx.Error().Err(err).Str("session_id", snap.SessionID).Msg("failed to marshal session snapshot")
		return fmt.Errorf("marshal session snapshot: %w", err)
	}
	key := r.sessionKey(snap.SessionID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write session snapshot to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// Load reads a snapshot back. A missing session returns a not-found error.
func (r *RedisSessionRepository) Load(ctx context.Context, sessionID string) (*model.SessionSnapshot, error) {
	key := r.sessionKey(sessionID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to load session snapshot from redis")
		}
		return nil, errx.WrapRedis(err)
	}

	var snap model.SessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to unmarshal session snapshot")
		return nil, fmt.Errorf("unmarshal session snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes a stored snapshot.
func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := r.sessionKey(sessionID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session snapshot from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)

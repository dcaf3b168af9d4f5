package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	errx "github.com/mangaluru-mitra/server/internal/core/error"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisMessageRepository stores each user's conversation history as a Redis
// list of JSON-encoded messages. Partitions are independent per user.
type RedisMessageRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisMessageRepository(rdb redis.Cmdable, ttl time.Duration) *RedisMessageRepository {
	return &RedisMessageRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisMessageRepository) messagesKey(userID string) string {
	return fmt.Sprintf("guide:user:%s:messages", userID)
}

func (r *RedisMessageRepository) Append(ctx context.Context, userID string, message *model.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.messagesKey(userID)

	// append message
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push message to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on messages key")
		}
	}
	return nil
}

func (r *RedisMessageRepository) List(ctx context.Context, userID string) ([]*model.Message, error) {
	key := r.messagesKey(userID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []*model.Message{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load message history from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*model.Message, 0, len(rows))
	for i, s := range rows {
		var m model.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("userID", userID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}

func (r *RedisMessageRepository) Clear(ctx context.Context, userID string) error {
	key := r.messagesKey(userID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete message history from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisMessageRepository) Count(ctx context.Context, userID string) (int, error) {
	key := r.messagesKey(userID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to get message count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.MessageRepository = (*RedisMessageRepository)(nil)

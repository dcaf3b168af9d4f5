package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mangaluru-mitra/server/internal/agent/model"
	errx "github.com/mangaluru-mitra/server/internal/core/error"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisFavoriteRepository stores each user's favorites as a Redis list of
// JSON-encoded snapshots, in save order.
type RedisFavoriteRepository struct {
	rdb redis.Cmdable
}

func NewRedisFavoriteRepository(rdb redis.Cmdable) *RedisFavoriteRepository {
	return &RedisFavoriteRepository{rdb: rdb}
}

func (r *RedisFavoriteRepository) favoritesKey(userID string) string {
	return fmt.Sprintf("guide:user:%s:favorites", userID)
}

func (r *RedisFavoriteRepository) Save(ctx context.Context, userID, title, content string) (*model.Favorite, error) {
	fav := &model.Favorite{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		SavedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(fav)
	if err != nil {
		return nil, fmt.Errorf("marshal favorite: %w", err)
	}

	key := r.favoritesKey(userID)
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push favorite to redis")
		return nil, errx.WrapRedis(err)
	}
	return fav, nil
}

func (r *RedisFavoriteRepository) List(ctx context.Context, userID string) ([]model.Favorite, error) {
	key := r.favoritesKey(userID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Favorite{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load favorites from redis")
		return nil, errx.WrapRedis(err)
	}

	favs := make([]model.Favorite, 0, len(rows))
	for i, s := range rows {
		var f model.Favorite
		if err := json.Unmarshal([]byte(s), &f); err != nil {
			logx.Error().Err(err).Str("userID", userID).Int("index", i).Msg("failed to unmarshal favorite")
			return nil, fmt.Errorf("unmarshal favorite at index %d: %w", i, err)
		}
		favs = append(favs, f)
	}
	return favs, nil
}

// Remove deletes the favorite with the given ID by rewriting the list without
// it. Removing an ID that is not present is a no-op, not an error.
func (r *RedisFavoriteRepository) Remove(ctx context.Context, userID, favoriteID string) error {
	favs, err := r.List(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]any, 0, len(favs))
	for _, f := range favs {
		if f.ID == favoriteID {
			continue
		}
		b, err := json.Marshal(f)
		if err != nil {
			return fmt.Errorf("marshal favorite: %w", err)
		}
		kept = append(kept, b)
	}
	if len(kept) == len(favs) {
		return nil
	}

	key := r.favoritesKey(userID)
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(kept) > 0 {
		pipe.RPush(ctx, key, kept...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to rewrite favorites list")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.FavoriteRepository = (*RedisFavoriteRepository)(nil)

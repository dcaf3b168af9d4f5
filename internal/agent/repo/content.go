package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	errx "github.com/mangaluru-mitra/server/internal/core/error"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	keyPlaces  = "guide:data:places"
	keyFoods   = "guide:data:food"
	keyPhrases = "guide:data:tulu"
	keyEvents  = "guide:data:events"
)

// RedisContentStore keeps each reference collection as a Redis list of JSON
// documents. Insertion (seed) order is the store's iteration order, so lists
// come back in a stable, deterministic sequence.
type RedisContentStore struct {
	rdb redis.Cmdable
}

func NewRedisContentStore(rdb redis.Cmdable) *RedisContentStore {
	return &RedisContentStore{rdb: rdb}
}

// listCollection loads and decodes every document in a collection list.
func listCollection[T any](ctx context.Context, rdb redis.Cmdable, key string) ([]T, error) {
	rows, err := rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []T{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load collection from redis")
		return nil, errx.WrapRedis(err)
	}

	docs := make([]T, 0, len(rows))
	for i, s := range rows {
		var doc T
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			logx.Error().Err(err).Str("key", key).Int("index", i).Msg("failed to unmarshal document")
			return nil, fmt.Errorf("unmarshal %s document at index %d: %w", key, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *RedisContentStore) ListPlaces(ctx context.Context) ([]model.Place, error) {
	return listCollection[model.Place](ctx, s.rdb, keyPlaces)
}

func (s *RedisContentStore) ListFoods(ctx context.Context) ([]model.Food, error) {
	return listCollection[model.Food](ctx, s.rdb, keyFoods)
}

func (s *RedisContentStore) ListPhrases(ctx context.Context) ([]model.Phrase, error) {
	return listCollection[model.Phrase](ctx, s.rdb, keyPhrases)
}

func (s *RedisContentStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	return listCollection[model.Event](ctx, s.rdb, keyEvents)
}

// FindPlace returns the place whose stored name matches exactly, or
// model.ErrNotFound. Collections are seed-sized, so a linear scan is fine.
func (s *RedisContentStore) FindPlace(ctx context.Context, name string) (*model.Place, error) {
	places, err := s.ListPlaces(ctx)
	if err != nil {
		return nil, err
	}
	for i := range places {
		if places[i].Name == name {
			return &places[i], nil
		}
	}
	return nil, model.ErrNotFound
}

// FindFood returns the food whose stored name matches exactly, or
// model.ErrNotFound.
func (s *RedisContentStore) FindFood(ctx context.Context, name string) (*model.Food, error) {
	foods, err := s.ListFoods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range foods {
		if foods[i].Name == name {
			return &foods[i], nil
		}
	}
	return nil, model.ErrNotFound
}

var _ model.ContentStore = (*RedisContentStore)(nil)

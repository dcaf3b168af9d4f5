package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mangaluru-mitra/server/internal/agent/model"
)

// MemoryContentStore is an in-process ContentStore. It backs tests and can
// serve a session without a Redis instance; iteration order is slice order.
type MemoryContentStore struct {
	Places  []model.Place
	Foods   []model.Food
	Phrases []model.Phrase
	Events  []model.Event
}

// NewSeededMemoryContentStore returns an in-memory store holding the same
// dataset Seed writes to Redis.
func NewSeededMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{
		Places:  seedPlaces,
		Foods:   seedFoods,
		Phrases: seedPhrases,
		Events:  seedEvents,
	}
}

func (s *MemoryContentStore) FindPlace(_ context.Context, name string) (*model.Place, error) {
	for i := range s.Places {
		if s.Places[i].Name == name {
			p := s.Places[i]
			return &p, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *MemoryContentStore) FindFood(_ context.Context, name string) (*model.Food, error) {
	for i := range s.Foods {
		if s.Foods[i].Name == name {
			f := s.Foods[i]
			return &f, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *MemoryContentStore) ListPlaces(_ context.Context) ([]model.Place, error) {
	return append([]model.Place(nil), s.Places...), nil
}

func (s *MemoryContentStore) ListFoods(_ context.Context) ([]model.Food, error) {
	return append([]model.Food(nil), s.Foods...), nil
}

func (s *MemoryContentStore) ListPhrases(_ context.Context) ([]model.Phrase, error) {
	return append([]model.Phrase(nil), s.Phrases...), nil
}

func (s *MemoryContentStore) ListEvents(_ context.Context) ([]model.Event, error) {
	return append([]model.Event(nil), s.Events...), nil
}

// MemoryMessageRepository keeps per-user histories in process memory. Used in
// tests and for anonymous sessions, whose history lives only as long as the
// process.
type MemoryMessageRepository struct {
	mu       sync.Mutex
	messages map[string][]*model.Message
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{messages: make(map[string][]*model.Message)}
}

func (r *MemoryMessageRepository) Append(_ context.Context, userID string, message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[userID] = append(r.messages[userID], message)
	return nil
}

func (r *MemoryMessageRepository) List(_ context.Context, userID string) ([]*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.Message(nil), r.messages[userID]...), nil
}

func (r *MemoryMessageRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, userID)
	return nil
}

func (r *MemoryMessageRepository) Count(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[userID]), nil
}

// MemoryFavoriteRepository keeps per-user favorites in process memory.
type MemoryFavoriteRepository struct {
	mu        sync.Mutex
	favorites map[string][]model.Favorite
}

func NewMemoryFavoriteRepository() *MemoryFavoriteRepository {
	return &MemoryFavoriteRepository{favorites: make(map[string][]model.Favorite)}
}

func (r *MemoryFavoriteRepository) Save(_ context.Context, userID, title, content string) (*model.Favorite, error) {
	fav := model.Favorite{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		SavedAt: time.Now().UTC(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites[userID] = append(r.favorites[userID], fav)
	return &fav, nil
}

func (r *MemoryFavoriteRepository) Remove(_ context.Context, userID, favoriteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	favs := r.favorites[userID]
	kept := favs[:0]
	for _, f := range favs {
		if f.ID != favoriteID {
			kept = append(kept, f)
		}
	}
	r.favorites[userID] = kept
	return nil
}

func (r *MemoryFavoriteRepository) List(_ context.Context, userID string) ([]model.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Favorite(nil), r.favorites[userID]...), nil
}

var (
	_ model.ContentStore       = (*MemoryContentStore)(nil)
	_ model.MessageRepository  = (*MemoryMessageRepository)(nil)
	_ model.FavoriteRepository = (*MemoryFavoriteRepository)(nil)
)

package model

import (
	"context"
	"errors"
)

// ErrNotFound reports an exact-name lookup miss in the content store. The
// responder never surfaces it to the user; it triggers the general-knowledge
// fallback instead.
var ErrNotFound = errors.New("record not found")

// ContentStore exposes the seeded reference collections. Name lookups are
// exact, case-sensitive matches against the stored name. List order is the
// store's native iteration order, stable within a session.
type ContentStore interface {
	FindPlace(ctx context.Context, name string) (*Place, error)
	FindFood(ctx context.Context, name string) (*Food, error)
	ListPlaces(ctx context.Context) ([]Place, error)
	ListFoods(ctx context.Context) ([]Food, error)
	ListPhrases(ctx context.Context) ([]Phrase, error)
	ListEvents(ctx context.Context) ([]Event, error)
}

// MessageRepository persists per-user conversation history. Partitions are
// fully independent across users; no cross-user operation exists.
type MessageRepository interface {
	// Append adds a message to the end of the user's history
	Append(ctx context.Context, userID string, message *Message) error

	// List returns the user's history in append order
	List(ctx context.Context, userID string) ([]*Message, error)

	// Clear removes all messages for the user
	Clear(ctx context.Context, userID string) error

	// Count returns the number of messages in the user's history
	Count(ctx context.Context, userID string) (int, error)
}

// FavoriteRepository persists per-user card snapshots. Save is append-only
// and assigns a fresh ID each call; saving the same card twice creates two
// records. Remove of an absent ID is not an error.
type FavoriteRepository interface {
	Save(ctx context.Context, userID, title, content string) (*Favorite, error)
	Remove(ctx context.Context, userID, favoriteID string) error
	List(ctx context.Context, userID string) ([]Favorite, error)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mangaluru-mitra/server/internal/agent/graph"
	"github.com/mangaluru-mitra/server/internal/agent/model"
	"github.com/mangaluru-mitra/server/internal/agent/repo"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

// Status is the per-turn state of a session. Exactly one turn may be in
// flight; Send refuses to start another until the current one finishes.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
)

// WelcomeMessage greets the user on a fresh or freshly cleared history.
const WelcomeMessage = "Namaskara! I'm Mangaluru Mitra. Ask me about local food, famous places, or even some Tulu phrases!"

var (
	ErrTurnInFlight     = errors.New("a turn is already in flight")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrIdentityRequired = errors.New("sign in required")
)

// Session sequences one conversation: send -> classify -> respond -> persist.
// A signed-in session persists through the injected repositories; an
// anonymous one keeps history in process memory and has no favorites.
type Session struct {
	mu     sync.Mutex
	status Status

	userID    string
	runner    graph.Runner
	messages  model.MessageRepository
	favorites model.FavoriteRepository
}

// New creates a session for a signed-in user.
func New(runner graph.Runner, messages model.MessageRepository, favorites model.FavoriteRepository, userID string) *Session {
	return &Session{
		status:    StatusIdle,
		userID:    userID,
		runner:    runner,
		messages:  messages,
		favorites: favorites,
	}
}

// NewAnonymous creates a session without identity. History lives only in
// memory for the session's lifetime; favorites are unavailable.
func NewAnonymous(runner graph.Runner) *Session {
	return &Session{
		status:   StatusIdle,
		runner:   runner,
		messages: repo.NewMemoryMessageRepository(),
	}
}

// Start seeds the welcome message when the history is empty.
func (s *Session) Start(ctx context.Context) error {
	n, err := s.messages.Count(ctx, s.userID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return s.messages.Append(ctx, s.userID, model.NewTextMessage(WelcomeMessage))
}

// Status reports the current turn state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusIdle {
		return ErrTurnInFlight
	}
	s.status = StatusSending
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.status = StatusIdle
	s.mu.Unlock()
}

// Send runs one full turn. The conversation always gains exactly one user
// message and one bot message; when the pipeline fails, the bot message is a
// synthetic one carrying the error description, and the session still
// returns to idle.
func (s *Session) Send(ctx context.Context, text string) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if err := s.messages.Append(ctx, s.userID, model.NewUserMessage(text)); err != nil {
		return nil, err
	}

	bot, err := s.runner.Invoke(ctx, model.TurnInput{UserID: s.userID, Query: text})
	if err != nil {
		logx.Error().Err(err).Msg("turn failed, answering with error message")
		bot = model.NewTextMessage(fmt.Sprintf("A critical error occurred: %v. Please try again in a moment!", err))
	}

	if err := s.messages.Append(ctx, s.userID, bot); err != nil {
		return bot, err
	}
	return bot, nil
}

// History returns the session's messages in append order.
func (s *Session) History(ctx context.Context) ([]*model.Message, error) {
	return s.messages.List(ctx, s.userID)
}

// Clear deletes the whole history and reseeds the welcome message. The two
// steps are not transactional; a crash in between leaves an empty history.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.messages.Clear(ctx, s.userID); err != nil {
		return err
	}
	return s.messages.Append(ctx, s.userID, model.NewTextMessage(WelcomeMessage))
}

// SaveFavorite snapshots a previously rendered card. Saving the same card
// twice creates two records.
func (s *Session) SaveFavorite(ctx context.Context, card *model.Card) (*model.Favorite, error) {
	if s.userID == "" || s.favorites == nil {
		return nil, ErrIdentityRequired
	}
	if card == nil {
		return nil, errors.New("no card to save")
	}
	return s.favorites.Save(ctx, s.userID, card.Title, card.Content)
}

// RemoveFavorite deletes a saved snapshot; removing an unknown ID is a no-op.
func (s *Session) RemoveFavorite(ctx context.Context, favoriteID string) error {
	if s.userID == "" || s.favorites == nil {
		return ErrIdentityRequired
	}
	return s.favorites.Remove(ctx, s.userID, favoriteID)
}

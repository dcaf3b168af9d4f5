package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	"github.com/mangaluru-mitra/server/internal/agent/repo"
)

// stubRunner answers every turn with a fixed message or error. When block is
// set it holds the turn open until released, for in-flight tests.
type stubRunner struct {
	reply *model.Message
	err   error

	block   chan struct{}
	started chan struct{}

	mu    sync.Mutex
	calls int
}

func (r *stubRunner) Invoke(_ context.Context, in model.TurnInput) (*model.Message, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.reply, nil
}

func newTestSession(runner *stubRunner) (*Session, *repo.MemoryMessageRepository, *repo.MemoryFavoriteRepository) {
	messages := repo.NewMemoryMessageRepository()
	favorites := repo.NewMemoryFavoriteRepository()
	return New(runner, messages, favorites, "user-1"), messages, favorites
}

func TestStartSeedsWelcome(t *testing.T) {
	sess, _, _ := newTestSession(&stubRunner{})

	require.NoError(t, sess.Start(context.Background()))

	history, err := sess.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.SenderBot, history[0].Sender)
	assert.Equal(t, WelcomeMessage, history[0].Content)

	t.Run("second start does not reseed", func(t *testing.T) {
		require.NoError(t, sess.Start(context.Background()))
		history, err := sess.History(context.Background())
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})
}

func TestSend(t *testing.T) {
	t.Run("successful turn appends user and bot messages", func(t *testing.T) {
		runner := &stubRunner{reply: model.NewTextMessage("Namaskara!")}
		sess, _, _ := newTestSession(runner)

		bot, err := sess.Send(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "Namaskara!", bot.Content)

		history, err := sess.History(context.Background())
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, model.SenderUser, history[0].Sender)
		assert.Equal(t, "hello", history[0].Content)
		assert.Equal(t, model.SenderBot, history[1].Sender)
		assert.Equal(t, StatusIdle, sess.Status())
	})

	t.Run("whitespace-only message is rejected before any append", func(t *testing.T) {
		runner := &stubRunner{reply: model.NewTextMessage("unused")}
		sess, _, _ := newTestSession(runner)

		_, err := sess.Send(context.Background(), "   \n\t ")
		require.ErrorIs(t, err, ErrEmptyMessage)

		history, err := sess.History(context.Background())
		require.NoError(t, err)
		assert.Empty(t, history)
		assert.Zero(t, runner.calls)
	})

	t.Run("text is trimmed before persisting", func(t *testing.T) {
		runner := &stubRunner{reply: model.NewTextMessage("ok")}
		sess, _, _ := newTestSession(runner)

		_, err := sess.Send(context.Background(), "  hello  ")
		require.NoError(t, err)

		history, _ := sess.History(context.Background())
		assert.Equal(t, "hello", history[0].Content)
	})

	t.Run("turn failure yields a synthetic bot message", func(t *testing.T) {
		runner := &stubRunner{err: errors.New("classifier output is not valid JSON")}
		sess, _, _ := newTestSession(runner)

		bot, err := sess.Send(context.Background(), "gibberish")
		require.NoError(t, err, "the turn still completes from the caller's view")
		assert.Equal(t, model.ResponseText, bot.Type)
		assert.Contains(t, bot.Content, "A critical error occurred")
		assert.Contains(t, bot.Content, "classifier output is not valid JSON")

		history, _ := sess.History(context.Background())
		require.Len(t, history, 2, "exactly one user and one bot message per turn")
		assert.Equal(t, StatusIdle, sess.Status())
	})

	t.Run("second send while a turn is in flight is refused", func(t *testing.T) {
		runner := &stubRunner{
			reply:   model.NewTextMessage("slow answer"),
			block:   make(chan struct{}),
			started: make(chan struct{}, 1),
		}
		sess, _, _ := newTestSession(runner)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := sess.Send(context.Background(), "first")
			assert.NoError(t, err)
		}()

		<-runner.started
		assert.Equal(t, StatusSending, sess.Status())

		_, err := sess.Send(context.Background(), "second")
		require.ErrorIs(t, err, ErrTurnInFlight)

		close(runner.block)
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("first turn never finished")
		}
		assert.Equal(t, StatusIdle, sess.Status())
		assert.Equal(t, 1, runner.calls)
	})
}

func TestClear(t *testing.T) {
	runner := &stubRunner{reply: model.NewTextMessage("answer")}
	sess, _, _ := newTestSession(runner)

	require.NoError(t, sess.Start(context.Background()))
	_, err := sess.Send(context.Background(), "hello")
	require.NoError(t, err)

	require.NoError(t, sess.Clear(context.Background()))

	history, err := sess.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1, "cleared history holds only a fresh welcome")
	assert.Equal(t, WelcomeMessage, history[0].Content)
	assert.Equal(t, StatusIdle, sess.Status())
}

func TestFavorites(t *testing.T) {
	t.Run("save list remove round trip", func(t *testing.T) {
		sess, _, _ := newTestSession(&stubRunner{})

		fav, err := sess.SaveFavorite(context.Background(), &model.Card{Title: "Neer Dosa", Content: "A thin rice crepe."})
		require.NoError(t, err)
		assert.NotEmpty(t, fav.ID)
		assert.Equal(t, "Neer Dosa", fav.Title)
		assert.False(t, fav.SavedAt.IsZero())

		require.NoError(t, sess.RemoveFavorite(context.Background(), fav.ID))
	})

	t.Run("saving the same card twice makes two snapshots", func(t *testing.T) {
		sess, _, favs := newTestSession(&stubRunner{})
		card := &model.Card{Title: "Golibaje (Mangalore Buns)", Content: "Fluffy fritters."}

		first, err := sess.SaveFavorite(context.Background(), card)
		require.NoError(t, err)
		second, err := sess.SaveFavorite(context.Background(), card)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		saved, err := favs.List(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Len(t, saved, 2)
	})

	t.Run("removing an unknown id is a no-op", func(t *testing.T) {
		sess, _, favs := newTestSession(&stubRunner{})
		_, err := sess.SaveFavorite(context.Background(), &model.Card{Title: "Neer Dosa", Content: "..."})
		require.NoError(t, err)

		require.NoError(t, sess.RemoveFavorite(context.Background(), "no-such-id"))

		saved, err := favs.List(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Len(t, saved, 1)
	})

	t.Run("anonymous session cannot use favorites", func(t *testing.T) {
		sess := NewAnonymous(&stubRunner{})

		_, err := sess.SaveFavorite(context.Background(), &model.Card{Title: "Neer Dosa"})
		require.ErrorIs(t, err, ErrIdentityRequired)
		require.ErrorIs(t, sess.RemoveFavorite(context.Background(), "any"), ErrIdentityRequired)
	})
}

func TestAnonymousSessionKeepsHistoryInMemory(t *testing.T) {
	runner := &stubRunner{reply: model.NewTextMessage("answer")}
	sess := NewAnonymous(runner)

	require.NoError(t, sess.Start(context.Background()))
	_, err := sess.Send(context.Background(), "hello")
	require.NoError(t, err)

	history, err := sess.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 3) // welcome, user, bot
}

package llm

import (
	"context"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hangingChatModel blocks every call until its context is cancelled.
type hangingChatModel struct{}

func (m *hangingChatModel) Generate(ctx context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (m *hangingChatModel) Stream(ctx context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// deadlineProbe records whether the call context carried a deadline.
type deadlineProbe struct {
	hadDeadline bool
}

func (m *deadlineProbe) Generate(ctx context.Context, _ []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	_, m.hadDeadline = ctx.Deadline()
	return schema.AssistantMessage("ok", nil), nil
}

func (m *deadlineProbe) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	out, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{out}), nil
}

func TestBoundedChatModel(t *testing.T) {
	t.Run("stalled call is cut at the deadline", func(t *testing.T) {
		bounded := NewBoundedChatModel(&hangingChatModel{}, 50*time.Millisecond)

		start := time.Now()
		_, err := bounded.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 5*time.Second, "call must not hang past the deadline")
	})

	t.Run("imposes a deadline on a bare context", func(t *testing.T) {
		probe := &deadlineProbe{}
		bounded := NewBoundedChatModel(probe, time.Second)

		_, err := bounded.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
		require.NoError(t, err)
		assert.True(t, probe.hadDeadline)
	})

	t.Run("non-positive timeout falls back to the default", func(t *testing.T) {
		bounded := NewBoundedChatModel(&deadlineProbe{}, 0)
		assert.Equal(t, DefaultCallTimeout, bounded.timeout)
	})
}

func TestModelGeneratorTimesOut(t *testing.T) {
	gen := NewModelGenerator(&hangingChatModel{})
	gen.timeout = 50 * time.Millisecond

	_, err := gen.Generate(context.Background(), "narrate this")
	require.Error(t, err)
}

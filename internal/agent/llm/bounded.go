package llm

import (
	"context"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// BoundedChatModel wraps a chat model so every call carries a deadline. A
// stalled provider call then surfaces as a context error instead of hanging
// the turn; callers treat expiry as any other transient model failure.
type BoundedChatModel struct {
	cm      einomodel.BaseChatModel
	timeout time.Duration
}

func NewBoundedChatModel(cm einomodel.BaseChatModel, timeout time.Duration) *BoundedChatModel {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &BoundedChatModel{cm: cm, timeout: timeout}
}

func (b *BoundedChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.cm.Generate(ctx, input, opts...)
}

// Stream bounds the whole stream lifetime, not just the dial: cancelling on
// return would kill the reader mid-consumption, so the deadline fires instead.
func (b *BoundedChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	sr, err := b.cm.Stream(ctx, input, opts...)
	if err != nil {
		cancel()
		return nil, err
	}
	time.AfterFunc(b.timeout, cancel)
	return sr, nil
}

var _ einomodel.BaseChatModel = (*BoundedChatModel)(nil)

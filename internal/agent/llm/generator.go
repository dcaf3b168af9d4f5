package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	errx "github.com/mangaluru-mitra/server/internal/core/error"
)

// DefaultCallTimeout bounds a single generation call. The upstream design
// waited indefinitely; expiry is treated as a transient model failure.
const DefaultCallTimeout = 10 * time.Second

// Generator sends one natural-language prompt to a generative model and
// returns the raw text it produced.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModelGenerator adapts an Eino chat model to the single-prompt Generator
// contract used by narration and general-knowledge calls.
type ModelGenerator struct {
	cm      einomodel.BaseChatModel
	timeout time.Duration
}

func NewModelGenerator(cm einomodel.BaseChatModel) *ModelGenerator {
	return &ModelGenerator{cm: cm, timeout: DefaultCallTimeout}
}

func (g *ModelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", errx.WrapModel(err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", errx.WrapModel(errors.New("empty model response"))
	}
	return out.Content, nil
}

var _ Generator = (*ModelGenerator)(nil)

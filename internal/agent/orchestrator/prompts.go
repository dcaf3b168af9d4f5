package orchestrator

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/mangaluru-mitra/server/internal/agent/model"
)

//go:embed template/narration_prompt.txt
var narrationPrompt string

//go:embed template/fallback_prompt.txt
var fallbackPrompt string

// renderGuidePrompt substitutes known tokens into a template and runs it
// through the Eino prompt component so prompt callbacks fire.
func renderGuidePrompt(ctx context.Context, template string, pairs ...string) (string, error) {
	content := strings.NewReplacer(pairs...).Replace(template)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("guide prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("guide prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}

// RenderNarrationPrompt builds the "narrate these facts conversationally"
// prompt for a record that carries discrete facts instead of a description.
func RenderNarrationPrompt(ctx context.Context, cfg model.GuidePromptConfig, topic string, facts []string) (string, error) {
	var b strings.Builder
	for _, f := range facts {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	return renderGuidePrompt(ctx, narrationPrompt,
		"{assistant_name}", cfg.AssistantName,
		"{city}", cfg.CityName,
		"{topic}", topic,
		"{facts}", b.String(),
	)
}

// RenderFallbackPrompt builds the general-knowledge prompt used when a lookup
// misses or the classifier flags an unknown query.
func RenderFallbackPrompt(ctx context.Context, cfg model.GuidePromptConfig, topic string) (string, error) {
	return renderGuidePrompt(ctx, fallbackPrompt,
		"{assistant_name}", cfg.AssistantName,
		"{city}", cfg.CityName,
		"{topic}", topic,
	)
}

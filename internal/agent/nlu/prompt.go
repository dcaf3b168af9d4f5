package nlu

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/mangaluru-mitra/server/internal/agent/model"
)

//go:embed template/classify_prompt.txt
var classifyPrompt string

// RenderClassifyPrompt renders the classification prompt via the Eino prompt
// component. Known tokens are substituted with a replacer so the JSON braces
// in the worked examples stay untouched; the messages-placeholder wrap makes
// the render emit prompt callbacks.
func RenderClassifyPrompt(ctx context.Context, cfg *model.GuidePromptConfig, userText string) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("guide prompt config is nil")
	}

	content := strings.NewReplacer(
		"{assistant_name}", cfg.AssistantName,
		"{city}", cfg.CityName,
		"{user_message}", userText,
	).Replace(classifyPrompt)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("classify prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("classify prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}

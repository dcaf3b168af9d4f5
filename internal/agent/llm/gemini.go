package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey           string
	BaseURL          string
	ClassifierConfig *model.ClassifierModelConfig
	NarrationConfig  *model.NarrationModelConfig
}

// ChatModels holds both the intent classifier and the narration chat models.
// Fields are the Eino chat model interface so tests can substitute doubles.
type ChatModels struct {
	Classifier          einomodel.BaseChatModel
	Narration           einomodel.BaseChatModel
	ClassifierModelName string
	NarrationModelName  string
}

// NewChatModels creates both chat models over one shared Gemini client.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	classifier, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ClassifierConfig.Model,
		Temperature: &config.ClassifierConfig.Temperature,
		MaxTokens:   &config.ClassifierConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	narration, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.NarrationConfig.Model,
		Temperature: &config.NarrationConfig.Temperature,
		MaxTokens:   &config.NarrationConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating narration model")
		return nil, fmt.Errorf("error creating narration model: %w", err)
	}

	return &ChatModels{
		Classifier:          classifier,
		Narration:           narration,
		ClassifierModelName: config.ClassifierConfig.Model,
		NarrationModelName:  config.NarrationConfig.Model,
	}, nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mangaluru-mitra/server/internal/agent/graph"
	"github.com/mangaluru-mitra/server/internal/agent/llm"
	"github.com/mangaluru-mitra/server/internal/agent/model"
	"github.com/mangaluru-mitra/server/internal/agent/repo"
	"github.com/mangaluru-mitra/server/internal/agent/session"
	"github.com/mangaluru-mitra/server/internal/agent/weather"
	"github.com/mangaluru-mitra/server/internal/core"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
	pkgredis "github.com/mangaluru-mitra/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the guide service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Guide configs
	Classifier   model.ClassifierModelConfig
	Narration    model.NarrationModelConfig
	Prompt       model.GuidePromptConfig
	Weather      model.WeatherConfig
	Conversation model.ConversationConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New(ctx)
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	fmt.Println("Connected to Redis successfully")

	// ====================================================
	// Seed the reference data on first run
	store := repo.NewRedisContentStore(rdb)
	if err := store.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed content store: %v", err)
	}

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	cms, err := llm.NewChatModels(ctx, llm.ChatModelConfig{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		ClassifierConfig: &envCfg.Classifier,
		NarrationConfig:  &envCfg.Narration,
	})
	if err != nil {
		log.Fatalf("Failed to create chat models: %v", err)
	}

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		ChatModels: cms,
		Store:      store,
		Favorites:  repo.NewRedisFavoriteRepository(rdb),
		Weather:    weather.NewClient(envCfg.Weather),
		Prompt:     envCfg.Prompt,
	})
	if err != nil {
		log.Fatalf("Failed to build turn graph: %v", err)
	}

	sess := session.New(runner,
		repo.NewRedisMessageRepository(rdb, ttl),
		repo.NewRedisFavoriteRepository(rdb),
		"demo-user-001",
	)
	if err := sess.Start(ctx); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	// The suggestion chips of the original UI, plus a lookup and small talk.
	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Specific food lookup",
			query:       "Tell me about Chicken Ghee Roast",
		},
		{
			description: "Upcoming events",
			query:       "Upcoming Events",
		},
		{
			description: "Food tour planning",
			query:       "Plan a food tour for me",
		},
		{
			description: "Tulu phrases",
			query:       "Teach me some Tulu",
		},
		{
			description: "Small talk",
			query:       "hi, how are you?",
		},
	}

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: %q\n", test.query)
		fmt.Println("Processing...")

		resp, err := sess.Send(ctx, test.query)
		if err != nil {
			log.Fatalf("Failed to send message for test %d: %v", i+1, err)
		}

		fmt.Printf("Response %d: %s\n", i+1, renderMessage(resp))
		fmt.Println("─────────────────────────────────────────────")

		// slight delay between tests for readability
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("All guide queries completed successfully!")
}

// renderMessage flattens a structured bot message for terminal output.
func renderMessage(m *model.Message) string {
	switch m.Type {
	case model.ResponseText:
		return m.Content
	case model.ResponseCard:
		s := fmt.Sprintf("[card] %s — %s", m.Card.Title, m.Card.Content)
		if m.Card.Weather != nil {
			s += fmt.Sprintf(" (now %d°C, %s)", m.Card.Weather.TemperatureC, m.Card.Weather.Description)
		}
		return s
	case model.ResponsePhraseList:
		return fmt.Sprintf("[phrases] %s (%d phrases)", m.Phrases.Title, len(m.Phrases.Phrases))
	case model.ResponseFoodTour:
		return fmt.Sprintf("[tour] %s (%d stops) %s", m.Tour.Title, len(m.Tour.Stops), m.Tour.MapURL)
	case model.ResponseEventList:
		return fmt.Sprintf("[events] %s (%d events)", m.Events.Title, len(m.Events.Events))
	case model.ResponseFavoriteList:
		return fmt.Sprintf("[favorites] %s (%d saved)", m.Favorites.Title, len(m.Favorites.Favorites))
	default:
		return m.Content
	}
}

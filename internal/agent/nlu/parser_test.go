package nlu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	errx "github.com/mangaluru-mitra/server/internal/core/error"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n{\"category\": \"FOOD_INFO\"}\n```",
			want: `{"category": "FOOD_INFO"}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"category\": \"FOOD_INFO\"}\n```",
			want: `{"category": "FOOD_INFO"}`,
		},
		{
			name: "no fence",
			in:   `{"category": "FOOD_INFO"}`,
			want: `{"category": "FOOD_INFO"}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```  ",
			want: "{}",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestParseIntentResponse(t *testing.T) {
	t.Run("valid response", func(t *testing.T) {
		intent, err := ParseIntentResponse(`{"category": "FOOD_INFO", "entity": "Neer Dosa"}`)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryFoodInfo, intent.Category)
		assert.Equal(t, "Neer Dosa", intent.Entity)
	})

	t.Run("fenced response", func(t *testing.T) {
		intent, err := ParseIntentResponse("```json\n{\"category\": \"TULU_PHRASES\", \"entity\": \"\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, model.CategoryTuluPhrases, intent.Category)
		assert.Empty(t, intent.Entity)
	})

	t.Run("lowercase category normalises", func(t *testing.T) {
		intent, err := ParseIntentResponse(`{"category": "events", "entity": ""}`)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryEvents, intent.Category)
	})

	t.Run("unknown category defaults to chitchat", func(t *testing.T) {
		intent, err := ParseIntentResponse(`{"category": "WEATHER_REPORT", "entity": "tomorrow"}`)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryChitchat, intent.Category)
		assert.Equal(t, "tomorrow", intent.Entity)
	})

	t.Run("entity is trimmed", func(t *testing.T) {
		intent, err := ParseIntentResponse(`{"category": "PLACE_INFO", "entity": "  Panambur Beach  "}`)
		require.NoError(t, err)
		assert.Equal(t, "Panambur Beach", intent.Entity)
	})

	t.Run("prose instead of json is a parse error", func(t *testing.T) {
		_, err := ParseIntentResponse("Sure! The category is FOOD_INFO.")
		require.Error(t, err)

		var ae *errx.AppError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, 422, ae.Status)
		assert.Equal(t, errx.IntentParseErrorMessage, ae.Message)
	})

	t.Run("missing category is a parse error", func(t *testing.T) {
		_, err := ParseIntentResponse(`{"entity": "something"}`)
		require.Error(t, err)
		assert.Equal(t, 422, errx.StatusOf(err))
	})

	t.Run("empty response is a parse error", func(t *testing.T) {
		_, err := ParseIntentResponse("")
		require.Error(t, err)
	})
}

func TestRenderClassifyPrompt(t *testing.T) {
	cfg := &model.GuidePromptConfig{CityName: "Mangaluru", AssistantName: "Mangaluru Mitra"}

	t.Run("substitutes tokens and embeds user text", func(t *testing.T) {
		out, err := RenderClassifyPrompt(context.Background(), cfg, "Tell me about Neer Dosa")
		require.NoError(t, err)
		assert.Contains(t, out, "Mangaluru Mitra")
		assert.Contains(t, out, "Tell me about Neer Dosa")
		assert.NotContains(t, out, "{user_message}")
		assert.NotContains(t, out, "{city}")
	})

	t.Run("worked examples keep their braces", func(t *testing.T) {
		out, err := RenderClassifyPrompt(context.Background(), cfg, "hi")
		require.NoError(t, err)
		assert.Contains(t, out, `"category"`)
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := RenderClassifyPrompt(context.Background(), nil, "hi")
		require.Error(t, err)
	})
}

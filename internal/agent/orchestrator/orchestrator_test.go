package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	"github.com/mangaluru-mitra/server/internal/agent/repo"
)

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type stubWeather struct {
	weather *model.Weather
	err     error
	calls   int
}

func (w *stubWeather) Current(_ context.Context, _, _ float64) (*model.Weather, error) {
	w.calls++
	if w.err != nil {
		return nil, w.err
	}
	return w.weather, nil
}

func testPromptConfig() model.GuidePromptConfig {
	return model.GuidePromptConfig{CityName: "Mangaluru", AssistantName: "Mangaluru Mitra"}
}

func newTestOrchestrator(gen *stubGenerator, wsvc *stubWeather) (*Orchestrator, *repo.MemoryFavoriteRepository) {
	favs := repo.NewMemoryFavoriteRepository()
	return New(repo.NewSeededMemoryContentStore(), favs, wsvc, gen, testPromptConfig()), favs
}

func TestRespondCityInfo(t *testing.T) {
	orch, _ := newTestOrchestrator(&stubGenerator{}, &stubWeather{})

	msg, err := orch.Respond(context.Background(), model.ClassifiedIntent{Category: model.CategoryCityInfo}, "")
	require.NoError(t, err)
	assert.Equal(t, model.ResponseText, msg.Type)
	assert.Equal(t, citySummary, msg.Content)
	assert.Equal(t, model.SenderBot, msg.Sender)
}

func TestRespondChitchat(t *testing.T) {
	gen := &stubGenerator{}
	orch, _ := newTestOrchestrator(gen, &stubWeather{})

	for i := 0; i < 10; i++ {
		msg, err := orch.Respond(context.Background(), model.ClassifiedIntent{Category: model.CategoryChitchat}, "")
		require.NoError(t, err)
		assert.Equal(t, model.ResponseText, msg.Type)
		assert.Contains(t, ChitchatPool, msg.Content)
	}
	assert.Zero(t, gen.calls, "chitchat must not touch the model")
}

func TestRespondFoodInfo(t *testing.T) {
	t.Run("known food yields a card with its origin note", func(t *testing.T) {
		gen := &stubGenerator{}
		orch, _ := newTestOrchestrator(gen, &stubWeather{})

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryFoodInfo, Entity: "Chicken Ghee Roast"}, "")
		require.NoError(t, err)
		require.Equal(t, model.ResponseCard, msg.Type)
		assert.Equal(t, "Chicken Ghee Roast", msg.Card.Title)
		assert.Contains(t, msg.Card.Content, "ghee")
		assert.Contains(t, msg.Card.OriginNote, "Shetty Lunch Home")
		assert.Zero(t, gen.calls, "a ready description needs no narration")
	})

	t.Run("facts-only record is narrated", func(t *testing.T) {
		gen := &stubGenerator{reply: "A crispy delight loved across the coast."}
		store := &repo.MemoryContentStore{
			Foods: []model.Food{{
				Name:  "Kori Rotti",
				Type:  "Lunch/Dinner",
				Facts: []string{"crisp rice wafers", "served with chicken curry"},
			}},
		}
		orch := New(store, repo.NewMemoryFavoriteRepository(), &stubWeather{}, gen, testPromptConfig())

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryFoodInfo, Entity: "Kori Rotti"}, "")
		require.NoError(t, err)
		require.Equal(t, model.ResponseCard, msg.Type)
		assert.Equal(t, "A crispy delight loved across the coast.", msg.Card.Content)
		assert.Contains(t, gen.lastPrompt, "crisp rice wafers")
	})

	t.Run("narration failure degrades the card content", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("model down")}
		store := &repo.MemoryContentStore{
			Foods: []model.Food{{Name: "Kori Rotti", Facts: []string{"crisp rice wafers"}}},
		}
		orch := New(store, repo.NewMemoryFavoriteRepository(), &stubWeather{}, gen, testPromptConfig())

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryFoodInfo, Entity: "Kori Rotti"}, "")
		require.NoError(t, err, "narration failure must not abort the turn")
		require.Equal(t, model.ResponseCard, msg.Type)
		assert.Equal(t, degradedReply, msg.Card.Content)
	})

	t.Run("unknown food falls through to general knowledge", func(t *testing.T) {
		gen := &stubGenerator{reply: "Pizza is not a Mangalorean dish, but here is what I know."}
		orch, _ := newTestOrchestrator(gen, &stubWeather{})

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryFoodInfo, Entity: "Pizza"}, "")
		require.NoError(t, err)
		assert.Equal(t, model.ResponseText, msg.Type)
		assert.Equal(t, gen.reply, msg.Content)
		assert.Contains(t, gen.lastPrompt, "Pizza")
	})
}

func TestRespondPlaceInfo(t *testing.T) {
	t.Run("located place gets live weather", func(t *testing.T) {
		wsvc := &stubWeather{weather: &model.Weather{TemperatureC: 29, Description: "scattered clouds"}}
		orch, _ := newTestOrchestrator(&stubGenerator{}, wsvc)

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryPlaceInfo, Entity: "Panambur Beach"}, "")
		require.NoError(t, err)
		require.Equal(t, model.ResponseCard, msg.Type)
		require.NotNil(t, msg.Card.Weather)
		assert.Equal(t, 29, msg.Card.Weather.TemperatureC)
		assert.Equal(t, 1, wsvc.calls)
	})

	t.Run("place without coordinates skips the weather call", func(t *testing.T) {
		wsvc := &stubWeather{weather: &model.Weather{TemperatureC: 29}}
		orch, _ := newTestOrchestrator(&stubGenerator{}, wsvc)

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryPlaceInfo, Entity: "Kadri Manjunatha Temple"}, "")
		require.NoError(t, err)
		require.Equal(t, model.ResponseCard, msg.Type)
		assert.Nil(t, msg.Card.Weather)
		assert.Zero(t, wsvc.calls)
	})

	t.Run("weather failure still yields the card", func(t *testing.T) {
		wsvc := &stubWeather{err: errors.New("upstream timeout")}
		orch, _ := newTestOrchestrator(&stubGenerator{}, wsvc)

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryPlaceInfo, Entity: "Panambur Beach"}, "")
		require.NoError(t, err)
		require.Equal(t, model.ResponseCard, msg.Type)
		assert.Equal(t, "Panambur Beach", msg.Card.Title)
		assert.Nil(t, msg.Card.Weather)
	})
}

func TestRespondTuluPhrases(t *testing.T) {
	orch, _ := newTestOrchestrator(&stubGenerator{}, &stubWeather{})

	msg, err := orch.Respond(context.Background(), model.ClassifiedIntent{Category: model.CategoryTuluPhrases}, "")
	require.NoError(t, err)
	require.Equal(t, model.ResponsePhraseList, msg.Type)
	require.Len(t, msg.Phrases.Phrases, 4)
	assert.Equal(t, "Encha Ullar?", msg.Phrases.Phrases[0].Tulu)
}

func TestRespondEvents(t *testing.T) {
	orch, _ := newTestOrchestrator(&stubGenerator{}, &stubWeather{})

	msg, err := orch.Respond(context.Background(), model.ClassifiedIntent{Category: model.CategoryEvents}, "")
	require.NoError(t, err)
	require.Equal(t, model.ResponseEventList, msg.Type)
	assert.Equal(t, "Upcoming Events in Mangaluru", msg.Events.Title)
	require.Len(t, msg.Events.Events, 2)
	assert.Equal(t, "Mangaluru Kambala", msg.Events.Events[0].Name)
}

func TestRespondFavorites(t *testing.T) {
	t.Run("anonymous user is asked to sign in", func(t *testing.T) {
		orch, _ := newTestOrchestrator(&stubGenerator{}, &stubWeather{})

		msg, err := orch.Respond(context.Background(), model.ClassifiedIntent{Category: model.CategoryFavorites}, "")
		require.NoError(t, err)
		assert.Equal(t, model.ResponseText, msg.Type)
		assert.Equal(t, signInPrompt, msg.Content)
	})

	t.Run("signed-in user sees saved snapshots", func(t *testing.T) {
		orch, favs := newTestOrchestrator(&stubGenerator{}, &stubWeather{})
		_, err := favs.Save(context.Background(), "user-1", "Neer Dosa", "A thin rice crepe.")
		require.NoError(t, err)

		msg, err := orch.Respond(context.Background(), model.ClassifiedIntent{Category: model.CategoryFavorites}, "user-1")
		require.NoError(t, err)
		require.Equal(t, model.ResponseFavoriteList, msg.Type)
		require.Len(t, msg.Favorites.Favorites, 1)
		assert.Equal(t, "Neer Dosa", msg.Favorites.Favorites[0].Title)
	})
}

func TestRespondUnknownQuery(t *testing.T) {
	t.Run("answers from general knowledge", func(t *testing.T) {
		gen := &stubGenerator{reply: "That's outside my notes, but generally speaking..."}
		orch, _ := newTestOrchestrator(gen, &stubWeather{})

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryUnknown, Entity: "parking rules"}, "")
		require.NoError(t, err)
		assert.Equal(t, model.ResponseText, msg.Type)
		assert.Equal(t, gen.reply, msg.Content)
	})

	t.Run("degrades when generation fails", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("model down")}
		orch, _ := newTestOrchestrator(gen, &stubWeather{})

		msg, err := orch.Respond(context.Background(),
			model.ClassifiedIntent{Category: model.CategoryUnknown, Entity: "parking rules"}, "")
		require.NoError(t, err)
		assert.Equal(t, degradedReply, msg.Content)
	})
}

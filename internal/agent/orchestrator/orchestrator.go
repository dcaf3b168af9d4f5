package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/mangaluru-mitra/server/internal/agent/llm"
	"github.com/mangaluru-mitra/server/internal/agent/model"
	"github.com/mangaluru-mitra/server/internal/agent/weather"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

const citySummary = "Mangaluru (also called Mangalore) is a vibrant port city on the Arabian Sea coast of Karnataka, India, and the heart of the Tulu Nadu region. It is famous for its golden beaches, ancient temples and churches, and a legendary coastal cuisine built around coconut, seafood, and fiery roasted spices. Ask me about a dish, a place, upcoming events, or some Tulu phrases!"

// degradedReply stands in when a generation call fails on a path that must
// not abort the turn.
const degradedReply = "I'm having a little trouble finding the right words right now. Please ask me again in a moment!"

const tourApology = "I don't have enough location data to create a tour yet!"

const signInPrompt = "Please sign in to see your saved favorites. Once you're signed in, you can save any card I show you!"

// ChitchatPool holds the fixed small-talk replies. Selection is random;
// callers may only rely on membership, not on which one comes back.
var ChitchatPool = []string{
	"I'm doing great, thank you! Ready to explore Mangaluru?",
	"Namaskara! I'm here to help you discover the best of Mangaluru. What's on your mind?",
	"I'm a bot, so I'm always doing well! What can I tell you about the beautiful city of Mangaluru?",
}

// Orchestrator turns a classified intent into exactly one structured bot
// message. All collaborators are injected so tests can substitute doubles.
type Orchestrator struct {
	store     model.ContentStore
	favorites model.FavoriteRepository
	weather   weather.Service
	gen       llm.Generator
	prompt    model.GuidePromptConfig
}

func New(store model.ContentStore, favorites model.FavoriteRepository, weatherSvc weather.Service, gen llm.Generator, promptCfg model.GuidePromptConfig) *Orchestrator {
	return &Orchestrator{
		store:     store,
		favorites: favorites,
		weather:   weatherSvc,
		gen:       gen,
		prompt:    promptCfg,
	}
}

// Respond dispatches on the intent category. Category matching is exact;
// every failure past classification degrades to a narrower response rather
// than aborting, except store errors, which the caller reports as the turn's
// single bot message.
func (o *Orchestrator) Respond(ctx context.Context, intent model.ClassifiedIntent, userID string) (*model.Message, error) {
	logx.Debug().
		Str("category", string(intent.Category)).
		Str("entity", intent.Entity).
		Msg("dispatching intent")

	switch intent.Category {
	case model.CategoryCityInfo:
		return model.NewTextMessage(citySummary), nil
	case model.CategoryFoodInfo:
		return o.foodCard(ctx, intent.Entity)
	case model.CategoryPlaceInfo:
		return o.placeCard(ctx, intent.Entity)
	case model.CategoryTuluPhrases:
		return o.phraseList(ctx)
	case model.CategoryFoodTour:
		return o.foodTour(ctx)
	case model.CategoryEvents:
		return o.eventList(ctx)
	case model.CategoryFavorites:
		return o.favoriteList(ctx, userID)
	case model.CategoryUnknown:
		// Same merged path as a lookup miss; see the fallback note below.
		return o.generalKnowledge(ctx, intent.Entity), nil
	case model.CategoryChitchat:
		return o.Chitchat(), nil
	default:
		// ParseCategory already folds unknown values into CHITCHAT; this arm
		// keeps the switch total for hand-built intents.
		return o.Chitchat(), nil
	}
}

// Chitchat picks one reply from the fixed pool.
func (o *Orchestrator) Chitchat() *model.Message {
	return model.NewTextMessage(ChitchatPool[rand.IntN(len(ChitchatPool))])
}

func (o *Orchestrator) foodCard(ctx context.Context, entity string) (*model.Message, error) {
	f, err := o.store.FindFood(ctx, entity)
	if errors.Is(err, model.ErrNotFound) {
		return o.generalKnowledge(ctx, entity), nil
	}
	if err != nil {
		return nil, err
	}

	return model.NewCardMessage(model.Card{
		Title:      f.Name,
		Content:    o.describe(ctx, f.Name, f.Description, f.Facts),
		OriginNote: f.OriginNote,
	}), nil
}

func (o *Orchestrator) placeCard(ctx context.Context, entity string) (*model.Message, error) {
	p, err := o.store.FindPlace(ctx, entity)
	if errors.Is(err, model.ErrNotFound) {
		return o.generalKnowledge(ctx, entity), nil
	}
	if err != nil {
		return nil, err
	}

	card := model.Card{
		Title:      p.Name,
		Content:    o.describe(ctx, p.Name, p.Description, p.Facts),
		OriginNote: p.VisitNote,
	}
	if p.Coordinates != nil {
		if w, werr := o.weather.Current(ctx, p.Coordinates.Lat, p.Coordinates.Lng); werr != nil {
			logx.Warn().Err(werr).Str("place", p.Name).Msg("weather unavailable, returning card without it")
		} else {
			card.Weather = w
		}
	}
	return model.NewCardMessage(card), nil
}

// describe returns the record's ready description, or narrates its discrete
// facts when no description exists. Narration failure degrades to a fixed
// sentence; it never fails the turn.
func (o *Orchestrator) describe(ctx context.Context, topic, description string, facts []string) string {
	if description != "" || len(facts) == 0 {
		return description
	}

	prompt, err := RenderNarrationPrompt(ctx, o.prompt, topic, facts)
	if err != nil {
		logx.Warn().Err(err).Str("topic", topic).Msg("narration prompt render failed")
		return degradedReply
	}
	text, err := o.gen.Generate(ctx, prompt)
	if err != nil {
		logx.Warn().Err(err).Str("topic", topic).Msg("narration call failed, degrading")
		return degradedReply
	}
	return strings.TrimSpace(text)
}

// generalKnowledge serves both the lookup-miss path and UNKNOWN_QUERY through
// one merged code path, matching the upstream behavior. It never reports
// not-found to the user, and a failed generation degrades to a fixed sentence.
func (o *Orchestrator) generalKnowledge(ctx context.Context, entity string) *model.Message {
	prompt, err := RenderFallbackPrompt(ctx, o.prompt, entity)
	if err != nil {
		logx.Warn().Err(err).Str("entity", entity).Msg("fallback prompt render failed")
		return model.NewTextMessage(degradedReply)
	}
	text, err := o.gen.Generate(ctx, prompt)
	if err != nil {
		logx.Warn().Err(err).Str("entity", entity).Msg("general-knowledge call failed, degrading")
		return model.NewTextMessage(degradedReply)
	}
	return model.NewTextMessage(strings.TrimSpace(text))
}

func (o *Orchestrator) phraseList(ctx context.Context) (*model.Message, error) {
	phrases, err := o.store.ListPhrases(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewPhraseListMessage("Here are a few useful Tulu phrases:", phrases), nil
}

func (o *Orchestrator) eventList(ctx context.Context) (*model.Message, error) {
	events, err := o.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Upcoming Events in %s", o.prompt.CityName)
	return model.NewEventListMessage(title, events), nil
}

func (o *Orchestrator) favoriteList(ctx context.Context, userID string) (*model.Message, error) {
	if userID == "" {
		return model.NewTextMessage(signInPrompt), nil
	}
	favs, err := o.favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.NewFavoriteListMessage("Your Saved Favorites", favs), nil
}

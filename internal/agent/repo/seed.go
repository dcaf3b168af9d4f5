package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	errx "github.com/mangaluru-mitra/server/internal/core/error"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

var seedPlaces = []model.Place{
	{
		ID:          "panambur_beach",
		Name:        "Panambur Beach",
		Category:    "Beach",
		Description: "One of Mangaluru's most popular beaches, known for its clean shores, beautiful sunsets, and various events.",
		VisitNote:   "Evenings (4 PM - 7 PM) are ideal. The best months are from September to February.",
		Coordinates: &model.Coordinates{Lat: 12.9723, Lng: 74.8055},
	},
	{
		ID:          "kadri_temple",
		Name:        "Kadri Manjunatha Temple",
		Category:    "Temple",
		Description: "An ancient temple dedicated to Lord Shiva, known for its bronze statues and the ponds at the rear.",
		VisitNote:   "Early mornings or during evening prayers for a serene experience.",
	},
	{
		ID:          "st_aloysius_chapel",
		Name:        "St. Aloysius Chapel",
		Category:    "Historical Site",
		Description: "Famous for its magnificent interior paintings that cover nearly all of the walls and ceilings, created by the Italian Jesuit Antonio Moscheni in 1900. It is often compared to the Sistine Chapel in Rome.",
		VisitNote:   "Open on weekdays from 9:30 AM to 1:00 PM and 2:00 PM to 4:30 PM. The art is best viewed in daylight.",
	},
}

var seedFoods = []model.Food{
	{
		ID:          "ghee_roast",
		Name:        "Chicken Ghee Roast",
		Type:        "Lunch/Dinner",
		Description: "A fiery, tangy, and rich chicken dish cooked with roasted spices and a generous amount of clarified butter (ghee).",
		OriginNote:  "The iconic dish was invented at Shetty Lunch Home in Kundapura. It is a hallmark of Bunt cuisine.",
		Restaurant:  "Maharaja Restaurant",
		Coordinates: &model.Coordinates{Lat: 12.8739, Lng: 74.8425},
	},
	{
		ID:          "neer_dosa",
		Name:        "Neer Dosa",
		Type:        "Breakfast",
		Description: "A thin, soft, and delicate rice crepe. The name literally translates to 'water dosa' in Tulu. It is typically served with chutney or chicken/fish curry.",
		OriginNote:  "A staple breakfast item from the Tulu Nadu region, cherished for its simplicity and taste.",
		Restaurant:  "Hotel Ayodhya",
		Coordinates: &model.Coordinates{Lat: 12.8705, Lng: 74.8398},
	},
	{
		ID:          "golibaje",
		Name:        "Golibaje (Mangalore Buns)",
		Type:        "Snack",
		Description: "A popular tea-time snack in Mangaluru, these are soft, fluffy, slightly sweet and savory fritters made from a fermented all-purpose flour batter.",
		OriginNote:  "A classic snack found in Udupi-Mangaluru region restaurants, perfect with a cup of filter coffee.",
		Restaurant:  "Taj Mahal Cafe",
		Coordinates: &model.Coordinates{Lat: 12.8679, Lng: 74.8416},
	},
	{
		ID:          "ideal_ice_cream",
		Name:        "Ideal Ice Cream",
		Type:        "Dessert",
		Description: "A legendary ice cream brand from Mangaluru, famous for its unique flavors like 'Gadbad' and 'Pabba's Special'.",
		OriginNote:  "Started by Mr. Prabhakar Kamath in 1975, Ideal's has become an iconic part of Mangalorean culture and a must-visit for anyone in the city.",
		Restaurant:  "Pabba's Ideal Cafe",
		Coordinates: &model.Coordinates{Lat: 12.8829, Lng: 74.8415},
	},
}

var seedPhrases = []model.Phrase{
	{ID: "how_are_you", English: "How are you?", Tulu: "Encha Ullar?", Pronunciation: "En-chha Ool-lar"},
	{ID: "thank_you", English: "Thank you", Tulu: "Solmel", Pronunciation: "Sol-mel"},
	{ID: "whats_your_name", English: "What is your name?", Tulu: "Eerena Pudar Enchina?", Pronunciation: "Ee-ray-nah Poo-dahr En-chee-nah"},
	{ID: "welcome", English: "Welcome", Tulu: "Mokeda Magaleg", Pronunciation: "Mo-kay-dah Mah-gah-leg"},
}

var seedEvents = []model.Event{
	{
		ID:          "mangaluru_kambala",
		Name:        "Mangaluru Kambala",
		Description: "The famous annual buffalo race, a spectacular traditional sport of the Tulu Nadu region.",
		Location:    "Various locations around Mangaluru",
		Date:        "November - March (Seasonal)",
	},
	{
		ID:          "car_festival",
		Name:        "Mangaladevi Car Festival",
		Description: "A vibrant and important annual festival (Jathra) of the Mangaladevi Temple.",
		Location:    "Mangaladevi Temple, Bolar",
		Date:        "During Navaratri (October/November)",
	},
}

// Seed writes the reference dataset once. A non-empty places collection means
// an earlier run already seeded the store, so the whole step is skipped.
func (s *RedisContentStore) Seed(ctx context.Context) error {
	n, err := s.rdb.LLen(ctx, keyPlaces).Result()
	if err != nil {
		return errx.WrapRedis(err)
	}
	if n > 0 {
		logx.Debug().Msg("content store already seeded, skipping")
		return nil
	}

	if err := pushCollection(ctx, s, keyPlaces, seedPlaces); err != nil {
		return err
	}
	if err := pushCollection(ctx, s, keyFoods, seedFoods); err != nil {
		return err
	}
	if err := pushCollection(ctx, s, keyPhrases, seedPhrases); err != nil {
		return err
	}
	if err := pushCollection(ctx, s, keyEvents, seedEvents); err != nil {
		return err
	}

	logx.Info().
		Int("places", len(seedPlaces)).
		Int("foods", len(seedFoods)).
		Int("phrases", len(seedPhrases)).
		Int("events", len(seedEvents)).
		Msg("content store seeded")
	return nil
}

func pushCollection[T any](ctx context.Context, s *RedisContentStore, key string, docs []T) error {
	vals := make([]any, 0, len(docs))
	for i := range docs {
		b, err := json.Marshal(docs[i])
		if err != nil {
			return fmt.Errorf("marshal %s document at index %d: %w", key, i, err)
		}
		vals = append(vals, b)
	}
	if err := s.rdb.RPush(ctx, key, vals...).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to seed collection")
		return errx.WrapRedis(err)
	}
	return nil
}

package model

import "strings"

// Category is the classified purpose of a user message. The set is closed;
// anything the classifier returns outside it normalises to CategoryChitchat.
type Category string

const (
	CategoryCityInfo    Category = "CITY_INFO"
	CategoryPlaceInfo   Category = "PLACE_INFO"
	CategoryFoodInfo    Category = "FOOD_INFO"
	CategoryEvents      Category = "EVENTS"
	CategoryFoodTour    Category = "CREATE_FOOD_TOUR"
	CategoryFavorites   Category = "FAVORITES"
	CategoryTuluPhrases Category = "TULU_PHRASES"
	CategoryChitchat    Category = "CHITCHAT"
	CategoryUnknown     Category = "UNKNOWN_QUERY"
)

// ParseCategory maps raw classifier output to a known category. Unknown
// values fall back to CategoryChitchat; that is the safe-default policy for
// off-taxonomy answers, not a parse error.
func ParseCategory(v string) Category {
	switch c := Category(strings.ToUpper(strings.TrimSpace(v))); c {
	case CategoryCityInfo, CategoryPlaceInfo, CategoryFoodInfo, CategoryEvents,
		CategoryFoodTour, CategoryFavorites, CategoryTuluPhrases,
		CategoryChitchat, CategoryUnknown:
		return c
	default:
		return CategoryChitchat
	}
}

// ClassifiedIntent is the structured result of one classification call.
// Entity is an opaque lookup key used verbatim by the responder; it is never
// validated here. Transient, never persisted.
type ClassifiedIntent struct {
	Category Category `json:"category"`
	Entity   string   `json:"entity"`
}

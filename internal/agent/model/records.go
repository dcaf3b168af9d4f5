package model

import "time"

// Coordinates is a geographic point. Records either carry a full pair or no
// coordinates at all; a nil *Coordinates means "no location data".
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is immutable reference data about a local sight, seeded once and
// never mutated by the responder.
type Place struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	Facts       []string     `json:"facts,omitempty"`
	VisitNote   string       `json:"best_time_to_visit,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Food is immutable reference data about a local dish. A record carries
// either a ready Description or discrete Facts that need narration.
type Food struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"` // meal slot, e.g. "Breakfast", "Snack"
	Description string       `json:"description,omitempty"`
	Facts       []string     `json:"facts,omitempty"`
	OriginNote  string       `json:"origin_story,omitempty"`
	Restaurant  string       `json:"restaurant_name,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Phrase is a Tulu language phrase with its English source and a
// pronunciation guide.
type Phrase struct {
	ID            string `json:"id"`
	English       string `json:"english"`
	Tulu          string `json:"tulu"`
	Pronunciation string `json:"pronunciation"`
}

// Event is immutable reference data about a city event or festival.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
}

// Favorite is a user-saved snapshot of a previously rendered card. It copies
// title and content at save time; later edits to the source record never
// propagate.
type Favorite struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	SavedAt time.Time `json:"saved_at"`
}

// Weather is a current-conditions snapshot attached to place cards.
type Weather struct {
	TemperatureC int    `json:"temperature_c"`
	Description  string `json:"description"`
}

package model

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ResponseType tags the shape carried by a Message. The set is closed; the
// responder dispatches over it exhaustively.
type ResponseType string

const (
	ResponseText         ResponseType = "text"
	ResponseCard         ResponseType = "card"
	ResponsePhraseList   ResponseType = "phrase_list"
	ResponseFoodTour     ResponseType = "food_tour"
	ResponseEventList    ResponseType = "event_list"
	ResponseFavoriteList ResponseType = "favorite_list"
)

// Card is a structured single-topic answer about a place or food, optionally
// carrying a live weather snapshot.
type Card struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	OriginNote string   `json:"origin_note,omitempty"`
	Weather    *Weather `json:"weather,omitempty"`
}

// PhraseList carries Tulu phrases.
type PhraseList struct {
	Title   string   `json:"title"`
	Phrases []Phrase `json:"phrases"`
}

// TourStop is one stop of a food tour.
type TourStop struct {
	Meal       string `json:"meal"`
	Name       string `json:"name"`
	Restaurant string `json:"restaurant"`
}

// FoodTour is an ordered set of food stops plus an externally openable map
// route URL.
type FoodTour struct {
	Title  string     `json:"title"`
	Stops  []TourStop `json:"stops"`
	MapURL string     `json:"map_url"`
}

// EventList carries city events.
type EventList struct {
	Title  string  `json:"title"`
	Events []Event `json:"events"`
}

// FavoriteList carries a user's saved favorites.
type FavoriteList struct {
	Title     string     `json:"title"`
	Favorites []Favorite `json:"favorites"`
}

// Message is one conversational turn entry. Exactly one variant field is
// populated, selected by Type; plain text lives in Content. Messages are
// append-only and ordered by CreatedAt.
type Message struct {
	Sender    Sender        `json:"sender"`
	Type      ResponseType  `json:"type"`
	Content   string        `json:"content,omitempty"`
	Card      *Card         `json:"card,omitempty"`
	Phrases   *PhraseList   `json:"phrases,omitempty"`
	Tour      *FoodTour     `json:"tour,omitempty"`
	Events    *EventList    `json:"events,omitempty"`
	Favorites *FavoriteList `json:"favorites,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewUserMessage builds a plain-text message from the user.
func NewUserMessage(text string) *Message {
	return &Message{Sender: SenderUser, Type: ResponseText, Content: text, CreatedAt: time.Now().UTC()}
}

// NewTextMessage builds a plain-text bot message.
func NewTextMessage(text string) *Message {
	return &Message{Sender: SenderBot, Type: ResponseText, Content: text, CreatedAt: time.Now().UTC()}
}

// NewCardMessage builds a card-shaped bot message.
func NewCardMessage(card Card) *Message {
	return &Message{Sender: SenderBot, Type: ResponseCard, Card: &card, CreatedAt: time.Now().UTC()}
}

// NewPhraseListMessage builds a phrase-list bot message.
func NewPhraseListMessage(title string, phrases []Phrase) *Message {
	return &Message{Sender: SenderBot, Type: ResponsePhraseList, Phrases: &PhraseList{Title: title, Phrases: phrases}, CreatedAt: time.Now().UTC()}
}

// NewFoodTourMessage builds a food-tour bot message.
func NewFoodTourMessage(tour FoodTour) *Message {
	return &Message{Sender: SenderBot, Type: ResponseFoodTour, Tour: &tour, CreatedAt: time.Now().UTC()}
}

// NewEventListMessage builds an event-list bot message.
func NewEventListMessage(title string, events []Event) *Message {
	return &Message{Sender: SenderBot, Type: ResponseEventList, Events: &EventList{Title: title, Events: events}, CreatedAt: time.Now().UTC()}
}

// NewFavoriteListMessage builds a favorite-list bot message.
func NewFavoriteListMessage(title string, favorites []Favorite) *Message {
	return &Message{Sender: SenderBot, Type: ResponseFavoriteList, Favorites: &FavoriteList{Title: title, Favorites: favorites}, CreatedAt: time.Now().UTC()}
}

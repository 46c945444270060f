package models

import "time"

// WatchedEntry: colección `watched`, una entrada por (userId, showId).
// Rating es la nota personal [1,5], independiente del rating público del
// show; nil significa "sin nota".
type WatchedEntry struct {
	UserID    string    `json:"userId" bson:"userId"`
	ShowID    int       `json:"showId" bson:"showId"`
	WatchedAt time.Time `json:"watchedAt" bson:"watchedAt"`
	Rating    *int      `json:"rating,omitempty" bson:"rating,omitempty"`
}

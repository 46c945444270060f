package models

import "time"

// WatchlistEntry: colección `watchlist`, una entrada por (userId, showId).
// La presencia es binaria; add es upsert así que no hay duplicados posibles.
type WatchlistEntry struct {
	UserID  string    `json:"userId" bson:"userId"`
	ShowID  int       `json:"showId" bson:"showId"`
	AddedAt time.Time `json:"addedAt" bson:"addedAt"`
}

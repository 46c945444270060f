package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShowDoc es el documento de la colección `shows`. El id público es el
// TMDBID; el _id de Mongo queda como detalle interno. Un show se crea la
// primera vez que alguien lo califica, reseña o agrega a una lista, y no se
// borra nunca.
type ShowDoc struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	TMDBID       int                `json:"showId" bson:"tmdbId"`
	Title        string             `json:"title" bson:"title"`
	Overview     string             `json:"overview,omitempty" bson:"overview,omitempty"`
	PosterPath   string             `json:"posterPath,omitempty" bson:"posterPath,omitempty"`
	BackdropPath string             `json:"backdropPath,omitempty" bson:"backdropPath,omitempty"`
	FirstAirDate string             `json:"firstAirDate,omitempty" bson:"firstAirDate,omitempty"`

	// Ratings: userId (hex) -> estrellas [0,5]. AverageRating siempre es el
	// promedio de los values de Ratings (0 si está vacío).
	Ratings       map[string]float64 `json:"-" bson:"ratings"`
	AverageRating float64            `json:"averageRating" bson:"averageRating"`
	ReviewCount   int                `json:"reviewCount" bson:"reviewCount"`

	// Version para escrituras condicionales (read-modify-write sin lost updates).
	Version int64 `json:"-" bson:"version"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RatingCount devuelve cuántos usuarios distintos calificaron.
func (s *ShowDoc) RatingCount() int { return len(s.Ratings) }

// RecomputeAverage deja AverageRating consistente con Ratings.
func (s *ShowDoc) RecomputeAverage() {
	if len(s.Ratings) == 0 {
		s.AverageRating = 0
		return
	}
	var total float64
	for _, v := range s.Ratings {
		total += v
	}
	s.AverageRating = total / float64(len(s.Ratings))
}

// ShowRating es lo que devolvemos por API para el agregado de un show.
type ShowRating struct {
	ShowID  int     `json:"showId"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

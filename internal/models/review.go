package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewDoc: colección `reviews`. A lo sumo una reseña viva por
// (showId, userId); eso lo garantiza un índice único en el repositorio.
type ReviewDoc struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ShowID  int                `json:"showId" bson:"showId"`
	UserID  string             `json:"userId" bson:"userId"`
	Content string             `json:"content" bson:"content"`
	// Rating duplicado de Show.ratings[userId] para mostrar la reseña sin
	// otro fetch; la fuente de verdad del agregado es el show.
	Rating    float64    `json:"rating" bson:"rating"`
	LikedBy   []string   `json:"-" bson:"likedBy"`
	LikeCount int        `json:"likeCount" bson:"likeCount"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	EditedAt  *time.Time `json:"editedAt,omitempty" bson:"editedAt,omitempty"`
}

// LikedByUser reporta si userID ya dio like.
func (r *ReviewDoc) LikedByUser(userID string) bool {
	for _, id := range r.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// LikeState es la respuesta del toggle de like.
type LikeState struct {
	ReviewID      string `json:"reviewId"`
	LikeCount     int    `json:"likeCount"`
	LikedByCaller bool   `json:"likedByCaller"`
}

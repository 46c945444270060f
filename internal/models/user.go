package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDoc: colección `users`. El id público (y el `sub` del JWT) es el hex
// del ObjectID.
type UserDoc struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

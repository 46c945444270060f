package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShowListDoc: colección `lists`. ShowIDs mantiene orden de inserción y el
// repositorio usa $addToSet/$pull, así que nunca hay duplicados.
type ShowListDoc struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID     string             `json:"ownerId" bson:"ownerId"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsPrivate   bool               `json:"isPrivate" bson:"isPrivate"`
	ShowIDs     []int              `json:"showIds" bson:"showIds"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Contains reporta si showID ya está en la lista.
func (l *ShowListDoc) Contains(showID int) bool {
	for _, id := range l.ShowIDs {
		if id == showID {
			return true
		}
	}
	return false
}

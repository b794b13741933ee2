package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record holds the server-assigned part of every stored document.
type Record struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at"`
}

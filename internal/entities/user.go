package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in the users collection
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	PasswordHash string             `bson:"password" json:"-"` // Don't expose password hash in JSON
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

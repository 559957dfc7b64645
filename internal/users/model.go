package users

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pmarkov/notes-api/internal/notes"
)

// User is a persisted account record. The bcrypt hash is what gets
// serialized; a raw password never reaches storage or a response.
type User struct {
	ID           primitive.ObjectID   `bson:"_id" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Name         string               `bson:"name,omitempty" json:"name,omitempty"`
	PasswordHash string               `bson:"passwordHash" json:"passwordHash"`
	Notes        []primitive.ObjectID `bson:"notes" json:"notes"`
}

// UserView is a User with its note references expanded to full documents,
// the shape the list endpoint returns.
type UserView struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"passwordHash"`
	Notes        []notes.Note       `bson:"notes" json:"notes"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=5"`
}

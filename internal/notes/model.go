package notes

import "go.mongodb.org/mongo-driver/bson/primitive"

// Note is a persisted note record owned by exactly one user.
type Note struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Content   string             `bson:"content" json:"content"`
	Important bool               `bson:"important" json:"important"`
	User      primitive.ObjectID `bson:"user" json:"user"`
}

type createNoteRequest struct {
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// updateNoteRequest uses pointers so an omitted field can be told apart
// from an explicit zero value: a nil Content is rejected while an empty
// string is accepted, and a nil Important leaves the stored flag alone.
type updateNoteRequest struct {
	Content   *string `json:"content"`
	Important *bool   `json:"important"`
}

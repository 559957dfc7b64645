package users

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pmarkov/notes-api/internal/notes"
)

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(coll *mongo.Collection) *Repository {
	return &Repository{coll: coll}
}

// lookupRow carries the original reference array alongside the joined
// documents; $lookup does not promise to keep the array's order.
type lookupRow struct {
	UserView `bson:",inline"`
	NoteRefs []primitive.ObjectID `bson:"noteRefs"`
}

// List returns every user with note references expanded to full note
// documents via $lookup, in the order the references were appended.
func (r *Repository) List(ctx context.Context) ([]UserView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "noteRefs", Value: "$notes"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "notes"},
			{Key: "localField", Value: "notes"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "notes"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]lookupRow, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]UserView, 0, len(rows))
	for _, row := range rows {
		row.UserView.Notes = orderByRefs(row.NoteRefs, row.UserView.Notes)
		out = append(out, row.UserView)
	}
	return out, nil
}

// orderByRefs sorts joined note documents into the reference array's
// order. References without a matching document are skipped.
func orderByRefs(refs []primitive.ObjectID, docs []notes.Note) []notes.Note {
	byID := make(map[primitive.ObjectID]notes.Note, len(docs))
	for _, n := range docs {
		byID[n.ID] = n
	}

	ordered := make([]notes.Note, 0, len(docs))
	for _, ref := range refs {
		if n, ok := byID[ref]; ok {
			ordered = append(ordered, n)
		}
	}
	return ordered
}

// FindByUsername returns the matching user, or nil when none exists.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Insert(ctx context.Context, u *User) error {
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

// OwnerExists reports whether a user with the given id exists.
func (r *Repository) OwnerExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AppendNote adds a note reference to the owner's note list.
func (r *Repository) AppendNote(ctx context.Context, owner, note primitive.ObjectID) error {
	_, err := r.coll.UpdateByID(ctx, owner, bson.M{"$push": bson.M{"notes": note}})
	return err
}

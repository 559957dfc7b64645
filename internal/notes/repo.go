package notes

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists notes. Every lookup and mutation is scoped by both
// the note id and the owner id, so a note belonging to someone else is
// indistinguishable from a missing one.
type Repository struct {
	coll *mongo.Collection
}

func NewRepository(coll *mongo.Collection) *Repository {
	return &Repository{coll: coll}
}

func (r *Repository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]Note, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user": owner})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]Note, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns the owned note, or nil when no such note exists.
func (r *Repository) FindByID(ctx context.Context, id, owner primitive.ObjectID) (*Note, error) {
	var n Note
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user": owner}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *Repository) Insert(ctx context.Context, n *Note) error {
	_, err := r.coll.InsertOne(ctx, n)
	return err
}

// Update sets content, and important when supplied, on the owned note and
// returns the updated document, or nil when no such note exists.
func (r *Repository) Update(ctx context.Context, id, owner primitive.ObjectID, content string, important *bool) (*Note, error) {
	set := bson.M{"content": content}
	if important != nil {
		set["important"] = *important
	}

	var n Note
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "user": owner},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete removes the owned note and reports whether anything was deleted.
func (r *Repository) Delete(ctx context.Context, id, owner primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

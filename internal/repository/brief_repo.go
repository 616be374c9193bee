package repository

import (
	"context"
	"mediaplanner/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BriefRepo handles MongoDB operations for client briefs
type BriefRepo interface {
	Create(ctx context.Context, brief *model.Brief) error
	List(ctx context.Context, limit int) ([]*model.Brief, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type briefRepo struct {
	collection *mongo.Collection
}

// NewBriefRepo creates a new brief repository
func NewBriefRepo(db *mongo.Database) BriefRepo {
	return &briefRepo{
		collection: db.Collection("briefs"),
	}
}

func (r *briefRepo) Create(ctx context.Context, brief *model.Brief) error {
	_, err := r.collection.InsertOne(ctx, brief)
	return err
}

// List returns the newest briefs first
func (r *briefRepo) List(ctx context.Context, limit int) ([]*model.Brief, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	briefs := []*model.Brief{}
	if err := cursor.All(ctx, &briefs); err != nil {
		return nil, err
	}
	return briefs, nil
}

// Delete reports whether a brief was removed
func (r *briefRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

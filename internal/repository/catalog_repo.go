package repository

import (
	"context"
	"mediaplanner/internal/catalog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogDocID = "planner"

type catalogRecord struct {
	ID               string    `bson:"_id"`
	UpdatedAt        time.Time `bson:"updatedAt"`
	catalog.Document `bson:",inline"`
}

// CatalogRepo persists the question and rule catalog as a single document
type CatalogRepo interface {
	Save(ctx context.Context, doc catalog.Document) error
	Load(ctx context.Context) (*catalog.Document, error)
}

type catalogRepo struct {
	collection *mongo.Collection
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *mongo.Database) CatalogRepo {
	return &catalogRepo{
		collection: db.Collection("catalog"),
	}
}

func (r *catalogRepo) Save(ctx context.Context, doc catalog.Document) error {
	rec := catalogRecord{ID: catalogDocID, UpdatedAt: time.Now().UTC(), Document: doc}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": catalogDocID}, rec, opts)
	return err
}

func (r *catalogRepo) Load(ctx context.Context) (*catalog.Document, error) {
	var rec catalogRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": catalogDocID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec.Document, nil
}

package mongodb

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinhthuw/back1/internal/catalog"
)

type bookDocument struct {
	ID       string  `bson:"_id"`
	Title    string  `bson:"title"`
	Price    float64 `bson:"price"`
	Trending bool    `bson:"trending"`
}

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("books")}
}

func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]catalog.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]catalog.Book, len(docs))
	for i, doc := range docs {
		books[i] = catalog.Book{
			ID:       doc.ID,
			Title:    doc.Title,
			Price:    decimal.NewFromFloat(doc.Price),
			Trending: doc.Trending,
		}
	}
	return books, nil
}

func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func (r *Repository) CountTrending(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"trending": true})
	if err != nil {
		return 0, fmt.Errorf("count trending books: %w", err)
	}
	return count, nil
}

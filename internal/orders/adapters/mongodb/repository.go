package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
)

// Repository persists orders in a MongoDB collection, matching the document
// shape of the original store.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository binds the repository to the orders collection and ensures the
// owner-email index exists.
func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	collection := db.Collection("orders")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create orders index: %w", err)
	}

	return &Repository{collection: collection}, nil
}

func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	_, err := r.collection.InsertOne(ctx, toOrderDocument(order))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var doc orderDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return toOrderEntity(&doc), nil
}

func (r *Repository) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders by email: %w", err)
	}
	return decodeOrders(ctx, cursor)
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.PageSize))
		opts.SetLimit(int64(filter.PageSize))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	return decodeOrders(ctx, cursor)
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
}

func (r *Repository) UpdatePayment(ctx context.Context, id string, update ports.PaymentUpdate) (*domain.Order, error) {
	set := bson.M{
		"payment_status": string(update.PaymentStatus),
		"updated_at":     time.Now().UTC(),
	}
	if update.PaymentDetails != nil {
		set["payment_details"] = toDetailsDocument(update.PaymentDetails)
	}
	return r.findOneAndUpdate(ctx, id, set)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) findOneAndUpdate(ctx context.Context, id string, set bson.M) (*domain.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return toOrderEntity(&doc), nil
}

func decodeOrders(ctx context.Context, cursor *mongo.Cursor) ([]domain.Order, error) {
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]domain.Order, len(docs))
	for i := range docs {
		orders[i] = *toOrderEntity(&docs[i])
	}
	return orders, nil
}

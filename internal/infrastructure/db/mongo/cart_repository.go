package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const cartsCollection = "carts"

// CartRepository provisions the empty cart attached to every new user. The
// cart contents themselves are managed elsewhere; registration only needs
// the id.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

func (r *CartRepository) ProvisionCart(ctx context.Context) (string, error) {
	res, err := r.coll.InsertOne(ctx, bson.M{
		"products":   bson.A{},
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("provision cart: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("provision cart: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

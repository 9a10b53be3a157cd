package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
	"github.com/tiendavale/ecommerce-api/internal/core/ports"
)

const productsCollection = "products"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Thumbnail   string             `bson:"thumbnail"`
	Code        string             `bson:"code"`
	Status      bool               `bson:"status"`
	Stock       int                `bson:"stock"`
	Category    string             `bson:"category"`
	Owner       string             `bson:"owner"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mp *mongoProduct) toDomain() domain.Product {
	return domain.Product{
		ID:          mp.ID.Hex(),
		Title:       mp.Title,
		Description: mp.Description,
		Price:       mp.Price,
		Thumbnail:   mp.Thumbnail,
		Code:        mp.Code,
		Status:      mp.Status,
		Stock:       mp.Stock,
		Category:    mp.Category,
		Owner:       mp.Owner,
		CreatedAt:   mp.CreatedAt,
		UpdatedAt:   mp.UpdatedAt,
	}
}

func listFilter(filter ports.ProductFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	return query
}

// Find returns one page of products plus the total match count for the
// filter, so the caller can derive page boundaries.
func (r *ProductRepository) Find(ctx context.Context, filter ports.ProductFilter, opts ports.ListOptions) ([]domain.Product, int64, error) {
	query := listFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	findOpts := options.Find().
		SetSkip(int64(opts.Page-1) * int64(opts.Limit)).
		SetLimit(int64(opts.Limit))
	if opts.PriceSort != ports.SortNone {
		findOpts.SetSort(bson.D{{Key: "price", Value: opts.PriceSort}})
	}

	cursor, err := r.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProduct
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].toDomain()
	}
	return products, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	product := mp.toDomain()
	return &product, nil
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product by code: %w", err)
	}
	product := mp.toDomain()
	return &product, nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	doc := mongoProduct{
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Thumbnail:   product.Thumbnail,
		Code:        product.Code,
		Status:      product.Status,
		Stock:       product.Stock,
		Category:    product.Category,
		Owner:       product.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateCode
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *product
	created.CreatedAt = now
	created.UpdatedAt = now
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func patchDocument(patch ports.ProductPatch) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Thumbnail != nil {
		set["thumbnail"] = *patch.Thumbnail
	}
	if patch.Code != nil {
		set["code"] = *patch.Code
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	return set
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch ports.ProductPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": patchDocument(patch)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// EnsureIndexes enforces code uniqueness at the store. A concurrent insert
// that passes the service's pre-check still fails here and is reported as a
// duplicate code.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	})
	return err
}

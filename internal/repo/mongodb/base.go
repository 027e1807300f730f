package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// keep the baseRepo implementation in sync with IRepository interface
var _ IRepository[models.Wishlist] = (*baseRepo[models.Wishlist])(nil)

// IEntity is a document keyed by a caller-chosen string _id.
type IEntity interface {
	CollectionName() string
	GetID() string
}

type IRepository[E IEntity] interface {
	FindByID(ctx context.Context, id string) (*E, error)
	FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*E, error)
	ReplaceByID(ctx context.Context, entity E) error
	DeleteByID(ctx context.Context, id string) error
}

type baseRepo[E IEntity] struct {
	coll *mongo.Collection
}

func newBaseRepo[E IEntity](dbc *mongo.Database) baseRepo[E] {
	var entity E
	return baseRepo[E]{
		coll: dbc.Collection(entity.CollectionName()),
	}
}

func (r *baseRepo[E]) FindByID(ctx context.Context, id string) (*E, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *baseRepo[E]) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*E, error) {
	var entity E
	err := r.coll.FindOne(ctx, filter, opts...).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one: %w", err)
	}
	return &entity, nil
}

// ReplaceByID writes the whole document, inserting it when absent.
func (r *baseRepo[E]) ReplaceByID(ctx context.Context, entity E) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": entity.GetID()}, entity, opts); err != nil {
		return fmt.Errorf("replace one: %w", err)
	}
	return nil
}

func (r *baseRepo[E]) DeleteByID(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete one: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

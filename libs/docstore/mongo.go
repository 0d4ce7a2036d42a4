package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCollection[T any] struct {
	coll *mongo.Collection
}

// NewMongo returns a collection backed by database.<schema.Name> and ensures
// the unique indexes of schema exist.
func NewMongo[T any](ctx context.Context, database *mongo.Database, schema Schema) (Collection[T], error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	coll := database.Collection(schema.Name)
	if len(schema.Unique) > 0 {
		models := make([]mongo.IndexModel, 0, len(schema.Unique))
		for _, idx := range schema.Unique {
			keys := bson.D{}
			for _, f := range idx.Fields {
				keys = append(keys, bson.E{Key: f, Value: 1})
			}
			opts := options.Index().SetUnique(true)
			if idx.Name != "" {
				opts.SetName(idx.Name)
			}
			models = append(models, mongo.IndexModel{Keys: keys, Options: opts})
		}
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return nil, fmt.Errorf("create %s indexes: %w", schema.Name, err)
		}
	}
	return &mongoCollection[T]{coll: coll}, nil
}

func (c *mongoCollection[T]) Insert(ctx context.Context, _ string, doc T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return mapMongoError(err)
}

func (c *mongoCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	return doc, mapMongoError(err)
}

func (c *mongoCollection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}
	cur, err := c.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mongoCollection[T]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	if len(patch) == 0 {
		return c.Get(ctx, id)
	}
	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	var doc T
	err := c.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	return doc, mapMongoError(err)
}

func (c *mongoCollection[T]) Delete(ctx context.Context, id string) (T, error) {
	var doc T
	err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	return doc, mapMongoError(err)
}

func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}

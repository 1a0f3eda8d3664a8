package mongo

import (
	"context"
	"errors"
	"fmt"

	"pets-mvc/internal/domain/pets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection mapea una colección de Mongo a pets.Collection[T].
// T tiene que declarar tags bson (ID => _id, name => name).
type Collection[T pets.Document] struct {
	coll *mongo.Collection
}

func NewCollection[T pets.Document](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

// EnsureIndexes crea el índice único sobre name (idempotente).
func (c *Collection[T]) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return fmt.Errorf("%s: ensure indexes: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *Collection[T]) Create(ctx context.Context, doc T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w: %q", c.coll.Name(), pets.ErrDuplicateName, doc.DocName())
		}
		return fmt.Errorf("%s: insert: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	cur, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", c.coll.Name(), err)
	}

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *Collection[T]) FindByName(ctx context.Context, name string) (T, error) {
	var out T
	err := c.coll.FindOne(ctx, bson.M{"name": name}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return out, pets.ErrNotFound
		}
		return out, fmt.Errorf("%s: find one: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": doc.DocID()}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w: %q", c.coll.Name(), pets.ErrDuplicateName, doc.DocName())
		}
		return fmt.Errorf("%s: replace: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

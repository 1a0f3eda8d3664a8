package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"pets-mvc/internal/domain/pets"

	goredis "github.com/redis/go-redis/v9"
)

// Collection guarda la colección en un hash: field = name, value = documento JSON.
// HSETNX da la unicidad de name.
type Collection[T pets.Document] struct {
	rdb *goredis.Client
	key string
}

func NewCollection[T pets.Document](rdb *goredis.Client, key string) *Collection[T] {
	return &Collection[T]{rdb: rdb, key: key}
}

func (c *Collection[T]) Create(ctx context.Context, doc T) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", c.key, err)
	}

	ok, err := c.rdb.HSetNX(ctx, c.key, doc.DocName(), payload).Result()
	if err != nil {
		return fmt.Errorf("%s: hsetnx: %w", c.key, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w: %q", c.key, pets.ErrDuplicateName, doc.DocName())
	}
	return nil
}

// FindAll ordena por createdDate; el hash no tiene orden propio.
func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	vals, err := c.rdb.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: hgetall: %w", c.key, err)
	}

	out := make([]T, 0, len(vals))
	for _, raw := range vals {
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", c.key, err)
		}
		out = append(out, doc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DocCreated().Before(out[j].DocCreated())
	})
	return out, nil
}

func (c *Collection[T]) FindByName(ctx context.Context, name string) (T, error) {
	var doc T
	raw, err := c.rdb.HGet(ctx, c.key, name).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return doc, pets.ErrNotFound
		}
		return doc, fmt.Errorf("%s: hget: %w", c.key, err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("%s: decode: %w", c.key, err)
	}
	return doc, nil
}

// Update: name es la clave del hash, así que el documento tiene que existir
// con el mismo id. El check y el write van en una transacción WATCH.
func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", c.key, err)
	}

	err = c.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := c.findIn(ctx, tx, doc.DocName())
		if err != nil {
			return err
		}
		if current.DocID() != doc.DocID() {
			return pets.ErrNotFound
		}
		_, err = tx.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.HSet(ctx, c.key, doc.DocName(), payload)
			return nil
		})
		return err
	}, c.key)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%s: update: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) findIn(ctx context.Context, tx *goredis.Tx, name string) (T, error) {
	var doc T
	raw, err := tx.HGet(ctx, c.key, name).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return doc, pets.ErrNotFound
		}
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

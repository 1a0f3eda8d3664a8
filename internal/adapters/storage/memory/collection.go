package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pets-mvc/internal/domain/pets"
)

// Collection guarda documentos en memoria, en orden de inserción.
// Sirve para dev y tests; no sobrevive reinicios.
type Collection[T pets.Document] struct {
	name string

	mu     sync.RWMutex
	byID   map[string]T
	byName map[string]string // name -> id
	order  []string
}

func NewCollection[T pets.Document](name string) *Collection[T] {
	return &Collection[T]{
		name:   name,
		byID:   make(map[string]T),
		byName: make(map[string]string),
	}
}

func NewCats() *Collection[pets.Cat] { return NewCollection[pets.Cat]("cats") }
func NewDogs() *Collection[pets.Dog] { return NewCollection[pets.Dog]("dogs") }

func (c *Collection[T]) Create(ctx context.Context, doc T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := doc.DocID()
	if strings.TrimSpace(id) == "" {
		return errors.New(c.name + ": id required")
	}
	if _, exists := c.byID[id]; exists {
		return fmt.Errorf("%s: id %q already exists", c.name, id)
	}
	if _, exists := c.byName[doc.DocName()]; exists {
		return fmt.Errorf("%s: %w: %q", c.name, pets.ErrDuplicateName, doc.DocName())
	}

	c.byID[id] = doc
	c.byName[doc.DocName()] = id
	c.order = append(c.order, id)
	return nil
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (c *Collection[T]) FindByName(ctx context.Context, name string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.byName[name]
	if !ok {
		var zero T
		return zero, pets.ErrNotFound
	}
	return c.byID[id], nil
}

func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, exists := c.byID[doc.DocID()]
	if !exists {
		return pets.ErrNotFound
	}
	if old.DocName() != doc.DocName() {
		if _, taken := c.byName[doc.DocName()]; taken {
			return fmt.Errorf("%s: %w: %q", c.name, pets.ErrDuplicateName, doc.DocName())
		}
		delete(c.byName, old.DocName())
		c.byName[doc.DocName()] = doc.DocID()
	}
	c.byID[doc.DocID()] = doc
	return nil
}

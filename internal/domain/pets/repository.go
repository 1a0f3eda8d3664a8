package pets

import "context"

// Collection es el gateway de persistencia de una colección de documentos.
// Los adapters traducen sus errores nativos a ErrDuplicateName / ErrNotFound.
type Collection[T Document] interface {
	Create(ctx context.Context, doc T) error
	FindAll(ctx context.Context) ([]T, error)
	FindByName(ctx context.Context, name string) (T, error)
	Update(ctx context.Context, doc T) error
}

type CatCollection = Collection[Cat]
type DogCollection = Collection[Dog]

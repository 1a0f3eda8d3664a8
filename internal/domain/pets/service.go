package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLastNotCat = errors.New("last added record is not a cat")
)

type Service struct {
	cats  CatCollection
	dogs  DogCollection
	last  *RecordCache
	now   func() time.Time
	newID func() string
}

func NewService(cats CatCollection, dogs DogCollection) *Service {
	return &Service{
		cats:  cats,
		dogs:  dogs,
		last:  NewRecordCache(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Last devuelve el registro del cache (o el placeholder).
func (s *Service) Last() Record {
	return s.last.Get()
}

func (s *Service) CurrentName() string {
	return s.last.Get().Name()
}

type CreateCatInput struct {
	FirstName string
	LastName  string
	Beds      int
}

// CreateCat persiste un gato con name "firstname lastname" y lo deja en el cache.
// Si falla, el cache queda igual.
func (s *Service) CreateCat(ctx context.Context, in CreateCatInput) (Cat, error) {
	name := strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName)
	c := NewCat(s.newID(), name, in.Beds, s.now())
	if err := c.Validate(); err != nil {
		return Cat{}, err
	}
	if err := s.cats.Create(ctx, c); err != nil {
		return Cat{}, err
	}
	s.last.Set(CatRecord(c))
	return c, nil
}

type CreateDogInput struct {
	Name  string
	Breed string
	Age   int
}

func (s *Service) CreateDog(ctx context.Context, in CreateDogInput) (Dog, error) {
	d := NewDog(s.newID(), in.Name, in.Breed, in.Age, s.now())
	if err := d.Validate(); err != nil {
		return Dog{}, err
	}
	if err := s.dogs.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	s.last.Set(DogRecord(d))
	return d, nil
}

func (s *Service) ListCats(ctx context.Context) ([]Cat, error) {
	return s.cats.FindAll(ctx)
}

func (s *Service) ListDogs(ctx context.Context) ([]Dog, error) {
	return s.dogs.FindAll(ctx)
}

func (s *Service) FindCat(ctx context.Context, name string) (Cat, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Cat{}, ErrInvalidInput
	}
	return s.cats.FindByName(ctx, name)
}

// FindDog busca por name y, si lo encuentra, le suma 1 a age, lo persiste y lo deja en el cache.
func (s *Service) FindDog(ctx context.Context, name string) (Dog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Dog{}, ErrInvalidInput
	}
	d, err := s.dogs.FindByName(ctx, name)
	if err != nil {
		return Dog{}, err
	}

	d.Age++
	if err := s.dogs.Update(ctx, d); err != nil {
		return Dog{}, fmt.Errorf("age dog %q: %w", d.Name, err)
	}
	s.last.Set(DogRecord(d))
	return d, nil
}

// UpdateLast suma 1 a bedsOwned del gato en cache.
// El placeholder nunca se persistió, así que la primera vez se crea.
func (s *Service) UpdateLast(ctx context.Context) (Cat, error) {
	rec := s.last.Get()
	if rec.Kind != KindCat {
		return Cat{}, ErrLastNotCat
	}

	c := rec.Cat
	c.BedsOwned++

	if c.ID == "" {
		c.ID = s.newID()
		c.CreatedDate = s.now()
		if err := s.cats.Create(ctx, c); err != nil {
			return Cat{}, err
		}
	} else if err := s.cats.Update(ctx, c); err != nil {
		return Cat{}, err
	}

	s.last.Set(CatRecord(c))
	return c, nil
}

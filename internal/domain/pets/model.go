package pets

import (
	"strings"
	"time"
)

// Kind identifica la colección de un registro.
// @Enum cat, dog
type Kind string

const (
	KindCat Kind = "cat"
	KindDog Kind = "dog"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCat:
		return KindCat, true
	case KindDog:
		return KindDog, true
	default:
		return "", false
	}
}

// Document es lo mínimo que un adapter de storage necesita de un registro.
type Document interface {
	DocID() string
	DocName() string
	DocCreated() time.Time
}

// Cat: name único dentro de la colección de gatos.
type Cat struct {
	ID          string    `json:"id" bson:"_id" dynamodbav:"id"`
	Name        string    `json:"name" bson:"name" dynamodbav:"name"`
	BedsOwned   int       `json:"bedsOwned" bson:"bedsOwned" dynamodbav:"bedsOwned"`
	CreatedDate time.Time `json:"createdDate" bson:"createdDate" dynamodbav:"createdDate"`
}

func (c Cat) DocID() string         { return c.ID }
func (c Cat) DocName() string       { return c.Name }
func (c Cat) DocCreated() time.Time { return c.CreatedDate }

// Dog: name único dentro de la colección de perros; breed no.
type Dog struct {
	ID          string    `json:"id" bson:"_id" dynamodbav:"id"`
	Name        string    `json:"name" bson:"name" dynamodbav:"name"`
	Breed       string    `json:"breed" bson:"breed" dynamodbav:"breed"`
	Age         int       `json:"age" bson:"age" dynamodbav:"age"`
	CreatedDate time.Time `json:"createdDate" bson:"createdDate" dynamodbav:"createdDate"`
}

func (d Dog) DocID() string         { return d.ID }
func (d Dog) DocName() string       { return d.Name }
func (d Dog) DocCreated() time.Time { return d.CreatedDate }

// NewCat normaliza los campos de texto y fija createdDate.
func NewCat(id, name string, beds int, now time.Time) Cat {
	return Cat{
		ID:          id,
		Name:        strings.TrimSpace(name),
		BedsOwned:   beds,
		CreatedDate: now,
	}
}

func NewDog(id, name, breed string, age int, now time.Time) Dog {
	return Dog{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Breed:       strings.TrimSpace(breed),
		Age:         age,
		CreatedDate: now,
	}
}

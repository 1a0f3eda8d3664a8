package pets

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("name already exists")
)

// Rule es la restricción de esquema violada.
type Rule string

const (
	RuleRequired Rule = "required"
	RuleType     Rule = "type"
	RuleMin      Rule = "min"
)

type Violation struct {
	Field string
	Rule  Rule
}

// ValidationError enumera todas las restricciones violadas de un registro.
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Kind       Kind
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Rule))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func (e *ValidationError) add(field string, rule Rule) {
	e.Violations = append(e.Violations, Violation{Field: field, Rule: rule})
}

func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

func (c Cat) Validate() error {
	verr := &ValidationError{Kind: KindCat}
	if strings.TrimSpace(c.Name) == "" {
		verr.add("name", RuleRequired)
	}
	if c.BedsOwned < 0 {
		verr.add("bedsOwned", RuleMin)
	}
	return verr.orNil()
}

func (d Dog) Validate() error {
	verr := &ValidationError{Kind: KindDog}
	if strings.TrimSpace(d.Name) == "" {
		verr.add("name", RuleRequired)
	}
	if strings.TrimSpace(d.Breed) == "" {
		verr.add("breed", RuleRequired)
	}
	if d.Age < 0 {
		verr.add("age", RuleMin)
	}
	return verr.orNil()
}

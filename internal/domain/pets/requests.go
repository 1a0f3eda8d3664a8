package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

var (
	errCatFieldsRequired = errors.New("firstname,lastname and beds are all required")
	errDogFieldsRequired = errors.New("name,breed and age are all required")
	errKindRequired      = errors.New("kind (cat or dog), beds or age is required")
	errUnknownKind       = errors.New("kind must be cat or dog")
	errInvalidBody       = errors.New("invalid body")
)

// setRecordRequest es la variante etiquetada de POST /setName.
// Kind sale del campo "kind"; si no viene, se deduce una sola vez aquí:
// beds => cat, age => dog.
type setRecordRequest struct {
	Kind Kind
	Cat  CreateCatInput
	Dog  CreateDogInput
}

func decodeSetRecord(w http.ResponseWriter, r *http.Request) (setRecordRequest, error) {
	f, err := readFields(w, r)
	if err != nil {
		return setRecordRequest{}, err
	}

	kind, err := resolveKind(f)
	if err != nil {
		return setRecordRequest{}, err
	}

	switch kind {
	case KindCat:
		if f.empty("firstname") || f.empty("lastname") || f.empty("beds") {
			return setRecordRequest{}, errCatFieldsRequired
		}
		beds, err := f.intField(KindCat, "beds")
		if err != nil {
			return setRecordRequest{}, err
		}
		return setRecordRequest{Kind: KindCat, Cat: CreateCatInput{
			FirstName: f.get("firstname"),
			LastName:  f.get("lastname"),
			Beds:      beds,
		}}, nil
	default:
		if f.empty("name") || f.empty("breed") || f.empty("age") {
			return setRecordRequest{}, errDogFieldsRequired
		}
		age, err := f.intField(KindDog, "age")
		if err != nil {
			return setRecordRequest{}, err
		}
		return setRecordRequest{Kind: KindDog, Dog: CreateDogInput{
			Name:  f.get("name"),
			Breed: f.get("breed"),
			Age:   age,
		}}, nil
	}
}

func resolveKind(f fields) (Kind, error) {
	if !f.empty("kind") {
		k, ok := ParseKind(f.get("kind"))
		if !ok {
			return "", errUnknownKind
		}
		return k, nil
	}
	if f.has("beds") {
		return KindCat, nil
	}
	if f.has("age") {
		return KindDog, nil
	}
	return "", errKindRequired
}

// fields son los valores del body ya normalizados a string.
type fields map[string]string

func (f fields) has(k string) bool {
	_, ok := f[k]
	return ok
}

func (f fields) get(k string) string { return strings.TrimSpace(f[k]) }

func (f fields) empty(k string) bool { return f.get(k) == "" }

func (f fields) intField(kind Kind, k string) (int, error) {
	n, err := strconv.Atoi(f.get(k))
	if err != nil {
		return 0, &ValidationError{Kind: kind, Violations: []Violation{{Field: k, Rule: RuleType}}}
	}
	return n, nil
}

// readFields acepta application/json y formularios urlencoded.
func readFields(w http.ResponseWriter, r *http.Request) (fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, errInvalidBody
		}
		out := make(fields, len(raw))
		for k, v := range raw {
			if v == nil {
				continue
			}
			out[k] = stringify(v)
		}
		return out, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errInvalidBody
	}
	out := make(fields, len(r.PostForm))
	for k := range r.PostForm {
		out[k] = r.PostForm.Get(k)
	}
	return out, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

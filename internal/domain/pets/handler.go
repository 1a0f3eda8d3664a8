package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"pets-mvc/internal/platform/logger"
	"pets-mvc/internal/ports/views"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, v views.Renderer, log logger.Logger) {
	// Páginas
	r.Get("/", indexHandler(svc, v))
	r.Get("/page1", catsPageHandler(svc, v, log))
	r.Get("/page2", staticPageHandler(v, "page2"))
	r.Get("/page3", staticPageHandler(v, "page3"))
	r.Get("/page4", dogsPageHandler(svc, v, log))

	// JSON
	r.Get("/getName", getNameHandler(svc))
	r.Get("/findCat", findCatHandler(svc, log))
	r.Get("/findDog", findDogHandler(svc, log))
	r.Post("/setName", setNameHandler(svc, log))
	r.Post("/updateLast", updateLastHandler(svc, log))
}

type nameResponse struct {
	Name string `json:"name"`
}

type catResponse struct {
	Name string `json:"name"`
	Beds int    `json:"beds"`
}

type dogResponse struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type indexPage struct {
	Name string
}

type catsPage struct {
	Cats []Cat
}

type dogsPage struct {
	Dogs []Dog
}

type notFoundPage struct {
	Page string
}

func indexHandler(svc *Service, v views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		render(w, v, http.StatusOK, "index", indexPage{Name: svc.CurrentName()})
	}
}

func catsPageHandler(svc *Service, v views.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCats(r.Context())
		if err != nil {
			writeError(w, log, "list cats", err)
			return
		}
		render(w, v, http.StatusOK, "page1", catsPage{Cats: items})
	}
}

func dogsPageHandler(svc *Service, v views.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDogs(r.Context())
		if err != nil {
			writeError(w, log, "list dogs", err)
			return
		}
		render(w, v, http.StatusOK, "page4", dogsPage{Dogs: items})
	}
}

func staticPageHandler(v views.Renderer, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		render(w, v, http.StatusOK, name, nil)
	}
}

// NotFoundHandler es el catch-all: 404 + vista notFound con el path pedido.
func NotFoundHandler(v views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, v, http.StatusNotFound, "notFound", notFoundPage{Page: r.URL.RequestURI()})
	}
}

// getNameHandler godoc
// @Summary Nombre del último registro
// @Description Devuelve el name del último gato/perro creado o tocado (o "unknown" al arrancar).
// @Tags records
// @Produce json
// @Success 200 {object} nameResponse
// @Router /getName [get]
func getNameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, nameResponse{Name: svc.CurrentName()})
	}
}

// setNameHandler godoc
// @Summary Crear gato o perro
// @Description kind=cat requiere firstname, lastname, beds. kind=dog requiere name, breed, age. Sin kind: beds => cat, age => dog.
// @Tags records
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} catResponse
// @Success 201 {object} dogResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "name duplicado"
// @Failure 500 {object} errorResponse
// @Router /setName [post]
func setNameHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeSetRecord(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		switch req.Kind {
		case KindCat:
			c, err := svc.CreateCat(r.Context(), req.Cat)
			if err != nil {
				writeError(w, log, "create cat", err)
				return
			}
			writeJSON(w, http.StatusCreated, toCatResponse(c))
		case KindDog:
			d, err := svc.CreateDog(r.Context(), req.Dog)
			if err != nil {
				writeError(w, log, "create dog", err)
				return
			}
			writeJSON(w, http.StatusCreated, toDogResponse(d))
		}
	}
}

// findCatHandler godoc
// @Summary Buscar gato por name
// @Description Sin name o sin resultados responde 200 con {error}.
// @Tags records
// @Produce json
// @Param name query string true "name exacto"
// @Success 200 {object} catResponse
// @Failure 500 {object} errorResponse
// @Router /findCat [get]
func findCatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.FindCat(r.Context(), r.URL.Query().Get("name"))
		switch {
		case errors.Is(err, ErrInvalidInput):
			writeJSON(w, http.StatusOK, errorResponse{Error: "Name is required to perform a search"})
		case errors.Is(err, ErrNotFound):
			writeJSON(w, http.StatusOK, errorResponse{Error: "No cats found"})
		case err != nil:
			writeError(w, log, "find cat", err)
		default:
			writeJSON(w, http.StatusOK, toCatResponse(c))
		}
	}
}

// findDogHandler godoc
// @Summary Buscar perro por name (y sumarle un año)
// @Description Si lo encuentra, age se incrementa en 1 y se persiste antes de responder.
// @Tags records
// @Produce json
// @Param name query string true "name exacto"
// @Success 200 {object} dogResponse
// @Failure 500 {object} errorResponse
// @Router /findDog [get]
func findDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.FindDog(r.Context(), r.URL.Query().Get("name"))
		switch {
		case errors.Is(err, ErrInvalidInput):
			writeJSON(w, http.StatusOK, errorResponse{Error: "Name is required to perform a search"})
		case errors.Is(err, ErrNotFound):
			writeJSON(w, http.StatusOK, errorResponse{Error: "No dogs found"})
		case err != nil:
			writeError(w, log, "find dog", err)
		default:
			writeJSON(w, http.StatusOK, toDogResponse(d))
		}
	}
}

// updateLastHandler godoc
// @Summary Sumar una cama al último gato
// @Tags records
// @Produce json
// @Success 200 {object} catResponse
// @Failure 400 {object} errorResponse "el último registro es un perro"
// @Failure 500 {object} errorResponse
// @Router /updateLast [post]
func updateLastHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.UpdateLast(r.Context())
		if err != nil {
			writeError(w, log, "update last", err)
			return
		}
		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

func toCatResponse(c Cat) catResponse {
	return catResponse{Name: c.Name, Beds: c.BedsOwned}
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{Name: d.Name, Breed: d.Breed, Age: d.Age}
}

// errorStatus: validación 400, duplicado 409, el resto 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrLastNotCat):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error(op+" failed", map[string]any{"err": err})
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// Render a buffer primero: si el template falla no queda una respuesta a medias.
func render(w http.ResponseWriter, v views.Renderer, status int, name string, data any) {
	var buf bytes.Buffer
	if err := v.Render(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

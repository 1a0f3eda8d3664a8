package router

import (
	"encoding/json"
	"net/http"

	_ "pets-mvc/docs"
	"pets-mvc/internal/adapters/storage"
	"pets-mvc/internal/adapters/views/htmlviews"
	"pets-mvc/internal/domain/pets"
	"pets-mvc/internal/middleware"
	"pets-mvc/internal/platform/logger"
	"pets-mvc/internal/ports/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, colecciones in-memory.
	Backend *storage.Backend

	Views  views.Renderer // nil => htmlviews embebidas
	Logger logger.Logger  // nil => Nop
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func NewRouter(opts Options) http.Handler {
	backend := opts.Backend
	if backend == nil {
		backend = storage.Memory()
	}
	v := opts.Views
	if v == nil {
		v = htmlviews.MustNew()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.GetHead)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Store: backend.Driver})
	})

	// Catch-all: cualquier GET sin ruta (o con ruta solo POST) cae en la vista notFound.
	notFound := pets.NotFoundHandler(v)

	r.Get("/assets/*", htmlviews.StaticHandler("/assets", notFound).ServeHTTP)
	r.Get("/favicon.ico", htmlviews.FaviconHandler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	svc := pets.NewService(backend.Cats, backend.Dogs)
	pets.RegisterRoutes(r, svc, v, log)

	r.NotFound(notFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet || req.Method == http.MethodHead {
			notFound(w, req)
			return
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

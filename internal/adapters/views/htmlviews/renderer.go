package htmlviews

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Pages son las vistas que puede pedir un handler.
var Pages = []string{"index", "page1", "page2", "page3", "page4", "notFound"}

// Renderer implementa views.Renderer con html/template.
// Cada página se parsea junto con base.html por separado para que los
// bloques "title"/"content" no choquen entre páginas.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		t, err := template.New(name).ParseFS(templatesFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNew es para tests y para main, donde un template roto es un bug de build.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// StaticHandler sirve los assets embebidos bajo prefix (p.ej. /assets).
// Un asset inexistente o un directorio caen en notFound, igual que cualquier otra ruta.
func StaticHandler(prefix string, notFound http.Handler) http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("embedded static fs: " + err.Error())
	}
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	fileServer := http.StripPrefix(prefix, http.FileServer(http.FS(sub)))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		name := strings.TrimPrefix(strings.TrimPrefix(req.URL.Path, prefix), "/")
		if info, err := fs.Stat(sub, name); name == "" || err != nil || info.IsDir() {
			notFound.ServeHTTP(w, req)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(w, req)
	})
}

// FaviconHandler sirve static/favicon.png.
func FaviconHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		b, err := staticFS.ReadFile("static/favicon.png")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(b)
	}
}

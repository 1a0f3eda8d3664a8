package views

import "io"

// Renderer dibuja una vista por nombre con los datos que le pasa el handler.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

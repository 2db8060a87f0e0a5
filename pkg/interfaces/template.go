package interfaces

import "io"

// TemplateRenderer renders the site page templates. The generator addresses
// templates by page kind ("home", "post", "blog_index") and receives the
// rendered HTML back as a string unless writers are supplied.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

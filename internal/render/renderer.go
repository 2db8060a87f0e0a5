// Package render provides the html/template backed implementation of
// interfaces.TemplateRenderer used by the site generator. Templates are
// discovered from a directory (or any fs.FS) and parsed once; custom filters
// and global context must be registered before the first render.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-portfolio/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var templateExtensions = []string{".html", ".tmpl"}

// Config controls template discovery.
type Config struct {
	// Dir is the template root on disk. Ignored when FS is set.
	Dir string
	// FS overrides Dir with an arbitrary filesystem (embed.FS, fstest.MapFS).
	FS fs.FS
}

// Renderer implements interfaces.TemplateRenderer over html/template.
type Renderer struct {
	fsys fs.FS

	mu      sync.Mutex
	tpl     *template.Template
	parsed  bool
	filters map[string]func(input any, param any) (any, error)
	globals map[string]any
	inline  []inlineTemplate
}

type inlineTemplate struct {
	name string
	body string
}

// New builds a renderer rooted at cfg.Dir or cfg.FS. A renderer with neither
// starts empty; templates can still be added with AddTemplate.
func New(cfg Config) (*Renderer, error) {
	fsys := cfg.FS
	if fsys == nil && strings.TrimSpace(cfg.Dir) != "" {
		info, err := os.Stat(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("render: inspect template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("render: template path %q is not a directory", cfg.Dir)
		}
		fsys = os.DirFS(cfg.Dir)
	}

	return &Renderer{
		fsys:    fsys,
		filters: make(map[string]func(any, any) (any, error)),
		globals: make(map[string]any),
	}, nil
}

// AddTemplate registers an inline template by name. Must be called before the
// first render; later calls fail once the template set is frozen.
func (r *Renderer) AddTemplate(name, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsed {
		return fmt.Errorf("render: template set already parsed, cannot add %q", name)
	}
	r.inline = append(r.inline, inlineTemplate{name: name, body: body})
	return nil
}

// RegisterFilter exposes fn to templates under name. The filter receives the
// piped input plus one optional parameter.
func (r *Renderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("render: filter name is required")
	}
	if fn == nil {
		return fmt.Errorf("render: filter %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsed {
		return fmt.Errorf("render: template set already parsed, cannot register filter %q", name)
	}
	r.filters[name] = fn
	return nil
}

// GlobalContext merges data into the values exposed to every template through
// the "global" helper. Accepts a map of values.
func (r *Renderer) GlobalContext(data any) error {
	values, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("render: global context expects map[string]any, got %T", data)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsed {
		return fmt.Errorf("render: template set already parsed, cannot set global context")
	}
	for key, value := range values {
		r.globals[key] = value
	}
	return nil
}

// Render executes the named template. Output goes to out when provided,
// otherwise the rendered string is returned.
func (r *Renderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template from the parsed set.
func (r *Renderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return "", err
	}
	if tpl.Lookup(name) == nil {
		return "", fmt.Errorf("render: template %q not found", name)
	}

	writer, buffer := pickWriter(out)
	if err := tpl.ExecuteTemplate(writer, name, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

// RenderString parses and executes a one-off template body.
func (r *Renderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Funcs(r.funcMap()).Parse(templateContent)
	if err != nil {
		return "", err
	}

	writer, buffer := pickWriter(out)
	if err := tpl.Execute(writer, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

func pickWriter(out []io.Writer) (io.Writer, *bytes.Buffer) {
	if len(out) > 0 && out[0] != nil {
		return out[0], nil
	}
	buffer := &bytes.Buffer{}
	return buffer, buffer
}

func (r *Renderer) ensureTemplates() (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsed {
		return r.tpl, nil
	}

	tpl := template.New("portfolio").Funcs(r.funcMap())

	if r.fsys != nil {
		files, err := discoverTemplates(r.fsys)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			data, err := fs.ReadFile(r.fsys, file)
			if err != nil {
				return nil, fmt.Errorf("render: read template %s: %w", file, err)
			}
			if _, err := tpl.New(templateName(file)).Parse(string(data)); err != nil {
				return nil, fmt.Errorf("render: parse template %s: %w", file, err)
			}
		}
	}

	for _, entry := range r.inline {
		if _, err := tpl.New(entry.name).Parse(entry.body); err != nil {
			return nil, fmt.Errorf("render: parse template %s: %w", entry.name, err)
		}
	}

	r.tpl = tpl
	r.parsed = true
	return tpl, nil
}

// templateName keys templates by their path without extension so "layouts/base"
// addresses layouts/base.html.
func templateName(file string) string {
	for _, ext := range templateExtensions {
		if strings.HasSuffix(file, ext) {
			return strings.TrimSuffix(file, ext)
		}
	}
	return file
}

func discoverTemplates(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		lower := strings.ToLower(path)
		for _, ext := range templateExtensions {
			if strings.HasSuffix(lower, ext) {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("render: discover templates: %w", err)
	}
	return files, nil
}

func (r *Renderer) funcMap() template.FuncMap {
	funcs := template.FuncMap{
		"safeHTML": func(value any) template.HTML { return toHTML(value) },
		"formatDate": func(value any, format ...string) (string, error) {
			parsed, err := coerceTime(value)
			if err != nil {
				return "", err
			}
			selected := content.DateFormatLong
			if len(format) > 0 && strings.TrimSpace(format[0]) != "" {
				selected = content.DateFormat(format[0])
			}
			if parsed.IsZero() {
				return "", nil
			}
			return content.FormatTime(parsed, content.DateFormatOptions{Format: selected})
		},
		"dateRange": content.FormatDateRange,
		"readingTime": func(body string) string {
			return content.ReadingTime(body)
		},
		"global": func(key string) any {
			return r.globals[key]
		},
	}
	for name, filter := range r.filters {
		fn := filter
		funcs[name] = func(input any, param ...any) (any, error) {
			var arg any
			if len(param) > 0 {
				arg = param[0]
			}
			return fn(input, arg)
		}
	}
	return funcs
}

func coerceTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, nil
		}
		return *v, nil
	case string:
		return content.ParseDate(v)
	default:
		return time.Time{}, fmt.Errorf("render: cannot format %T as date", value)
	}
}

func toHTML(value any) template.HTML {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case template.HTML:
		return v
	case string:
		return template.HTML(v)
	default:
		return template.HTML(fmt.Sprint(v))
	}
}

var _ interfaces.TemplateRenderer = (*Renderer)(nil)

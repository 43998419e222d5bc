// Package render handles template parsing and rendering for generated
// files, with a cache so repeated scaffolds don't reparse templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"unicode"
)

// Renderer renders templates with a shared FuncMap and cache.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string. The name is used for
// caching and error messages.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	return r.render("string:"+name, func() (*template.Template, error) {
		return template.New(name).Funcs(r.funcMap).Parse(templateStr)
	}, data)
}

// RenderFS renders a template from an embedded filesystem.
func (r *Renderer) RenderFS(fsys embed.FS, path string, data any) ([]byte, error) {
	return r.render("fs:"+path, func() (*template.Template, error) {
		raw, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}
		return template.New(path).Funcs(r.funcMap).Parse(string(raw))
	}, data)
}

func (r *Renderer) render(cacheKey string, parse func() (*template.Template, error), data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[cacheKey]
	r.mu.RUnlock()

	if !ok {
		var err error
		tmpl, err = parse()
		if err != nil {
			return nil, fmt.Errorf("parsing template '%s': %w", cacheKey, err)
		}
		r.mu.Lock()
		r.cache[cacheKey] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"pascalCase": PascalCase, // my_app → MyApp
		"camelCase":  CamelCase,  // my_app → myApp
		"snakeCase":  SnakeCase,  // MyApp → my_app
		"lower":      strings.ToLower,
		"upper":      strings.ToUpper,
	}
}

// PascalCase converts snake_case or kebab-case to PascalCase.
func PascalCase(s string) string {
	parts := splitWords(s)
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

// CamelCase converts snake_case or kebab-case to camelCase.
func CamelCase(s string) string {
	p := PascalCase(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// SnakeCase converts PascalCase or camelCase to snake_case.
func SnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' || r == ' ' {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func splitWords(s string) []string {
	var parts []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

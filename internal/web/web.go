// Package web holds the landing page template and the static assets served
// next to it.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/patrickwarner/sampadai-landing/internal/locale"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Alternate is one hreflang link on the page.
type Alternate struct {
	Lang string
	Href string
}

// Page is the data passed to the index template.
type Page struct {
	Lang       string
	Path       string
	Messages   locale.Messages
	Alternates []Alternate
}

// NewPage builds the template data for l.
func NewPage(l locale.Language) Page {
	alternates := make([]Alternate, 0, len(locale.Supported)+1)
	for _, s := range locale.Supported {
		alternates = append(alternates, Alternate{Lang: s.String(), Href: "/" + s.String()})
	}
	alternates = append(alternates, Alternate{Lang: "x-default", Href: "/"})
	return Page{
		Lang:       l.String(),
		Path:       "/" + l.String(),
		Messages:   locale.MessagesFor(l),
		Alternates: alternates,
	}
}

// Renderer executes the index template.
type Renderer struct {
	index *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	return NewRendererFS(templatesFS, "templates/*.html")
}

// NewRendererFS parses templates matching pattern from fsys. The set must
// define "index.html".
func NewRendererFS(fsys fs.FS, pattern string) (*Renderer, error) {
	t, err := template.ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	index := t.Lookup("index.html")
	if index == nil {
		return nil, fmt.Errorf("parse templates: index.html not found in %q", pattern)
	}
	return &Renderer{index: index}, nil
}

// Render writes the page for l to w. Nothing is written when execution
// fails.
func (r *Renderer) Render(w io.Writer, l locale.Language) error {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, NewPage(l)); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is embedded at compile time.
		panic(err)
	}
	return sub
}

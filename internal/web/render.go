package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

const layout = "layout.html"

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"selected": func(sel *int64, id int64) bool {
		return sel != nil && *sel == id
	},
	"productForm": func(p *Page, product any) productForm {
		return productForm{Page: p, Product: product}
	},
}

// productForm feeds the shared product fields; Product is nil on the add form.
type productForm struct {
	Page    *Page
	Product any
}

// Renderer is a gin HTMLRender holding one template set per page, each
// combined with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(layout).Funcs(funcs).ParseFS(templateFS, "templates/"+layout, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("web: unknown page %q", name))
	}
	return render.HTML{Template: t, Name: layout, Data: data}
}

// Assets serves the embedded stylesheets and scripts.
func Assets() http.FileSystem {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Package render wires the embedded html/template pages into echo.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages lists every renderable page template. Each is parsed together with
// the shared layout; handlers render by file name.
var pages = []string{
	"login.html",
	"registro.html",
	"ocorrencias.html",
	"nova.html",
	"detalhe.html",
	"perfil.html",
	"painel.html",
	"erro.html",
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

func New() *Renderer {
	funcs := template.FuncMap{
		"statusLabel": StatusLabel,
		"statusColor": StatusColor,
		"tipoLabel":   TipoLabel,
		"fmtDate":     FormatDate,
		"percent":     Percent,
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		r.templates[page] = template.Must(
			template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
				"templates/layout.html", "templates/"+page),
		)
	}
	return r
}

// Render satisfies echo.Renderer; name is the page file name.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("render: unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

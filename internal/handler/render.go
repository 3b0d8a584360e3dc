package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"urlclient/internal/domain"
	"urlclient/internal/timefmt"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDateTime": timefmt.FormatDateTime,
		"relativeTime": func(ts domain.Timestamp) string {
			return timefmt.RelativeTime(ts, time.Now())
		},
		"isExpired": func(ts domain.Timestamp) bool {
			return timefmt.IsExpired(ts, time.Now())
		},
		"toJSON": func(v any) string {
			raw, err := json.Marshal(v)
			if err != nil {
				return ""
			}
			return string(raw)
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// render executes the page into a buffer first so a template error never
// produces a half-written response.
func (s *Server) render(w http.ResponseWriter, data pageData) {
	buf := new(bytes.Buffer)
	if err := s.tmpl.ExecuteTemplate(buf, "page", data); err != nil {
		s.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

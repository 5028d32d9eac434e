package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"rtref/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded HTML templates against the render models.
type Renderer struct {
	tmpl   *template.Template
	logger *logger.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(log *logger.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"yesno": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		tmpl:   tmpl,
		logger: log.Named("view-renderer"),
	}, nil
}

// Page renders the full main page.
func (r *Renderer) Page(w io.Writer, page *Page) error {
	return r.execute(w, "index.html", page)
}

// Sessions renders only the session-list fragment.
func (r *Renderer) Sessions(w io.Writer, page *Page) error {
	return r.execute(w, "sessions.html", page)
}

// DescriptionPopup renders the record description modal fragment.
func (r *Renderer) DescriptionPopup(w io.Writer, popup *DescriptionPopup) error {
	return r.execute(w, "popup_description.html", popup)
}

// CommandPopup renders the command detail modal fragment.
func (r *Renderer) CommandPopup(w io.Writer, popup *CommandPopup) error {
	return r.execute(w, "popup_command.html", popup)
}

// AwakeNotice renders the automatic-action notice fragment.
func (r *Renderer) AwakeNotice(w io.Writer) error {
	return r.execute(w, "popup_awake.html", nil)
}

// AircraftPage renders the aircraft catalog view.
func (r *Renderer) AircraftPage(w io.Writer, page *AircraftPage) error {
	return r.execute(w, "aircraft.html", page)
}

// ErrorPage renders the static error view.
func (r *Renderer) ErrorPage(w io.Writer, page *ErrorPage) error {
	return r.execute(w, "error.html", page)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("Template execution failed",
			logger.String("template", name),
			logger.Error(err))
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/widget.html
var templateFS embed.FS

var widgetTemplate = template.Must(template.ParseFS(templateFS, "templates/widget.html"))

type Page struct {
	View View
	City string
}

func WriteHTML(w io.Writer, page Page) error {
	if err := widgetTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("rendering widget page: %w", err)
	}
	return nil
}

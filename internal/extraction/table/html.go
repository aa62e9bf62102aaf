package table

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/table.html
var templateFS embed.FS

//nolint:gochecknoglobals // parsed once at init
var fragment = template.Must(template.New("table").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templateFS, "templates/table.html"))

// HTML renders the view as an HTML fragment. An empty view renders the
// no-data paragraph and no table markup.
func HTML(view View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragment.ExecuteTemplate(&buf, "table", view); err != nil {
		return "", err
	}
	//nolint:gosec // produced by html/template, already escaped
	return template.HTML(buf.String()), nil
}

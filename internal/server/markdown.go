package server

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// markdownRenderer converts report summaries (task_report.md and friends).
// Raw HTML in the source is not passed through.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithRendererOptions(
		gmhtml.WithXHTML(),
	),
)

var markdownPage = template.Must(template.New("markdown").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
body { font-family: sans-serif; margin: 1em 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid lightgray; padding: 0.2em 0.5em; }
pre { background: #f6f8fa; padding: 0.5em; }
    </style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// renderMarkdown converts source into a standalone HTML page
func renderMarkdown(title string, source []byte) (string, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert(source, &body); err != nil {
		return "", err
	}

	var page bytes.Buffer
	err := markdownPage.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())})
	if err != nil {
		return "", err
	}
	return page.String(), nil
}

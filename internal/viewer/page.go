package viewer

import (
	"html/template"
	"strings"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.Assets}}{{.Stylesheet}}" data-theme="{{.Theme}}">
<link rel="stylesheet" href="{{.Assets}}prism-plugins.css">
</head>
<body>
<h1 class="source-title">{{.Title}}</h1>
<div class="source-view">
{{.Body}}
</div>
<script src="{{.Assets}}prism.js"></script>
</body>
</html>
`))

type pageData struct {
	Title      string
	Theme      string
	Stylesheet string
	Assets     string
	Body       template.HTML
}

// Page wraps a rendered fragment into a standalone HTML document.
// The title is escaped; body must come from View or ViewFile.
func (v *Viewer) Page(title, body string) (string, error) {
	var b strings.Builder
	err := page.Execute(&b, pageData{
		Title:      title,
		Theme:      v.theme.Name(),
		Stylesheet: v.theme.FileName(),
		Assets:     v.assets,
		Body:       template.HTML(body),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

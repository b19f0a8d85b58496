package render

import (
	"bytes"
	"html/template"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; color: #1f2933; }
h1, h2, h3 { color: #102a43; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page wraps a rendered CV into a standalone HTML document. content is
// converted and sanitized with HTML first.
func Page(title, content string) ([]byte, error) {
	body, err := HTML(content)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		// Body is already sanitized by HTML.
		Body: template.HTML(body), //nolint:gosec
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Package render turns generated documents into safe HTML and terminal text.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/spigell/cvwizard/internal/wizard"
)

const defaultWidth = 80

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// IsMarkup reports whether s is markup rather than markdown.
func IsMarkup(s string) bool {
	return wizard.DetectFormat(s) == wizard.FormatMarkup
}

// HTML returns a sanitized HTML fragment for content. Markdown is converted
// first; raw HTML inside markdown is dropped by the converter.
func HTML(content string) (string, error) {
	if IsMarkup(content) {
		return ugcPolicy.Sanitize(content), nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	return ugcPolicy.Sanitize(buf.String()), nil
}

// Terminal returns content formatted for a terminal of the given width.
func Terminal(content string, width int) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	if width <= 0 {
		width = defaultWidth
	}

	if IsMarkup(content) {
		return plainText(content), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle("dark"),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

func plainText(markup string) string {
	for _, tag := range []string{"</p>", "</h1>", "</h2>", "</h3>", "</li>", "<br>", "<br/>", "<br />"} {
		markup = strings.ReplaceAll(markup, tag, tag+"\n")
	}

	lines := strings.Split(strictPolicy.Sanitize(markup), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, html.UnescapeString(line))
		}
	}
	return strings.Join(out, "\n")
}

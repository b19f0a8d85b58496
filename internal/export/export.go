// Package export ships a generated CV out of the wizard.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/spigell/cvwizard/internal/render"
	"github.com/spigell/cvwizard/internal/wizard"
)

const (
	// BaseName is the file name, without extension, of exported CVs.
	BaseName = "professional-cv"
	// PageTitle is the title of exported HTML documents.
	PageTitle = "Professional CV"

	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var errEmptyDocument = errors.New("document is empty")

// Clipboard copies the document content to the system clipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard returns a clipboard exporter.
func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

func (c *Clipboard) Name() string { return "clipboard" }

func (c *Clipboard) Export(_ context.Context, doc *wizard.Document) (string, error) {
	if doc == nil || strings.TrimSpace(doc.Content) == "" {
		return "", errEmptyDocument
	}
	if err := c.write(doc.Content); err != nil {
		return "", err
	}
	return "CV copied to clipboard!", nil
}

// File writes the document into a directory.
type File struct {
	Dir    string
	Format string
}

// NewFile returns a file exporter. An empty format means HTML.
func NewFile(dir, format string) *File {
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = "."
	}
	if format = strings.ToLower(strings.TrimSpace(format)); format == "" {
		format = FormatHTML
	}
	return &File{Dir: dir, Format: format}
}

func (f *File) Name() string { return "file" }

func (f *File) Export(_ context.Context, doc *wizard.Document) (string, error) {
	name, data, err := Encode(doc, f.Format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(f.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// Encode returns the file name and bytes of doc in format. Markup documents
// are always exported as HTML.
func Encode(doc *wizard.Document, format string) (string, []byte, error) {
	if doc == nil || strings.TrimSpace(doc.Content) == "" {
		return "", nil, errEmptyDocument
	}

	switch format {
	case FormatMarkdown:
		if doc.Format != wizard.FormatMarkup {
			return BaseName + ".md", []byte(doc.Content), nil
		}
		fallthrough
	case FormatHTML:
		page, err := render.Page(PageTitle, doc.Content)
		if err != nil {
			return "", nil, err
		}
		return BaseName + ".html", page, nil
	default:
		return "", nil, fmt.Errorf("unknown export format %q", format)
	}
}

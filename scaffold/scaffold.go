// Package scaffold holds the templates the folio CLI uses to create new
// posts and pages.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"path"
	"text/template"
	"time"

	"github.com/google/uuid"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Entry is the data a new content file is rendered from.
type Entry struct {
	Kind       string // "post" or "page"
	ID         string
	Identifier string
	Slug       string
	Title      string
	Date       string
}

// NewEntry fills in an Entry for a fresh post or page. The ID is a random
// UUID and the identifier matches the route the entry will be served at.
func NewEntry(kind, title, slug string, now time.Time) (Entry, error) {
	var identifier string
	switch kind {
	case "post":
		identifier = "blog/" + slug + "/"
	case "page":
		identifier = slug + "/"
	default:
		return Entry{}, fmt.Errorf("scaffold: unknown kind %q, want post or page", kind)
	}
	if slug == "" {
		return Entry{}, fmt.Errorf("scaffold: empty slug for %q", title)
	}
	return Entry{
		Kind:       kind,
		ID:         uuid.New().String(),
		Identifier: identifier,
		Slug:       slug,
		Title:      title,
		Date:       now.Format("2006-01-02"),
	}, nil
}

// Path returns the file path of e relative to the content root.
func (e Entry) Path() string {
	return path.Join(e.Kind+"s", e.Slug+".md")
}

// Render writes the markdown file for e.
func Render(w io.Writer, e Entry) error {
	name := path.Join("templates", e.Kind+".md.tmpl")
	tmpl, err := template.ParseFS(Templates, name)
	if err != nil {
		return fmt.Errorf("scaffold: parse %s: %w", name, err)
	}
	return tmpl.Execute(w, e)
}

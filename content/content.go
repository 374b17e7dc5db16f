// Package content loads posts and pages from markdown files with
// frontmatter.
//
// Layout under the content root:
//
//	posts/<slug>/index.md   served at /blog/<slug>/
//	posts/<slug>.md
//	pages/<slug>/index.md   served at /<slug>/
//	pages/<slug>.md
package content

import (
	"strings"

	"github.com/kolharsam/folio/discussion"
)

// Kind separates blog posts from standalone pages.
type Kind string

const (
	KindPost Kind = "post"
	KindPage Kind = "page"
)

// DateLayout is the frontmatter date format.
const DateLayout = "2006-01-02"

// Post is one indexed content entry.
type Post struct {
	ID         string // stable thread key
	Identifier string // human-assigned canonical path, may be empty
	Slug       string
	Kind       Kind
	Title      string
	Date       string
	Tags       []string
	Summary    string
	HTML       string
	Published  bool
	Source     string // path relative to the content root
}

// Link returns the site-relative path the entry is served at.
func (p Post) Link() string {
	if p.Kind == KindPage {
		return "/" + p.Slug + "/"
	}
	return "/blog/" + p.Slug + "/"
}

// ThreadItem returns the fields the discussion resolver reads.
func (p Post) ThreadItem() discussion.ContentItem {
	return discussion.ContentItem{
		ID:         p.ID,
		Identifier: p.Identifier,
		Title:      p.Title,
	}
}

// HasTag reports whether p carries tag, ignoring case and surrounding space.
func (p Post) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	for _, t := range p.Tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}

// NormalizeTag lowercases and trims a tag.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

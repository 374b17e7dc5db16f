// Package discussion derives the identity of a Disqus thread for a content
// page and renders the embed that registers it.
//
// A thread is keyed by the content item's ID. The URL attached to the thread
// comes from the live request path when one is known, and otherwise from the
// item's human-assigned identifier. When neither is available the identity
// carries no URL at all.
package discussion

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrMissingThreadKey means the content item has no ID to key a thread
	// on. The embed must be left out of the page.
	ErrMissingThreadKey = errors.New("discussion: content item has no thread key")

	// ErrUnresolvedCanonicalURL means no URL could be built for the item.
	ErrUnresolvedCanonicalURL = errors.New("discussion: no canonical url available")
)

// ContentItem is the part of a content page the resolver reads.
type ContentItem struct {
	ID         string // opaque, stable; keys the thread
	Identifier string // human-assigned path, may be empty
	Title      string
}

// ThreadIdentity is the registration config handed to the discussion widget.
// An empty URL means no canonical URL was available.
type ThreadIdentity struct {
	URL        string
	Identifier string
	Title      string
}

// HasURL reports whether the identity carries a canonical URL.
func (t ThreadIdentity) HasURL() bool {
	return t.URL != ""
}

// RenderContext says where a page is being rendered. It is either
// StaticContext or RuntimeContext.
type RenderContext interface {
	renderContext()
}

// StaticContext is an offline render (static export) where only the content
// item itself is known.
type StaticContext struct{}

// RuntimeContext is a render for a live request whose path is known.
type RuntimeContext struct {
	Path string
}

func (StaticContext) renderContext()  {}
func (RuntimeContext) renderContext() {}

// Static returns the context for offline renders.
func Static() RenderContext { return StaticContext{} }

// Runtime returns the context for a render of the page at path.
func Runtime(path string) RenderContext { return RuntimeContext{Path: path} }

// Resolver builds ThreadIdentity values for one site origin.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	origin string
	log    zerolog.Logger
}

// NewResolver returns a Resolver for baseOrigin (e.g. "https://example.com").
// Trailing slashes are dropped.
func NewResolver(baseOrigin string, logger zerolog.Logger) *Resolver {
	return &Resolver{
		origin: strings.TrimRight(strings.TrimSpace(baseOrigin), "/"),
		log:    logger,
	}
}

// Origin returns the origin URLs are built on.
func (r *Resolver) Origin() string {
	return r.origin
}

// Resolve returns the thread identity of item rendered in rc. A nil rc is
// treated as StaticContext.
//
// The identifier is always item.ID. A missing ID fails with
// ErrMissingThreadKey. A missing URL or title is logged and left empty.
func (r *Resolver) Resolve(item ContentItem, rc RenderContext) (ThreadIdentity, error) {
	if strings.TrimSpace(item.ID) == "" {
		return ThreadIdentity{}, ErrMissingThreadKey
	}
	id := ThreadIdentity{
		Identifier: item.ID,
		Title:      item.Title,
	}
	if strings.TrimSpace(item.Title) == "" {
		r.log.Warn().Str("thread", item.ID).Msg("content item has no title, rendering thread without one")
	}
	u, err := r.CanonicalURL(item, rc)
	if err != nil {
		r.log.Warn().Str("thread", item.ID).Err(err).Msg("registering thread without url")
		return id, nil
	}
	id.URL = u
	return id, nil
}

// CanonicalURL returns the page URL for item in rc. A runtime path takes
// precedence over the item's identifier. With neither it returns
// ErrUnresolvedCanonicalURL.
func (r *Resolver) CanonicalURL(item ContentItem, rc RenderContext) (string, error) {
	if rt, ok := rc.(RuntimeContext); ok {
		if p := strings.TrimSpace(rt.Path); p != "" {
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			return r.origin + p, nil
		}
	}
	ident := strings.TrimLeft(strings.TrimSpace(item.Identifier), "/")
	if ident == "" {
		return "", ErrUnresolvedCanonicalURL
	}
	return r.origin + "/" + ident, nil
}

package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolharsam/folio/markdown"
	"github.com/kolharsam/folio/player"
)

func newTestLoader(files fstest.MapFS) *Loader {
	return NewLoaderFS(files, markdown.NewRenderer(player.NewPresets(), zerolog.Nop()), zerolog.Nop())
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func TestLoadPostsAndPages(t *testing.T) {
	files := fstest.MapFS{
		"posts/hello-world/index.md": file(`---
id: 7d0f3f1e-aaaa-4bbb-8ccc-123456789abc
identifier: blog/hello-world/
title: Hello World
date: 2021-03-04
tags: [Go, " Web "]
description: First post
---
# Hi

Body text.
`),
		"posts/second.md": file(`---
title: Second
date: "2021-05-01"
---
More.
`),
		"pages/about/index.md": file(`---
title: About
identifier: about/
---
{{< spotify src="https://open.spotify.com/embed/playlist/xyz" size="compact" >}}
`),
		"posts/notes.txt": file("ignored"),
	}

	posts, err := newTestLoader(files).Load()
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// posts newest first, then pages
	assert.Equal(t, "second", posts[0].Slug)
	assert.Equal(t, "hello-world", posts[1].Slug)
	assert.Equal(t, "about", posts[2].Slug)

	hello := posts[1]
	assert.Equal(t, "7d0f3f1e-aaaa-4bbb-8ccc-123456789abc", hello.ID)
	assert.Equal(t, "blog/hello-world/", hello.Identifier)
	assert.Equal(t, KindPost, hello.Kind)
	assert.Equal(t, "2021-03-04", hello.Date)
	assert.Equal(t, []string{"go", "web"}, hello.Tags)
	assert.Equal(t, "First post", hello.Summary)
	assert.True(t, hello.Published)
	assert.Contains(t, hello.HTML, `<h1 id="hi">Hi</h1>`)
	assert.Equal(t, "/blog/hello-world/", hello.Link())

	second := posts[0]
	assert.Empty(t, second.Identifier)
	assert.Equal(t, DeriveID("posts/second.md"), second.ID)

	about := posts[2]
	assert.Equal(t, KindPage, about.Kind)
	assert.Equal(t, "/about/", about.Link())
	assert.Contains(t, about.HTML, `width="300"`)
}

func TestLoadMissingDirectories(t *testing.T) {
	posts, err := newTestLoader(fstest.MapFS{}).Load()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestParseDraftAndSlugOverride(t *testing.T) {
	l := newTestLoader(nil)
	p, err := l.Parse(strings.NewReader("---\ntitle: Draft\nslug: custom\ndraft: true\n---\nbody"), "posts/x/index.md", KindPost)
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Slug)
	assert.False(t, p.Published)
}

func TestParseWithoutFrontmatter(t *testing.T) {
	l := newTestLoader(nil)
	p, err := l.Parse(strings.NewReader("just text"), "pages/plain.md", KindPage)
	require.NoError(t, err)
	assert.Equal(t, "plain", p.Slug)
	assert.Empty(t, p.Title)
	assert.NotEmpty(t, p.ID)
	assert.Contains(t, p.HTML, "<p>just text</p>")
}

func TestParseInvalidDate(t *testing.T) {
	l := newTestLoader(nil)
	_, err := l.Parse(strings.NewReader("---\ntitle: X\ndate: 04/03/2021\n---\n"), "posts/x.md", KindPost)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDate))
	assert.Contains(t, err.Error(), "posts/x.md")
}

func TestDeriveIDIsStable(t *testing.T) {
	a := DeriveID("posts/a/index.md")
	assert.Equal(t, a, DeriveID("posts/a/index.md"))
	assert.Equal(t, a, DeriveID("posts/a/./index.md"))
	assert.NotEqual(t, a, DeriveID("posts/b/index.md"))
}

func TestLoadRejectsDuplicateSlugs(t *testing.T) {
	files := fstest.MapFS{
		"posts/a/index.md": file("---\ntitle: A\n---\n"),
		"posts/a.md":       file("---\ntitle: A again\n---\n"),
	}
	_, err := newTestLoader(files).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `slug "a"`)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	files := fstest.MapFS{
		"posts/a.md": file("---\nid: same\ntitle: A\n---\n"),
		"pages/b.md": file("---\nid: same\ntitle: B\n---\n"),
	}
	_, err := newTestLoader(files).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `share id "same"`)
}

func TestThreadItem(t *testing.T) {
	p := Post{ID: "id", Identifier: "blog/x/", Title: "X", Slug: "x"}
	item := p.ThreadItem()
	assert.Equal(t, "id", item.ID)
	assert.Equal(t, "blog/x/", item.Identifier)
	assert.Equal(t, "X", item.Title)
}

func TestHasTag(t *testing.T) {
	p := Post{Tags: []string{"go", "web"}}
	assert.True(t, p.HasTag(" Go "))
	assert.False(t, p.HasTag("rust"))
}

func TestParseSplitsCommaTags(t *testing.T) {
	l := newTestLoader(nil)
	p, err := l.Parse(strings.NewReader("---\ntitle: T\ntags: [\"rust, wasm\", Go, go, \" \"]\n---\nbody"), "posts/t.md", KindPost)
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "wasm", "go"}, p.Tags)
}

func TestCleanTags(t *testing.T) {
	assert.Nil(t, CleanTags(nil))
	assert.Nil(t, CleanTags([]string{"", " , "}))
	assert.Equal(t, []string{"a", "b"}, CleanTags([]string{"A,b", "a"}))
}

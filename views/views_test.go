package views

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolharsam/folio/content"
)

var testCfg = SiteConfig{
	Name:          "Sameer Kolhar",
	URL:           "https://kolharsam.dev",
	Description:   "portfolio and blog",
	Author:        "@kolharsam",
	Navigation:    []Link{{Title: "Blog", URL: "/"}, {Title: "About", URL: "/about/"}},
	ExternalLinks: []Link{{Title: "GitHub", URL: "https://www.github.com/kolharsam"}},
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayoutChrome(t *testing.T) {
	got := renderString(t, Home(testCfg, nil, "", nil))
	assert.Contains(t, got, "<title>Sameer Kolhar</title>")
	assert.Contains(t, got, `<a href="/about/">About</a>`)
	assert.Contains(t, got, `href="https://www.github.com/kolharsam" target="_blank"`)
	assert.Contains(t, got, `<link rel="canonical" href="https://kolharsam.dev"/>`)
	assert.Contains(t, got, "No posts yet.")
	assert.NotContains(t, got, "googletagmanager")
}

func TestLayoutAnalytics(t *testing.T) {
	cfg := testCfg
	cfg.GoogleAnalyticsID = "UA-123"
	got := renderString(t, Home(cfg, nil, "", nil))
	assert.Contains(t, got, "https://www.googletagmanager.com/gtag/js?id=UA-123")
	assert.Contains(t, got, `gtag('config',"UA-123");`)
}

func TestBlogSectionTags(t *testing.T) {
	posts := []content.Post{{Slug: "a", Kind: content.KindPost, Title: "A & B", Date: "2021-01-01"}}
	got := renderString(t, BlogSection(posts, "Go", []string{"go", "c++"}))
	assert.Contains(t, got, `<a class="tag tag-active" href="/?tag=go">go</a>`)
	assert.Contains(t, got, `href="/?tag=c%2B%2B"`)
	assert.Contains(t, got, `<a href="/blog/a/">A &amp; B</a>`)
}

func TestPostRendersThread(t *testing.T) {
	post := content.Post{Slug: "a", Kind: content.KindPost, Title: "A", HTML: "<p>body</p>", Tags: []string{"go"}}
	marker := templ.Raw(`<div id="thread-marker"></div>`)
	got := renderString(t, Post(testCfg, post, nil, marker))
	assert.Contains(t, got, "<p>body</p>")
	assert.Contains(t, got, `<div id="thread-marker"></div>`)
	assert.Contains(t, got, `<meta property="og:type" content="article"/>`)
	assert.Contains(t, got, `<title>A | Sameer Kolhar</title>`)
}

func TestPostWithNopThread(t *testing.T) {
	post := content.Post{Slug: "a", Kind: content.KindPost, Title: "A"}
	got := renderString(t, Post(testCfg, post, nil, templ.NopComponent))
	assert.NotContains(t, got, "disqus")
}

func TestPageUsesPageLink(t *testing.T) {
	page := content.Post{Slug: "about", Kind: content.KindPage, Title: "About", HTML: "<p>me</p>"}
	got := renderString(t, Page(testCfg, page))
	assert.Contains(t, got, `<link rel="canonical" href="https://kolharsam.dev/about/"/>`)
	assert.Contains(t, got, "<p>me</p>")
}

func TestAdminDashboardShowsThreadKeys(t *testing.T) {
	entries := []content.Post{
		{Slug: "a", Kind: content.KindPost, Title: "A", ID: "id-a", Identifier: "blog/a/", Published: true},
		{Slug: "b", Kind: content.KindPost, Title: "B", ID: "id-b"},
	}
	got := renderString(t, AdminDashboard(testCfg, entries, "saved", "tok"))
	assert.Contains(t, got, "<code>id-a</code>")
	assert.Contains(t, got, "(none)")
	assert.Contains(t, got, "draft")
	assert.Contains(t, got, `name="_csrf" value="tok"`)
}

func TestFilterRelatedPosts(t *testing.T) {
	current := content.Post{Slug: "a", Kind: content.KindPost, Tags: []string{"go"}}
	posts := []content.Post{
		current,
		{Slug: "b", Kind: content.KindPost, Tags: []string{"Go"}},
		{Slug: "c", Kind: content.KindPost, Tags: []string{"rust"}},
	}
	related := FilterRelatedPosts(current, posts)
	require.Len(t, related, 1)
	assert.Equal(t, "b", related[0].Slug)
}

func TestBlogPostingJsonLD(t *testing.T) {
	post := content.Post{Slug: "a", Kind: content.KindPost, Title: "A", Date: "2021-01-01", Tags: []string{"go", "web"}}
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJsonLD(testCfg, post)), &data))
	assert.Equal(t, "https://kolharsam.dev/blog/a/", data["url"])
	assert.Equal(t, "go, web", data["keywords"])
}

package views

import (
	"github.com/a-h/templ"

	"github.com/kolharsam/folio/content"
	"github.com/kolharsam/folio/markdown"
)

// Home lists published posts, optionally filtered by activeTag.
func Home(cfg SiteConfig, posts []content.Post, activeTag string, tags []string) templ.Component {
	meta := PageMeta{URL: buildURL(cfg.URL), Description: cfg.Description}
	return Layout(cfg, meta, component(func(d *doc) {
		d.raw(`<script type="application/ld+json">`, WebsiteJsonLD(cfg), `</script>`)
		d.render(BlogSection(posts, activeTag, tags))
	}))
}

// BlogSection is the post listing with its tag filter, also served alone to
// HTMX requests.
func BlogSection(posts []content.Post, activeTag string, tags []string) templ.Component {
	return component(func(d *doc) {
		d.raw(`<section id="blog">`)
		if len(tags) > 0 {
			d.raw(`<div class="tags">`)
			d.raw(`<a class="`, TagClass(activeTag == ""), `" href="/">all</a>`)
			for _, t := range tags {
				d.raw(`<a class="`, TagClass(t == content.NormalizeTag(activeTag)), `" href="/?tag=`, esc(queryEscape(t)), `">`, esc(t), `</a>`)
			}
			d.raw(`</div>`)
		}
		if len(posts) == 0 {
			d.raw(`<p class="empty">No posts yet.</p>`)
		}
		d.raw(`<ul class="posts">`)
		for _, p := range posts {
			d.raw(`<li><time datetime="`, esc(p.Date), `">`, esc(p.Date), `</time> <a href="`, esc(p.Link()), `">`, esc(p.Title), `</a>`)
			if p.Summary != "" {
				d.raw(`<p>`, esc(p.Summary), `</p>`)
			}
			d.raw(`</li>`)
		}
		d.raw(`</ul></section>`)
	})
}

// Post renders a single post. thread is the comments section and may be a
// no-op component.
func Post(cfg SiteConfig, post content.Post, related []content.Post, thread templ.Component) templ.Component {
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		URL:         buildURL(cfg.URL, post.Link()),
		OGType:      "article",
	}
	return Layout(cfg, meta, PostBody(cfg, post, related, thread))
}

// PostBody is the post without the page chrome, used for HTMX partials.
func PostBody(cfg SiteConfig, post content.Post, related []content.Post, thread templ.Component) templ.Component {
	return component(func(d *doc) {
		d.raw(`<script type="application/ld+json">`, BlogPostingJsonLD(cfg, post), `</script>`)
		d.raw(`<article class="post"><h1>`, esc(post.Title), `</h1>`)
		d.raw(`<p class="post-meta"><time datetime="`, esc(post.Date), `">`, esc(post.Date), `</time>`)
		for _, t := range post.Tags {
			d.raw(` <a class="`, TagClass(false), `" href="/?tag=`, esc(queryEscape(t)), `">`, esc(t), `</a>`)
		}
		d.raw(`</p><div class="post-content">`)
		d.render(markdown.HTML(post.HTML))
		d.raw(`</div></article>`)
		if len(related) > 0 {
			d.raw(`<aside class="related"><h2>Related</h2><ul>`)
			for _, p := range related {
				d.raw(`<li><a href="`, esc(p.Link()), `">`, esc(p.Title), `</a></li>`)
			}
			d.raw(`</ul></aside>`)
		}
		d.render(thread)
	})
}

// Page renders a standalone page such as /about/.
func Page(cfg SiteConfig, page content.Post) templ.Component {
	meta := PageMeta{
		Title:       page.Title,
		Description: page.Summary,
		URL:         buildURL(cfg.URL, page.Link()),
	}
	return Layout(cfg, meta, component(func(d *doc) {
		d.raw(`<article class="page"><h1>`, esc(page.Title), `</h1><div class="page-content">`)
		d.render(markdown.HTML(page.HTML))
		d.raw(`</div></article>`)
	}))
}

// NotFound is the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return Layout(cfg, PageMeta{Title: "Not found"}, component(func(d *doc) {
		d.raw(`<section class="error"><h1>404</h1><p>That page does not exist.</p><a href="/">Back home</a></section>`)
	}))
}

// ServerError is the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return Layout(cfg, PageMeta{Title: "Error"}, component(func(d *doc) {
		d.raw(`<section class="error"><h1>500</h1><p>Something went wrong. Try again later.</p></section>`)
	}))
}

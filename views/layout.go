package views

import (
	"github.com/a-h/templ"
)

// Layout wraps body in the shared page chrome: head metadata, header
// navigation and footer links.
func Layout(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return component(func(d *doc) {
		title := cfg.Name
		if meta.Title != "" {
			title = meta.Title + " | " + cfg.Name
		}
		description := meta.Description
		if description == "" {
			description = cfg.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		d.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		d.raw(`<title>`, esc(title), `</title>`)
		d.raw(`<meta name="description" content="`, esc(description), `"/>`)
		if meta.URL != "" {
			d.raw(`<link rel="canonical" href="`, esc(meta.URL), `"/>`)
			d.raw(`<meta property="og:url" content="`, esc(meta.URL), `"/>`)
		}
		d.raw(`<meta property="og:title" content="`, esc(title), `"/>`)
		d.raw(`<meta property="og:description" content="`, esc(description), `"/>`)
		d.raw(`<meta property="og:type" content="`, esc(ogType), `"/>`)
		d.raw(`<link rel="manifest" href="/manifest.webmanifest"/>`)
		d.raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
		d.raw(`<link rel="alternate" type="application/rss+xml" title="`, esc(cfg.Name), `" href="/feed.xml"/>`)
		d.raw(`<link rel="stylesheet" href="/public/style.css"/>`)
		if id := cfg.GoogleAnalyticsID; id != "" {
			d.raw(`<script async src="https://www.googletagmanager.com/gtag/js?id=`, esc(id), `"></script>`)
			d.raw(`<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config',`,
				jsString(id), `);</script>`)
		}
		d.raw(`</head><body><header class="site-header"><a class="site-title" href="/">`, esc(cfg.Name), `</a><nav>`)
		for _, l := range cfg.Navigation {
			d.raw(`<a href="`, esc(l.URL), `">`, esc(l.Title), `</a>`)
		}
		d.raw(`</nav></header><main>`)
		d.render(body)
		d.raw(`</main><footer class="site-footer">`)
		for _, l := range cfg.ExternalLinks {
			d.raw(`<a href="`, esc(l.URL), `" target="_blank" rel="noopener noreferrer">`, esc(l.Title), `</a>`)
		}
		d.raw(`<a href="/feed.xml">RSS</a></footer></body></html>`)
	})
}

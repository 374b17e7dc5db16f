package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/kolharsam/folio/content"
)

// AdminLogin is the password form.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return Layout(cfg, PageMeta{Title: "Admin"}, component(func(d *doc) {
		d.raw(`<section class="admin"><h1>Admin</h1>`)
		if showError {
			d.raw(`<p class="error">Wrong password.</p>`)
		}
		d.raw(`<form method="post" action="/admin/login/">`)
		csrfField(d, csrfToken)
		d.raw(`<input type="password" name="password" autocomplete="current-password" required/>`,
			`<button type="submit">Log in</button></form></section>`)
	}))
}

// AdminDashboard lists every indexed entry, drafts included.
func AdminDashboard(cfg SiteConfig, entries []content.Post, message string, csrfToken string) templ.Component {
	return Layout(cfg, PageMeta{Title: "Admin"}, component(func(d *doc) {
		d.raw(`<section class="admin"><h1>Content</h1>`)
		if message != "" {
			d.raw(`<p class="message">`, esc(message), `</p>`)
		}
		d.raw(`<form method="post" action="/admin/sync/">`)
		csrfField(d, csrfToken)
		d.raw(`<button type="submit">Reload content</button></form>`)
		d.raw(`<form method="post" action="/admin/logout/">`)
		csrfField(d, csrfToken)
		d.raw(`<button type="submit">Log out</button></form>`)
		d.raw(`<p><a href="/admin/images/">Images</a></p>`)
		d.raw(`<table class="entries"><thead><tr><th>Title</th><th>Kind</th><th>Date</th><th>Thread key</th><th>Identifier</th><th>Status</th></tr></thead><tbody>`)
		for _, e := range entries {
			status := "published"
			if !e.Published {
				status = "draft"
			}
			identifier := e.Identifier
			if identifier == "" {
				identifier = "(none)"
			}
			d.raw(`<tr><td><a href="/admin/post/`, esc(pathEscape(e.Slug)), `/?kind=`, esc(string(e.Kind)), `">`, esc(e.Title), `</a></td>`,
				`<td>`, esc(string(e.Kind)), `</td><td>`, esc(e.Date), `</td><td><code>`, esc(e.ID), `</code></td>`,
				`<td>`, esc(identifier), `</td><td>`, status, `</td></tr>`)
		}
		d.raw(`</tbody></table></section>`)
	}))
}

// AdminImages lists uploaded images with an upload form.
func AdminImages(cfg SiteConfig, images []Image, csrfToken string) templ.Component {
	return Layout(cfg, PageMeta{Title: "Images"}, component(func(d *doc) {
		d.raw(`<section class="admin" id="images"><h1>Images</h1>`)
		d.raw(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(d, csrfToken)
		d.raw(`<input type="file" name="image" accept="image/*" required/><button type="submit">Upload</button></form>`)
		d.raw(`<ul class="images">`)
		for _, img := range images {
			src := "/public/uploads/" + img.Filename
			d.raw(`<li><img src="`, esc(src), `" width="`, strconv.Itoa(img.Width), `" height="`, strconv.Itoa(img.Height), `" alt="`, esc(img.OriginalName), `" loading="lazy"/>`)
			d.raw(`<code>`, esc(src), `</code> `, strconv.Itoa(img.Size/1024), ` KB`)
			d.raw(`<form method="post" action="/admin/images/`, esc(pathEscape(img.Filename)), `/delete/">`)
			csrfField(d, csrfToken)
			d.raw(`<button type="submit">Delete</button></form></li>`)
		}
		d.raw(`</ul></section>`)
	}))
}

func csrfField(d *doc, token string) {
	d.raw(`<input type="hidden" name="_csrf" value="`, esc(token), `"/>`)
}

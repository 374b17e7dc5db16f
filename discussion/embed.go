package discussion

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Thread renders the comments section for id: the title heading, the comment
// count and the Disqus thread registration. shortname is the Disqus site
// shortname.
func Thread(shortname string, id ThreadIdentity) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="comments">`)
		b.WriteString(`<h1>` + templ.EscapeString(id.Title) + `</h1>`)
		writeCommentCount(&b, shortname, id)
		b.WriteString(`<div id="disqus_thread"></div>`)
		b.WriteString(`<script>var disqus_config=function(){`)
		if id.HasURL() {
			b.WriteString(`this.page.url=` + jsString(id.URL) + `;`)
		}
		b.WriteString(`this.page.identifier=` + jsString(id.Identifier) + `;`)
		b.WriteString(`this.page.title=` + jsString(id.Title) + `;};`)
		b.WriteString(`(function(){var d=document,s=d.createElement('script');s.src=` + jsString(scriptURL(shortname, "embed.js")) +
			`;s.setAttribute('data-timestamp',+new Date());(d.head||d.body).appendChild(s);})();</script>`)
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// CommentCount renders a standalone comment counter for id, e.g. for post
// listings.
func CommentCount(shortname string, id ThreadIdentity) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeCommentCount(&b, shortname, id)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeCommentCount(b *strings.Builder, shortname string, id ThreadIdentity) {
	b.WriteString(`<span class="disqus-comment-count" data-disqus-identifier="` + templ.EscapeString(id.Identifier) + `"`)
	if id.HasURL() {
		b.WriteString(` data-disqus-url="` + templ.EscapeString(id.URL) + `"`)
	}
	b.WriteString(`>...</span>`)
	b.WriteString(`<script id="dsq-count-scr" src="` + templ.EscapeString(scriptURL(shortname, "count.js")) + `" async></script>`)
}

// ScriptOrigin returns the origin Disqus scripts for shortname load from,
// for use in a Content-Security-Policy.
func ScriptOrigin(shortname string) string {
	return "https://" + shortname + ".disqus.com"
}

func scriptURL(shortname, file string) string {
	return ScriptOrigin(shortname) + "/" + file
}

// jsString encodes s as a JavaScript string literal that is safe inside a
// <script> element.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// Package markdown renders post bodies to HTML and exposes the result as a
// templ component.
package markdown

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
	"github.com/russross/blackfriday/v2"

	"github.com/kolharsam/folio/internal/metrics"
	"github.com/kolharsam/folio/player"
)

var (
	// {{< spotify src="https://open.spotify.com/embed/..." size="compact" >}}
	reShortcode = regexp.MustCompile(`^\s*\{\{<\s*(\w+)((?:\s+\w+="[^"]*")*)\s*>\}\}\s*$`)
	reAttr      = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

const extensions = blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs

// Renderer converts markdown to HTML, expanding embed shortcodes first.
type Renderer struct {
	presets player.Presets
	log     zerolog.Logger
}

// NewRenderer returns a Renderer that sizes player embeds from presets.
func NewRenderer(presets player.Presets, logger zerolog.Logger) *Renderer {
	return &Renderer{presets: presets, log: logger}
}

// Render returns the HTML for md.
func (r *Renderer) Render(md []byte) []byte {
	return blackfriday.Run(r.expand(md), blackfriday.WithExtensions(extensions))
}

// HTML returns a templ.Component that writes pre-rendered html verbatim.
func HTML(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

// expand replaces shortcode lines outside fenced code blocks with raw HTML
// blocks. Unknown shortcodes are left untouched.
func (r *Renderer) expand(md []byte) []byte {
	lines := strings.Split(string(md), "\n")
	var buf bytes.Buffer
	inFence := false
	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence {
			if m := reShortcode.FindStringSubmatch(line); m != nil {
				if out, ok := r.shortcode(m[1], parseAttrs(m[2])); ok {
					buf.WriteString("\n" + out + "\n")
					if i < len(lines)-1 {
						buf.WriteString("\n")
					}
					continue
				}
			}
		}
		buf.WriteString(raw)
		if i < len(lines)-1 {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes()
}

func (r *Renderer) shortcode(name string, attrs map[string]string) (string, bool) {
	switch name {
	case "spotify":
		src := embedURL(attrs["src"])
		if src == "" {
			r.log.Warn().Str("src", attrs["src"]).Msg("dropping spotify embed with unsafe or empty src")
			return "", true
		}
		dims, err := r.presets.Resolve(attrs["size"])
		if err != nil {
			metrics.PresetFallbackTotal.Inc()
			r.log.Warn().Err(err).Str("size", attrs["size"]).Str("fallback", string(player.DefaultSize)).Msg("unknown player size")
		}
		return `<div class="player">` + player.FrameHTML(src, dims) + `</div>`, true
	default:
		return "", false
	}
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reAttr.FindAllStringSubmatch(s, -1) {
		attrs[strings.ToLower(m[1])] = m[2]
	}
	return attrs
}

// embedURL returns raw if it is an absolute http(s) URL, "" otherwise.
func embedURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Host == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return val
	default:
		return ""
	}
}

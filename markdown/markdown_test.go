package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolharsam/folio/player"
)

func newTestRenderer() *Renderer {
	return NewRenderer(player.NewPresets(), zerolog.Nop())
}

func render(md string) string {
	return string(newTestRenderer().Render([]byte(md)))
}

func TestRenderBasics(t *testing.T) {
	got := render("# Title\n\nSome **bold** and *italic* text.\n\n- one\n- two\n")
	assert.Contains(t, got, `<h1 id="title">Title</h1>`)
	assert.Contains(t, got, "<strong>bold</strong>")
	assert.Contains(t, got, "<em>italic</em>")
	assert.Contains(t, got, "<li>one</li>")
}

func TestRenderFencedCode(t *testing.T) {
	got := render("```go\nfmt.Println(\"hi\")\n```\n")
	assert.Contains(t, got, `<code class="language-go">`)
	assert.Contains(t, got, "fmt.Println(&quot;hi&quot;)")
}

func TestSpotifyShortcodeCompact(t *testing.T) {
	got := render("Listen:\n\n{{< spotify src=\"https://open.spotify.com/embed/track/abc\" size=\"compact\" >}}\n\nAfter.")
	assert.Contains(t, got, `<div class="player"><iframe`)
	assert.Contains(t, got, `src="https://open.spotify.com/embed/track/abc"`)
	assert.Contains(t, got, `width="300"`)
	assert.Contains(t, got, `height="80"`)
	assert.Contains(t, got, "<p>After.</p>")
	assert.NotContains(t, got, "{{&lt;")
}

func TestSpotifyShortcodeDefaultSize(t *testing.T) {
	got := render(`{{< spotify src="https://open.spotify.com/embed/album/xyz" >}}`)
	assert.Contains(t, got, `width="100%"`)
	assert.Contains(t, got, `height="380"`)
}

func TestSpotifyShortcodeDirectlyAfterParagraph(t *testing.T) {
	got := render("Intro line\n{{< spotify src=\"https://open.spotify.com/embed/track/abc\" >}}\nOutro line")
	assert.Contains(t, got, "<p>Intro line</p>")
	assert.Contains(t, got, `<div class="player">`)
	assert.Contains(t, got, "<p>Outro line</p>")
}

func TestSpotifyShortcodeUnknownSizeFallsBack(t *testing.T) {
	var logs bytes.Buffer
	r := NewRenderer(player.NewPresets(), zerolog.New(&logs))
	got := string(r.Render([]byte(`{{< spotify src="https://open.spotify.com/embed/track/abc" size="huge" >}}`)))

	assert.Contains(t, got, `width="100%"`)
	assert.Contains(t, got, `height="380"`)
	assert.Contains(t, logs.String(), "unknown player size")
}

func TestSpotifyShortcodeUnsafeSrcIsDropped(t *testing.T) {
	for _, src := range []string{"javascript:alert(1)", "", "/relative/path", "data:text/html,hi"} {
		got := render(`{{< spotify src="` + src + `" >}}`)
		assert.NotContains(t, got, "<iframe", "src %q", src)
		assert.NotContains(t, got, "spotify", "src %q", src)
	}
}

func TestShortcodeInsideCodeFenceIsLiteral(t *testing.T) {
	got := render("```\n{{< spotify src=\"https://open.spotify.com/embed/track/abc\" >}}\n```\n")
	assert.NotContains(t, got, "<iframe")
	assert.Contains(t, got, "{{&lt; spotify")
}

func TestUnknownShortcodeIsLeftAlone(t *testing.T) {
	got := render(`{{< youtube id="abc" >}}`)
	assert.NotContains(t, got, "<iframe")
	assert.Contains(t, got, "youtube")
}

func TestParseAttrs(t *testing.T) {
	attrs := parseAttrs(` src="https://a.test/x" Size="compact"`)
	assert.Equal(t, "https://a.test/x", attrs["src"])
	assert.Equal(t, "compact", attrs["size"])
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://open.spotify.com/embed/x", "https://open.spotify.com/embed/x"},
		{"  http://a.test/b ", "http://a.test/b"},
		{"javascript:alert(1)", ""},
		{"/local", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, embedURL(tt.in), "embedURL(%q)", tt.in)
	}
}

func TestHTMLComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML("<p>hi</p>").Render(context.Background(), &buf))
	assert.Equal(t, "<p>hi</p>", buf.String())
}

func TestRenderKeepsLineCount(t *testing.T) {
	md := "a\nb\nc"
	assert.Equal(t, 3, len(strings.Split(string(newTestRenderer().expand([]byte(md))), "\n")))
}

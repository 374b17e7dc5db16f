package player

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Frame renders the Spotify iframe for src at the given dimensions.
// src is written as-is apart from attribute escaping.
func Frame(src string, d Dimensions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, FrameHTML(src, d))
		return err
	})
}

// FrameHTML is the string form of Frame, for callers that splice HTML into
// a larger document.
func FrameHTML(src string, d Dimensions) string {
	return `<iframe frameborder="0" allowtransparency="true" allow="encrypted-media" title="Spotify" loading="lazy"` +
		` src="` + templ.EscapeString(src) + `"` +
		` width="` + d.Width.String() + `"` +
		` height="` + strconv.Itoa(d.Height) + `"></iframe>`
}

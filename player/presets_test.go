package player

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownPresets(t *testing.T) {
	p := NewPresets()
	tests := []struct {
		name       string
		wantWidth  string
		wantHeight int
	}{
		{"large", "100%", 380},
		{"compact", "300", 80},
		{"", "100%", 380},
		{"  compact ", "300", 80},
	}
	for _, tt := range tests {
		d, err := p.Resolve(tt.name)
		require.NoError(t, err, "Resolve(%q)", tt.name)
		assert.Equal(t, tt.wantWidth, d.Width.String(), "width for %q", tt.name)
		assert.Equal(t, tt.wantHeight, d.Height, "height for %q", tt.name)
	}
}

func TestResolveDefaultMatchesLarge(t *testing.T) {
	p := NewPresets()
	def, err := p.Resolve("")
	require.NoError(t, err)
	large, err := p.Resolve(string(Large))
	require.NoError(t, err)
	assert.Equal(t, large, def)
	assert.Equal(t, Dimensions{Width: Percent(100), Height: 380}, large)
}

func TestResolveUnknownFallsBackToLarge(t *testing.T) {
	p := NewPresets()
	d, err := p.Resolve("huge")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSizePreset))
	assert.Contains(t, err.Error(), `"huge"`)
	assert.Equal(t, Dimensions{Width: Percent(100), Height: 380}, d)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	_, err := NewPresets().Resolve("Compact")
	assert.ErrorIs(t, err, ErrUnknownSizePreset)
}

func TestSizes(t *testing.T) {
	assert.Equal(t, []Size{Compact, Large}, NewPresets().Sizes())
}

func TestLengthString(t *testing.T) {
	assert.Equal(t, "300", Pixels(300).String())
	assert.Equal(t, "100%", Percent(100).String())
	assert.NotEqual(t, Pixels(100), Percent(100))
}

func TestFrame(t *testing.T) {
	d, err := NewPresets().Resolve("compact")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Frame("https://open.spotify.com/embed/track/abc?a=1&b=2", d).Render(context.Background(), &buf))
	got := buf.String()

	assert.Contains(t, got, `src="https://open.spotify.com/embed/track/abc?a=1&amp;b=2"`)
	assert.Contains(t, got, `width="300"`)
	assert.Contains(t, got, `height="80"`)
	assert.Contains(t, got, `allow="encrypted-media"`)
	assert.Contains(t, got, `title="Spotify"`)
}

func TestFrameEscapesSrc(t *testing.T) {
	got := FrameHTML(`https://x.test/"><script>`, Dimensions{Width: Percent(100), Height: 380})
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, `width="100%"`)
}

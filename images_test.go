package folio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolharsam/folio/views"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessImageResizesWideImages(t *testing.T) {
	img, data, err := processImage(bytes.NewReader(testPNG(t, 1600, 400)), "Album Cover.PNG")
	require.NoError(t, err)
	assert.Equal(t, "album-cover.jpg", img.Filename)
	assert.Equal(t, "Album Cover.PNG", img.OriginalName)
	assert.Equal(t, maxImageWidth, img.Width)
	assert.Equal(t, 200, img.Height)
	assert.Equal(t, len(data), img.Size)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, decoded.Bounds().Dx())
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	img, _, err := processImage(bytes.NewReader(testPNG(t, 300, 80)), "!!!.png")
	require.NoError(t, err)
	assert.Equal(t, "image.jpg", img.Filename)
	assert.Equal(t, 300, img.Width)
	assert.Equal(t, 80, img.Height)
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	_, _, err := processImage(strings.NewReader("not an image"), "x.png")
	assert.ErrorContains(t, err, "decode image")
}

func TestEnsureUniqueFilename(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, os.MkdirAll(a.uploadsDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(a.uploadsDir(), "cover.jpg"), []byte("x"), 0o644))
	require.NoError(t, a.Store.SaveImage(views.Image{Filename: "cover-2.jpg", OriginalName: "cover.png"}))

	img := views.Image{Filename: "cover.jpg"}
	require.NoError(t, a.ensureUniqueFilename(&img))
	assert.Equal(t, "cover-3.jpg", img.Filename)
}

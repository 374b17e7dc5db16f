package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Go 1.22: What's new?  ", "go-1-22-what-s-new"},
		{"---", ""},
		{"Ünïcode", "n-code"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://kolharsam.dev", BuildURL("https://kolharsam.dev"))
	assert.Equal(t, "https://kolharsam.dev/blog/a/", BuildURL("https://kolharsam.dev", "blog", "a"))
	assert.Equal(t, "https://kolharsam.dev/about/", BuildURL("https://kolharsam.dev/", "/about/"))
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FilterEmpty([]string{" a ", "", "  ", "b"}))
	assert.Nil(t, FilterEmpty(nil))
}

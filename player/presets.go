// Package player embeds the Spotify play widget with one of a fixed set of
// named frame sizes.
package player

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Size names a frame size preset.
type Size string

const (
	Large   Size = "large"
	Compact Size = "compact"

	// DefaultSize is used when no size is requested or the requested one
	// is unknown.
	DefaultSize = Large
)

// ErrUnknownSizePreset is returned by Presets.Resolve for names that are not
// in the table.
var ErrUnknownSizePreset = errors.New("player: unknown size preset")

// Length is an iframe dimension, either in pixels or as a percentage of the
// containing block.
type Length struct {
	value   int
	percent bool
}

// Pixels returns a pixel length.
func Pixels(n int) Length { return Length{value: n} }

// Percent returns a percentage length.
func Percent(n int) Length { return Length{value: n, percent: true} }

// String formats l as an HTML width/height attribute value ("300", "100%").
func (l Length) String() string {
	if l.percent {
		return strconv.Itoa(l.value) + "%"
	}
	return strconv.Itoa(l.value)
}

// Dimensions is the width/height pair of an embed frame.
type Dimensions struct {
	Width  Length
	Height int
}

// Presets is a read-only lookup table from Size to Dimensions.
// The zero value has no entries; use NewPresets.
type Presets struct {
	table map[Size]Dimensions
}

// NewPresets returns the standard preset table.
func NewPresets() Presets {
	return Presets{table: map[Size]Dimensions{
		Large:   {Width: Percent(100), Height: 380},
		Compact: {Width: Pixels(300), Height: 80},
	}}
}

// Resolve looks up the dimensions for name. A blank name resolves to
// DefaultSize. An unknown name still returns the DefaultSize dimensions,
// together with an error wrapping ErrUnknownSizePreset, so callers can log
// the fallback and keep rendering.
func (p Presets) Resolve(name string) (Dimensions, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return p.table[DefaultSize], nil
	}
	if d, ok := p.table[Size(name)]; ok {
		return d, nil
	}
	return p.table[DefaultSize], fmt.Errorf("%w: %q", ErrUnknownSizePreset, name)
}

// Sizes returns the known preset names in sorted order.
func (p Presets) Sizes() []Size {
	sizes := make([]Size, 0, len(p.table))
	for s := range p.table {
		sizes = append(sizes, s)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}

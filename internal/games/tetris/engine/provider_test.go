package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomProviderIsSeeded(t *testing.T) {
	a := NewRandomProvider(2024, nil)
	b := NewRandomProvider(2024, nil)

	for range 50 {
		assert.Equal(t, a.NextShape(), b.NextShape())
		assert.Equal(t, a.NextColor(), b.NextColor())
	}
}

func TestRandomProviderCoversCatalogAndPalette(t *testing.T) {
	p := NewRandomProvider(1, []Color{ColorOrange, ColorPurple})
	shapes := make(map[Shape]int)
	colors := make(map[Color]int)

	for range 2000 {
		s := p.NextShape()
		assert.True(t, s.Valid())
		shapes[s]++
		colors[p.NextColor()]++
	}

	assert.Len(t, shapes, ShapeCount)
	assert.Len(t, colors, 2)
	for s, n := range shapes {
		assert.Greater(t, n, 150, "shape %s drawn too rarely for a uniform pick", s)
	}
}

func TestScriptedProviderCycles(t *testing.T) {
	p := NewScriptedProvider([]Shape{ShapeI, ShapeZ}, []Color{ColorCyan})

	got := []Shape{p.NextShape(), p.NextShape(), p.NextShape()}
	assert.Equal(t, []Shape{ShapeI, ShapeZ, ShapeI}, got)
	assert.Equal(t, ColorCyan, p.NextColor())
	assert.Equal(t, ColorCyan, p.NextColor())
}

package engine

import "math/rand"

// Provider supplies the shape and colour of every new piece.
// Sessions draw from it at creation (active, then lookahead) and once per landing.
type Provider interface {
	NextShape() Shape
	NextColor() Color
}

// RandomProvider picks shapes and colours uniformly with a seeded generator,
// so the same seed always yields the same piece sequence.
type RandomProvider struct {
	rng     *rand.Rand
	palette []Color
}

// NewRandomProvider creates a provider seeded with seed.
// An empty palette falls back to DefaultPalette.
func NewRandomProvider(seed int64, palette []Color) *RandomProvider {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &RandomProvider{
		rng:     rand.New(rand.NewSource(seed)),
		palette: append([]Color(nil), palette...),
	}
}

// NextShape returns a uniformly chosen catalog shape.
func (p *RandomProvider) NextShape() Shape {
	return Shape(p.rng.Intn(ShapeCount))
}

// NextColor returns a uniformly chosen palette colour.
func (p *RandomProvider) NextColor() Color {
	return p.palette[p.rng.Intn(len(p.palette))]
}

// ScriptedProvider replays fixed shape and colour sequences, wrapping around
// when either is exhausted.
type ScriptedProvider struct {
	shapes []Shape
	colors []Color
	si, ci int
}

// NewScriptedProvider creates a provider cycling through shapes and colors.
// Empty sequences default to ShapeO and ColorRed.
func NewScriptedProvider(shapes []Shape, colors []Color) *ScriptedProvider {
	if len(shapes) == 0 {
		shapes = []Shape{ShapeO}
	}
	if len(colors) == 0 {
		colors = []Color{ColorRed}
	}
	return &ScriptedProvider{
		shapes: append([]Shape(nil), shapes...),
		colors: append([]Color(nil), colors...),
	}
}

// NextShape returns the next scripted shape.
func (p *ScriptedProvider) NextShape() Shape {
	s := p.shapes[p.si%len(p.shapes)]
	p.si++
	return s
}

// NextColor returns the next scripted colour.
func (p *ScriptedProvider) NextColor() Color {
	c := p.colors[p.ci%len(p.colors)]
	p.ci++
	return c
}

package easel

import (
	"slices"

	"github.com/google/uuid"
)

// LayerKind identifies a layer variant. The values double as the type
// tags in saved documents.
type LayerKind string

const (
	LayerKindRaster LayerKind = "raster"
	LayerKindVector LayerKind = "vector"
	LayerKindText   LayerKind = "text"
)

// Layer is the contract shared by all layer variants. A layer is an
// ordered, named unit of content with visibility, opacity, blend
// mode, lock state and a composite-time offset.
//
// The offset is applied only when compositing: changing it never
// touches pixel data, so offset moves stay lossless even when content
// crosses the document edges.
type Layer interface {
	// ID returns the layer's stable identifier. Ids survive
	// reordering and serialization round trips.
	ID() string

	// Kind returns the variant tag used for serialization dispatch.
	Kind() LayerKind

	Name() string
	SetName(name string)

	Visible() bool
	SetVisible(visible bool)

	// Locked layers refuse mutating operations.
	Locked() bool
	SetLocked(locked bool)

	// Opacity is the layer-wide alpha in [0, 1].
	Opacity() float64
	SetOpacity(opacity float64)

	BlendMode() BlendMode
	SetBlendMode(mode BlendMode)

	// Offset returns the layer's composite-time translation.
	Offset() (x, y int)
	SetOffset(x, y int)

	// Width and Height are the dimensions of the layer's surface.
	Width() int
	Height() int

	// Surface returns the layer's pixel representation for
	// compositing, regenerating any stale cache first.
	Surface() *Pixmap

	// Effects returns the layer's effect stack, applied around the
	// content at composite time.
	Effects() []LayerEffect

	// AddEffect appends an effect to the stack. A locked layer
	// refuses the effect and reports false.
	AddEffect(e LayerEffect) bool

	// RemoveEffect deletes an effect by id. Unknown ids and locked
	// layers report false.
	RemoveEffect(id string) bool

	// EffectByID returns the effect with the given id, or nil.
	EffectByID(id string) LayerEffect

	// EffectsExpansion reports how far past the surface the enabled
	// effects paint.
	EffectsExpansion() Expansion

	// Snapshot returns the layer's serialized form.
	Snapshot() *LayerSnapshot

	// Clone returns a deep copy preserving the id. Use Document's
	// DuplicateLayer for a copy with a fresh id.
	Clone() Layer

	setID(id string)
	setEffects(effects []LayerEffect)
}

// newLayerID returns a fresh unique layer identifier.
func newLayerID() string {
	return "layer-" + uuid.NewString()
}

// baseLayer carries the properties shared by all layer variants.
type baseLayer struct {
	id        string
	name      string
	visible   bool
	locked    bool
	opacity   float64
	blendMode BlendMode
	offsetX   int
	offsetY   int
	effects   []LayerEffect
}

func newBaseLayer(name string) baseLayer {
	return baseLayer{
		id:      newLayerID(),
		name:    name,
		visible: true,
		opacity: 1,
	}
}

func (b *baseLayer) ID() string       { return b.id }
func (b *baseLayer) setID(id string)  { b.id = id }
func (b *baseLayer) Name() string     { return b.name }
func (b *baseLayer) SetName(n string) { b.name = n }

func (b *baseLayer) Visible() bool        { return b.visible }
func (b *baseLayer) SetVisible(v bool)    { b.visible = v }
func (b *baseLayer) Locked() bool         { return b.locked }
func (b *baseLayer) SetLocked(l bool)     { b.locked = l }
func (b *baseLayer) Opacity() float64     { return b.opacity }
func (b *baseLayer) BlendMode() BlendMode { return b.blendMode }

// SetOpacity clamps to [0, 1].
func (b *baseLayer) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	b.opacity = o
}

func (b *baseLayer) SetBlendMode(m BlendMode) { b.blendMode = m }

func (b *baseLayer) Offset() (int, int) { return b.offsetX, b.offsetY }

func (b *baseLayer) SetOffset(x, y int) {
	b.offsetX = x
	b.offsetY = y
}

// Effects returns the effect stack, bottom to top.
func (b *baseLayer) Effects() []LayerEffect { return b.effects }

// AddEffect appends an effect to the stack. A locked layer refuses
// the effect and reports false.
func (b *baseLayer) AddEffect(e LayerEffect) bool {
	if b.locked {
		return false
	}
	b.effects = append(b.effects, e)
	return true
}

// RemoveEffect deletes an effect by id. Unknown ids and locked layers
// report false.
func (b *baseLayer) RemoveEffect(id string) bool {
	if b.locked {
		return false
	}
	for i, e := range b.effects {
		if e.ID() == id {
			b.effects = slices.Delete(b.effects, i, i+1)
			return true
		}
	}
	return false
}

// EffectByID returns the effect with the given id, or nil.
func (b *baseLayer) EffectByID(id string) LayerEffect {
	for _, e := range b.effects {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// setEffects replaces the effect stack wholesale. Used when restoring
// history state and deserializing, so it bypasses the lock.
func (b *baseLayer) setEffects(effects []LayerEffect) {
	b.effects = effects
}

// EffectsExpansion reports how far past the surface the enabled
// effects paint, per edge. Tools use it to size the region a layer
// can dirty.
func (b *baseLayer) EffectsExpansion() Expansion {
	return combinedExpansion(b.effects)
}

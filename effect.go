package easel

import (
	"fmt"

	"github.com/google/uuid"
)

// EffectKind identifies a layer effect variant. The values double as
// the type tags in saved documents.
type EffectKind string

const (
	EffectDropShadow   EffectKind = "dropShadow"
	EffectInnerShadow  EffectKind = "innerShadow"
	EffectOuterGlow    EffectKind = "outerGlow"
	EffectInnerGlow    EffectKind = "innerGlow"
	EffectBevelEmboss  EffectKind = "bevelEmboss"
	EffectStroke       EffectKind = "stroke"
	EffectColorOverlay EffectKind = "colorOverlay"
)

// Expansion is the margin, in pixels per edge, that an effect paints
// beyond the layer's own surface. Compositing sizes the effect's
// scratch buffers from it, so an effect that reports too little gets
// clipped.
type Expansion struct {
	Left, Top, Right, Bottom int
}

// union returns the per-edge maximum of two expansions.
func (e Expansion) union(o Expansion) Expansion {
	return Expansion{
		Left:   max(e.Left, o.Left),
		Top:    max(e.Top, o.Top),
		Right:  max(e.Right, o.Right),
		Bottom: max(e.Bottom, o.Bottom),
	}
}

// LayerEffect is a non-destructive styling pass applied to a layer at
// composite time. Effects never touch the layer's pixels; disabling or
// removing one restores the plain content.
//
// The stack renders in a fixed order around the content: drop shadows
// and outer glows behind it, everything else on top.
type LayerEffect interface {
	// ID returns the effect's stable identifier.
	ID() string

	// Kind returns the variant tag used for serialization dispatch.
	Kind() EffectKind

	// Enabled effects render; disabled ones stay in the stack but
	// contribute nothing.
	Enabled() bool
	SetEnabled(enabled bool)

	BlendMode() BlendMode
	SetBlendMode(mode BlendMode)

	// Opacity is the effect-wide alpha in [0, 1], applied on top of
	// any per-effect color opacity.
	Opacity() float64
	SetOpacity(opacity float64)

	// Expansion reports how far past the layer surface the effect
	// paints.
	Expansion() Expansion

	// Snapshot returns the effect's serialized form.
	Snapshot() *EffectSnapshot

	// Clone returns a copy preserving the id.
	Clone() LayerEffect

	setID(id string)
}

// newEffectID returns a fresh unique effect identifier.
func newEffectID() string {
	return "effect-" + uuid.NewString()
}

// baseEffect carries the properties shared by all effect variants.
type baseEffect struct {
	id        string
	enabled   bool
	blendMode BlendMode
	opacity   float64
}

func newBaseEffect() baseEffect {
	return baseEffect{
		id:      newEffectID(),
		enabled: true,
		opacity: 1,
	}
}

func (b *baseEffect) ID() string            { return b.id }
func (b *baseEffect) setID(id string)       { b.id = id }
func (b *baseEffect) Enabled() bool         { return b.enabled }
func (b *baseEffect) SetEnabled(e bool)     { b.enabled = e }
func (b *baseEffect) BlendMode() BlendMode  { return b.blendMode }
func (b *baseEffect) SetBlendMode(m BlendMode) { b.blendMode = m }
func (b *baseEffect) Opacity() float64      { return b.opacity }

// SetOpacity clamps to [0, 1].
func (b *baseEffect) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	b.opacity = o
}

// effectSnapshotBase fills the properties every effect variant shares.
func effectSnapshotBase(e LayerEffect) *EffectSnapshot {
	return &EffectSnapshot{
		ID:        e.ID(),
		Type:      e.Kind(),
		Enabled:   e.Enabled(),
		BlendMode: e.BlendMode(),
		Opacity:   e.Opacity(),
	}
}

func baseEffectFromSnapshot(s *EffectSnapshot) baseEffect {
	b := baseEffect{
		id:        s.ID,
		enabled:   s.Enabled,
		blendMode: s.BlendMode,
	}
	b.opacity = 1
	bp := &b
	bp.SetOpacity(s.Opacity)
	return b
}

var _ LayerEffect = (*DropShadowEffect)(nil)

// DropShadowEffect casts a blurred, offset copy of the layer's
// silhouette behind the content.
type DropShadowEffect struct {
	baseEffect

	OffsetX int
	OffsetY int
	Blur    int
	Spread  int
	Color   RGBA
	// ColorOpacity scales the shadow alpha before the effect opacity.
	ColorOpacity float64
}

// NewDropShadowEffect creates a drop shadow with the stock settings:
// 4px down-right offset, 5px blur, three-quarter black.
func NewDropShadowEffect() *DropShadowEffect {
	return &DropShadowEffect{
		baseEffect:   newBaseEffect(),
		OffsetX:      4,
		OffsetY:      4,
		Blur:         5,
		Color:        RGBA{A: 1},
		ColorOpacity: 0.75,
	}
}

// Kind returns EffectDropShadow.
func (e *DropShadowEffect) Kind() EffectKind { return EffectDropShadow }

// Expansion grows asymmetrically: the offset pushes the shadow margin
// toward one corner and shrinks the opposite one.
func (e *DropShadowEffect) Expansion() Expansion {
	expand := e.Blur*3 + abs(e.Spread)
	return Expansion{
		Left:   max(0, expand-e.OffsetX),
		Top:    max(0, expand-e.OffsetY),
		Right:  max(0, expand+e.OffsetX),
		Bottom: max(0, expand+e.OffsetY),
	}
}

// Clone returns a copy preserving the id.
func (e *DropShadowEffect) Clone() LayerEffect {
	dup := *e
	return &dup
}

var _ LayerEffect = (*InnerShadowEffect)(nil)

// InnerShadowEffect shades the inside of the layer's content edges, as
// if the content were cut out of the canvas.
type InnerShadowEffect struct {
	baseEffect

	OffsetX int
	OffsetY int
	Blur    int
	// Choke hardens the shadow by shrinking it inward before the blur.
	Choke        int
	Color        RGBA
	ColorOpacity float64
}

// NewInnerShadowEffect creates an inner shadow with the stock
// settings: 2px down-right offset, 5px blur, three-quarter black.
func NewInnerShadowEffect() *InnerShadowEffect {
	return &InnerShadowEffect{
		baseEffect:   newBaseEffect(),
		OffsetX:      2,
		OffsetY:      2,
		Blur:         5,
		Color:        RGBA{A: 1},
		ColorOpacity: 0.75,
	}
}

// Kind returns EffectInnerShadow.
func (e *InnerShadowEffect) Kind() EffectKind { return EffectInnerShadow }

// Expansion is zero; the shadow stays inside the content.
func (e *InnerShadowEffect) Expansion() Expansion { return Expansion{} }

// Clone returns a copy preserving the id.
func (e *InnerShadowEffect) Clone() LayerEffect {
	dup := *e
	return &dup
}

var _ LayerEffect = (*OuterGlowEffect)(nil)

// OuterGlowEffect radiates a colored halo outward from the layer's
// content edges.
type OuterGlowEffect struct {
	baseEffect

	Blur int
	// Spread widens the solid core of the glow before the blur.
	Spread       int
	Color        RGBA
	ColorOpacity float64
}

// NewOuterGlowEffect creates an outer glow with the stock settings:
// 10px blur, three-quarter yellow.
func NewOuterGlowEffect() *OuterGlowEffect {
	return &OuterGlowEffect{
		baseEffect:   newBaseEffect(),
		Blur:         10,
		Color:        RGBA{R: 1, G: 1, A: 1},
		ColorOpacity: 0.75,
	}
}

// Kind returns EffectOuterGlow.
func (e *OuterGlowEffect) Kind() EffectKind { return EffectOuterGlow }

// Expansion is uniform on all edges.
func (e *OuterGlowEffect) Expansion() Expansion {
	expand := e.Blur*3 + e.Spread
	return Expansion{Left: expand, Top: expand, Right: expand, Bottom: expand}
}

// Clone returns a copy preserving the id.
func (e *OuterGlowEffect) Clone() LayerEffect {
	dup := *e
	return &dup
}

// GlowSource selects where an inner glow emanates from.
type GlowSource string

const (
	// GlowEdge glows inward from the content edges.
	GlowEdge GlowSource = "edge"
	// GlowCenter glows outward from the content interior.
	GlowCenter GlowSource = "center"
)

var _ LayerEffect = (*InnerGlowEffect)(nil)

// InnerGlowEffect radiates a colored glow inside the layer's content
// edges.
type InnerGlowEffect struct {
	baseEffect

	Blur         int
	Choke        int
	Color        RGBA
	ColorOpacity float64
	Source       GlowSource
}

// NewInnerGlowEffect creates an inner glow with the stock settings:
// 10px blur, three-quarter yellow, glowing from the edges.
func NewInnerGlowEffect() *InnerGlowEffect {
	return &InnerGlowEffect{
		baseEffect:   newBaseEffect(),
		Blur:         10,
		Color:        RGBA{R: 1, G: 1, A: 1},
		ColorOpacity: 0.75,
		Source:       GlowEdge,
	}
}

// Kind returns EffectInnerGlow.
func (e *InnerGlowEffect) Kind() EffectKind { return EffectInnerGlow }

// Expansion is zero; the glow stays inside the content.
func (e *InnerGlowEffect) Expansion() Expansion { return Expansion{} }

// Clone returns a copy preserving the id.
func (e *InnerGlowEffect) Clone() LayerEffect {
	dup := *e
	return &dup
}

// BevelStyle selects where a bevel carves its edges.
type BevelStyle string

const (
	BevelStyleInner  BevelStyle = "innerBevel"
	BevelStyleOuter  BevelStyle = "outerBevel"
	BevelStyleEmboss BevelStyle = "emboss"
	BevelStylePillow BevelStyle = "pillowEmboss"
)

// BevelDirection flips a bevel between raised and sunken.
type BevelDirection string

const (
	BevelUp   BevelDirection = "up"
	BevelDown BevelDirection = "down"
)

var _ LayerEffect = (*BevelEmbossEffect)(nil)

// BevelEmbossEffect shades the content edges with a highlight and a
// shadow so the layer reads as raised or carved.
type BevelEmbossEffect struct {
	baseEffect

	Style     BevelStyle
	Depth     int
	Direction BevelDirection
	Size      int
	// Soften blurs the computed highlight and shadow bands.
	Soften int
	// Angle is the light direction in degrees, counter-clockwise from
	// the positive x axis.
	Angle            int
	Altitude         int
	HighlightColor   RGBA
	HighlightOpacity float64
	ShadowColor      RGBA
	ShadowOpacity    float64
}

// NewBevelEmbossEffect creates a bevel with the stock settings: inner
// bevel, 5px size, lit from the upper left.
func NewBevelEmbossEffect() *BevelEmbossEffect {
	return &BevelEmbossEffect{
		baseEffect:       newBaseEffect(),
		Style:            BevelStyleInner,
		Depth:            3,
		Direction:        BevelUp,
		Size:             5,
		Angle:            120,
		Altitude:         30,
		HighlightColor:   RGBA{R: 1, G: 1, B: 1, A: 1},
		HighlightOpacity: 0.75,
		ShadowColor:      RGBA{A: 1},
		ShadowOpacity:    0.75,
	}
}

// Kind returns EffectBevelEmboss.
func (e *BevelEmbossEffect) Kind() EffectKind { return EffectBevelEmboss }

// Expansion is zero except for the outer bevel style, which carves
// outside the content.
func (e *BevelEmbossEffect) Expansion() Expansion {
	if e.Style == BevelStyleOuter {
		return Expansion{Left: e.Size, Top: e.Size, Right: e.Size, Bottom: e.Size}
	}
	return Expansion{}
}

// Clone returns a copy preserving the id.
func (e *BevelEmbossEffect) Clone() LayerEffect {
	dup := *e
	return &dup
}

// StrokePosition selects which side of the content edge a stroke
// occupies.
type StrokePosition string

const (
	StrokeOutside StrokePosition = "outside"
	StrokeInside  StrokePosition = "inside"
	StrokeCenter  StrokePosition = "center"
)

var _ LayerEffect = (*StrokeEffect)(nil)

// StrokeEffect outlines the layer's content silhouette.
type StrokeEffect struct {
	baseEffect

	Size         int
	Position     StrokePosition
	Color        RGBA
	ColorOpacity float64
}

// NewStrokeEffect creates a stroke with the stock settings: 3px solid
// black outside the content.
func NewStrokeEffect() *StrokeEffect {
	return &StrokeEffect{
		baseEffect:   newBaseEffect(),
		Size:         3,
		Position:     StrokeOutside,
		Color:        RGBA{A: 1},
		ColorOpacity: 1,
	}
}

// Kind returns EffectStroke.
func (e *StrokeEffect) Kind() EffectKind { return EffectStroke }

// Expansion depends on the position: outside strokes need the full
// size, centered ones half, inside ones nothing.
func (e *StrokeEffect) Expansion() Expansion {
	switch e.Position {
	case StrokeOutside:
		return Expansion{Left: e.Size, Top: e.Size, Right: e.Size, Bottom: e.Size}
	case StrokeCenter:
		half := e.Size/2 + 1
		return Expansion{Left: half, Top: half, Right: half, Bottom: half}
	}
	return Expansion{}
}

// Clone returns a copy preserving the id.
func (e *StrokeEffect) Clone() LayerEffect {
	dup := *e
	return &dup
}

var _ LayerEffect = (*ColorOverlayEffect)(nil)

// ColorOverlayEffect paints a solid color over the layer's content,
// clipped to its silhouette.
type ColorOverlayEffect struct {
	baseEffect

	Color RGBA
}

// NewColorOverlayEffect creates a red overlay.
func NewColorOverlayEffect() *ColorOverlayEffect {
	return &ColorOverlayEffect{
		baseEffect: newBaseEffect(),
		Color:      RGBA{R: 1, A: 1},
	}
}

// Kind returns EffectColorOverlay.
func (e *ColorOverlayEffect) Kind() EffectKind { return EffectColorOverlay }

// Expansion is zero; the overlay never leaves the content.
func (e *ColorOverlayEffect) Expansion() Expansion { return Expansion{} }

// Clone returns a copy preserving the id.
func (e *ColorOverlayEffect) Clone() LayerEffect {
	dup := *e
	return &dup
}

// cloneEffects deep-copies an effect stack.
func cloneEffects(effects []LayerEffect) []LayerEffect {
	if len(effects) == 0 {
		return nil
	}
	out := make([]LayerEffect, len(effects))
	for i, e := range effects {
		out[i] = e.Clone()
	}
	return out
}

// combinedExpansion unions the expansion of every enabled effect.
func combinedExpansion(effects []LayerEffect) Expansion {
	var exp Expansion
	for _, e := range effects {
		if e.Enabled() {
			exp = exp.union(e.Expansion())
		}
	}
	return exp
}

// effectRenderRank orders a stack for compositing: shadows and glows
// behind the content first, then the passes painted over it.
func effectRenderRank(k EffectKind) int {
	switch k {
	case EffectDropShadow:
		return 0
	case EffectOuterGlow:
		return 1
	case EffectInnerShadow:
		return 2
	case EffectInnerGlow:
		return 3
	case EffectBevelEmboss:
		return 4
	case EffectColorOverlay:
		return 5
	case EffectStroke:
		return 6
	}
	return 7
}

// effectBehindContent reports whether the effect renders under the
// layer content.
func effectBehindContent(k EffectKind) bool {
	return k == EffectDropShadow || k == EffectOuterGlow
}

// EffectSnapshot is the serialized form of one layer effect. The Type
// tag selects which of the parameter fields are meaningful; the rest
// stay at their zero values and are omitted from JSON.
type EffectSnapshot struct {
	ID        string     `json:"id"`
	Type      EffectKind `json:"type"`
	Enabled   bool       `json:"enabled"`
	BlendMode BlendMode  `json:"blendMode"`
	Opacity   float64    `json:"opacity"`

	OffsetX int `json:"offsetX,omitempty"`
	OffsetY int `json:"offsetY,omitempty"`
	Blur    int `json:"blur,omitempty"`
	Spread  int `json:"spread,omitempty"`
	Choke   int `json:"choke,omitempty"`

	Color        string     `json:"color,omitempty"`
	ColorOpacity float64    `json:"colorOpacity,omitempty"`
	Source       GlowSource `json:"source,omitempty"`

	Size     int            `json:"size,omitempty"`
	Position StrokePosition `json:"position,omitempty"`

	Style            BevelStyle     `json:"style,omitempty"`
	Depth            int            `json:"depth,omitempty"`
	Direction        BevelDirection `json:"direction,omitempty"`
	Soften           int            `json:"soften,omitempty"`
	Angle            int            `json:"angle,omitempty"`
	Altitude         int            `json:"altitude,omitempty"`
	HighlightColor   string         `json:"highlightColor,omitempty"`
	HighlightOpacity float64        `json:"highlightOpacity,omitempty"`
	ShadowColor      string         `json:"shadowColor,omitempty"`
	ShadowOpacity    float64        `json:"shadowOpacity,omitempty"`
}

// Snapshot returns the effect's serialized form.
func (e *DropShadowEffect) Snapshot() *EffectSnapshot {
	s := effectSnapshotBase(e)
	s.OffsetX, s.OffsetY = e.OffsetX, e.OffsetY
	s.Blur, s.Spread = e.Blur, e.Spread
	s.Color = e.Color.HexString()
	s.ColorOpacity = e.ColorOpacity
	return s
}

// Snapshot returns the effect's serialized form.
func (e *InnerShadowEffect) Snapshot() *EffectSnapshot {
	s := effectSnapshotBase(e)
	s.OffsetX, s.OffsetY = e.OffsetX, e.OffsetY
	s.Blur, s.Choke = e.Blur, e.Choke
	s.Color = e.Color.HexString()
	s.ColorOpacity = e.ColorOpacity
	return s
}

// Snapshot returns the effect's serialized form.
func (e *OuterGlowEffect) Snapshot() *EffectSnapshot {
	s := effectSnapshotBase(e)
	s.Blur, s.Spread = e.Blur, e.Spread
	s.Color = e.Color.HexString()
	s.ColorOpacity = e.ColorOpacity
	return s
}

// Snapshot returns the effect's serialized form.
func (e *InnerGlowEffect) Snapshot() *EffectSnapshot {
	s := effectSnapshotBase(e)
	s.Blur, s.Choke = e.Blur, e.Choke
	s.Color = e.Color.HexString()
	s.ColorOpacity = e.ColorOpacity
	s.Source = e.Source
	return s
}

// Snapshot returns the effect's serialized form.
func (e *BevelEmbossEffect) Snapshot() *EffectSnapshot {
	s := effectSnapshotBase(e)
	s.Style = e.Style
	s.Depth = e.Depth
	s.Direction = e.Direction
	s.Size = e.Size
	s.Soften = e.Soften
	s.Angle = e.Angle
	s.Altitude = e.Altitude
	s.HighlightColor = e.HighlightColor.HexString()
	s.HighlightOpacity = e.HighlightOpacity
	s.ShadowColor = e.ShadowColor.HexString()
	s.ShadowOpacity = e.ShadowOpacity
	return s
}

// Snapshot returns the effect's serialized form.
func (e *StrokeEffect) Snapshot() *EffectSnapshot {
	s := effectSnapshotBase(e)
	s.Size = e.Size
	s.Position = e.Position
	s.Color = e.Color.HexString()
	s.ColorOpacity = e.ColorOpacity
	return s
}

// Snapshot returns the effect's serialized form.
func (e *ColorOverlayEffect) Snapshot() *EffectSnapshot {
	s := effectSnapshotBase(e)
	s.Color = e.Color.HexString()
	return s
}

// EffectFromSnapshot rebuilds an effect from its serialized form,
// preserving the id. Parameter values are taken as stored; the stock
// defaults apply only to effects built by the constructors.
func EffectFromSnapshot(s *EffectSnapshot) (LayerEffect, error) {
	switch s.Type {
	case EffectDropShadow:
		return &DropShadowEffect{
			baseEffect:   baseEffectFromSnapshot(s),
			OffsetX:      s.OffsetX,
			OffsetY:      s.OffsetY,
			Blur:         s.Blur,
			Spread:       s.Spread,
			Color:        Hex(s.Color),
			ColorOpacity: s.ColorOpacity,
		}, nil

	case EffectInnerShadow:
		return &InnerShadowEffect{
			baseEffect:   baseEffectFromSnapshot(s),
			OffsetX:      s.OffsetX,
			OffsetY:      s.OffsetY,
			Blur:         s.Blur,
			Choke:        s.Choke,
			Color:        Hex(s.Color),
			ColorOpacity: s.ColorOpacity,
		}, nil

	case EffectOuterGlow:
		return &OuterGlowEffect{
			baseEffect:   baseEffectFromSnapshot(s),
			Blur:         s.Blur,
			Spread:       s.Spread,
			Color:        Hex(s.Color),
			ColorOpacity: s.ColorOpacity,
		}, nil

	case EffectInnerGlow:
		e := &InnerGlowEffect{
			baseEffect:   baseEffectFromSnapshot(s),
			Blur:         s.Blur,
			Choke:        s.Choke,
			Color:        Hex(s.Color),
			ColorOpacity: s.ColorOpacity,
			Source:       s.Source,
		}
		if e.Source == "" {
			e.Source = GlowEdge
		}
		return e, nil

	case EffectBevelEmboss:
		e := &BevelEmbossEffect{
			baseEffect:       baseEffectFromSnapshot(s),
			Style:            s.Style,
			Depth:            s.Depth,
			Direction:        s.Direction,
			Size:             s.Size,
			Soften:           s.Soften,
			Angle:            s.Angle,
			Altitude:         s.Altitude,
			HighlightColor:   Hex(s.HighlightColor),
			HighlightOpacity: s.HighlightOpacity,
			ShadowColor:      Hex(s.ShadowColor),
			ShadowOpacity:    s.ShadowOpacity,
		}
		if e.Style == "" {
			e.Style = BevelStyleInner
		}
		if e.Direction == "" {
			e.Direction = BevelUp
		}
		return e, nil

	case EffectStroke:
		e := &StrokeEffect{
			baseEffect:   baseEffectFromSnapshot(s),
			Size:         s.Size,
			Position:     s.Position,
			Color:        Hex(s.Color),
			ColorOpacity: s.ColorOpacity,
		}
		if e.Position == "" {
			e.Position = StrokeOutside
		}
		return e, nil

	case EffectColorOverlay:
		return &ColorOverlayEffect{
			baseEffect: baseEffectFromSnapshot(s),
			Color:      Hex(s.Color),
		}, nil

	default:
		return nil, fmt.Errorf("easel: unknown effect type %q", s.Type)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

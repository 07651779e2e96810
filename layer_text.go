package easel

import (
	"fmt"
	"image"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// textRenderScale is the supersampling factor for text rendering.
// Glyphs are rasterized at 4x resolution and downscaled with a
// Catmull-Rom kernel, which keeps thin strokes from breaking up.
const textRenderScale = 4

// textPadding is the transparent margin, in canvas pixels, added around
// the measured text on every side.
const textPadding = 4

// Dimensions of the placeholder buffer for a layer with no text.
const (
	emptyTextWidth  = 100
	emptyTextHeight = 32
)

// FontFamily selects one of the built-in Go font faces.
type FontFamily uint8

const (
	// FontRegular is the Go regular face.
	FontRegular FontFamily = iota
	// FontBold is the Go bold face.
	FontBold
	// FontItalic is the Go italic face.
	FontItalic
	// FontMono is the Go mono face.
	FontMono
)

var fontFamilyNames = [...]string{
	FontRegular: "regular",
	FontBold:    "bold",
	FontItalic:  "italic",
	FontMono:    "mono",
}

// String returns the family name. Unknown values read as "regular".
func (f FontFamily) String() string {
	if int(f) < len(fontFamilyNames) {
		return fontFamilyNames[f]
	}
	return fontFamilyNames[FontRegular]
}

// ParseFontFamily converts a family name to a FontFamily. The second
// return value reports whether the name was recognized.
func ParseFontFamily(s string) (FontFamily, bool) {
	for i, name := range fontFamilyNames {
		if name == s {
			return FontFamily(i), true
		}
	}
	return FontRegular, false
}

// MarshalText implements encoding.TextMarshaler.
func (f FontFamily) MarshalText() ([]byte, error) {
	if int(f) >= len(fontFamilyNames) {
		return nil, fmt.Errorf("easel: invalid font family %d", f)
	}
	return []byte(fontFamilyNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names fall
// back to FontRegular so documents from newer versions stay loadable.
func (f *FontFamily) UnmarshalText(text []byte) error {
	parsed, _ := ParseFontFamily(string(text))
	*f = parsed
	return nil
}

func (f FontFamily) ttf() []byte {
	switch f {
	case FontBold:
		return gobold.TTF
	case FontItalic:
		return goitalic.TTF
	case FontMono:
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

// fontCache holds parsed font files, one per family. Parsing an sfnt
// file walks every table, so the result is shared across layers.
var fontCache struct {
	mu    sync.Mutex
	fonts map[FontFamily]*opentype.Font
}

func parsedFont(f FontFamily) (*opentype.Font, error) {
	fontCache.mu.Lock()
	defer fontCache.mu.Unlock()

	if fnt, ok := fontCache.fonts[f]; ok {
		return fnt, nil
	}
	fnt, err := opentype.Parse(f.ttf())
	if err != nil {
		return nil, fmt.Errorf("easel: failed to parse %s font: %w", f, err)
	}
	if fontCache.fonts == nil {
		fontCache.fonts = make(map[FontFamily]*opentype.Font)
	}
	fontCache.fonts[f] = fnt
	return fnt, nil
}

var _ Layer = (*TextLayer)(nil)

// TextLayer renders a block of styled text. The layer auto-sizes to the
// measured text plus padding, so setting the text or any style property
// changes the reported dimensions on the next render.
//
// Rendering is cached. Surface regenerates the buffer only after a
// mutation, so repeated composites are cheap.
type TextLayer struct {
	baseLayer

	text       string
	family     FontFamily
	fontSize   float64
	color      RGBA
	lineHeight float64

	cache *Pixmap
	dirty bool
}

// NewTextLayer creates a text layer with the default typography:
// the regular face at 24px, black fill, 1.2 line height.
func NewTextLayer(name, text string) *TextLayer {
	return &TextLayer{
		baseLayer:  newBaseLayer(name),
		text:       text,
		family:     FontRegular,
		fontSize:   24,
		color:      RGBA{A: 1},
		lineHeight: 1.2,
		dirty:      true,
	}
}

// Kind returns LayerKindText.
func (t *TextLayer) Kind() LayerKind { return LayerKindText }

// Text returns the layer's text content.
func (t *TextLayer) Text() string { return t.text }

// SetText replaces the text content. A locked layer refuses the edit
// and reports false.
func (t *TextLayer) SetText(s string) bool {
	if t.locked {
		return false
	}
	if t.text == s {
		return true
	}
	t.text = s
	t.dirty = true
	return true
}

// Font returns the font family.
func (t *TextLayer) Font() FontFamily { return t.family }

// SetFont selects the font family. A locked layer refuses the edit
// and reports false.
func (t *TextLayer) SetFont(f FontFamily) bool {
	if t.locked {
		return false
	}
	if t.family == f {
		return true
	}
	t.family = f
	t.dirty = true
	return true
}

// FontSize returns the font size in canvas pixels.
func (t *TextLayer) FontSize() float64 { return t.fontSize }

// SetFontSize sets the font size. Values below 1 are clamped to 1. A
// locked layer refuses the edit and reports false.
func (t *TextLayer) SetFontSize(size float64) bool {
	if t.locked {
		return false
	}
	if size < 1 {
		size = 1
	}
	if t.fontSize == size {
		return true
	}
	t.fontSize = size
	t.dirty = true
	return true
}

// Color returns the text fill color.
func (t *TextLayer) Color() RGBA { return t.color }

// SetColor sets the text fill color. A locked layer refuses the edit
// and reports false.
func (t *TextLayer) SetColor(c RGBA) bool {
	if t.locked {
		return false
	}
	if t.color == c {
		return true
	}
	t.color = c
	t.dirty = true
	return true
}

// LineHeight returns the line height multiplier.
func (t *TextLayer) LineHeight() float64 { return t.lineHeight }

// SetLineHeight sets the line height multiplier. Values at or below
// zero reset to the default 1.2. A locked layer refuses the edit and
// reports false.
func (t *TextLayer) SetLineHeight(h float64) bool {
	if t.locked {
		return false
	}
	if h <= 0 {
		h = 1.2
	}
	if t.lineHeight == h {
		return true
	}
	t.lineHeight = h
	t.dirty = true
	return true
}

// Width returns the rendered width including padding.
func (t *TextLayer) Width() int { return t.Surface().Width() }

// Height returns the rendered height including padding.
func (t *TextLayer) Height() int { return t.Surface().Height() }

// Surface returns the rendered text buffer, regenerating it if any
// property changed since the last render.
func (t *TextLayer) Surface() *Pixmap {
	if t.dirty || t.cache == nil {
		t.Render()
	}
	return t.cache
}

// Render regenerates the text buffer unconditionally.
func (t *TextLayer) Render() {
	t.cache = t.renderText()
	t.dirty = false
}

func (t *TextLayer) renderText() *Pixmap {
	if strings.TrimRight(t.text, "\n") == "" {
		return NewPixmap(emptyTextWidth, emptyTextHeight)
	}

	fnt, err := parsedFont(t.family)
	if err != nil {
		return NewPixmap(emptyTextWidth, emptyTextHeight)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    t.fontSize * textRenderScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return NewPixmap(emptyTextWidth, emptyTextHeight)
	}
	defer face.Close()

	lines := strings.Split(t.text, "\n")

	// Measure at render scale, report at canvas scale.
	measurer := &font.Drawer{Face: face}
	maxAdvance := 0.0
	for _, line := range lines {
		if line == "" {
			continue
		}
		adv := float64(measurer.MeasureString(line)) / 64.0
		if adv > maxAdvance {
			maxAdvance = adv
		}
	}

	lineH := t.fontSize * t.lineHeight
	width := int(math.Ceil(maxAdvance/textRenderScale)) + textPadding*2
	height := int(math.Ceil(lineH*float64(len(lines)))) + textPadding*2

	hiRes := image.NewNRGBA(image.Rect(0, 0, width*textRenderScale, height*textRenderScale))
	ascent := face.Metrics().Ascent

	for i, line := range lines {
		if line == "" {
			continue
		}
		baseline := fixed.Int26_6((float64(textPadding)+lineH*float64(i))*textRenderScale*64) + ascent
		d := &font.Drawer{
			Dst:  hiRes,
			Src:  image.NewUniform(t.color.Color()),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.I(textPadding * textRenderScale),
				Y: baseline,
			},
		}
		d.DrawString(line)
	}

	return resizePixmap(FromImage(hiRes), width, height, draw.CatmullRom)
}

// Clone returns a deep copy sharing no pixel storage with the
// original. The copy keeps the same id.
func (t *TextLayer) Clone() Layer {
	out := *t
	if t.cache != nil {
		out.cache = t.cache.Clone()
	}
	out.effects = cloneEffects(t.effects)
	return &out
}

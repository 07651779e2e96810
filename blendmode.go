package easel

import (
	"fmt"

	"github.com/easelkit/easel/internal/blend"
)

// BlendMode determines how a layer's colors combine with the
// composited layers beneath it.
type BlendMode uint8

const (
	// BlendNormal is plain alpha compositing.
	BlendNormal BlendMode = iota
	// BlendMultiply multiplies the channel values. Always darkens.
	BlendMultiply
	// BlendScreen is the inverse of multiply. Always lightens.
	BlendScreen
	// BlendOverlay multiplies or screens depending on the backdrop.
	BlendOverlay
	// BlendDarken keeps the darker of the two channel values.
	BlendDarken
	// BlendLighten keeps the lighter of the two channel values.
	BlendLighten
	// BlendColorDodge brightens the backdrop to reflect the source.
	BlendColorDodge
	// BlendColorBurn darkens the backdrop to reflect the source.
	BlendColorBurn
	// BlendHardLight multiplies or screens depending on the source.
	BlendHardLight
	// BlendSoftLight darkens or lightens like a diffused spotlight.
	BlendSoftLight
	// BlendDifference subtracts the darker channel from the lighter.
	BlendDifference
	// BlendExclusion is like difference with lower contrast.
	BlendExclusion
)

// blendModeNames maps modes to the names used in saved documents.
// The names follow the CSS compositing keywords.
var blendModeNames = [...]string{
	BlendNormal:     "normal",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendHardLight:  "hard-light",
	BlendSoftLight:  "soft-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
}

// String returns the mode's document name, such as "color-dodge".
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "normal"
}

// ParseBlendMode returns the blend mode for a document name. Unknown
// names report false and fall back to BlendNormal.
func ParseBlendMode(name string) (BlendMode, bool) {
	for mode, n := range blendModeNames {
		if n == name {
			return BlendMode(mode), true
		}
	}
	return BlendNormal, false
}

// MarshalText implements encoding.TextMarshaler so blend modes
// serialize as their document names.
func (m BlendMode) MarshalText() ([]byte, error) {
	if int(m) >= len(blendModeNames) {
		return nil, fmt.Errorf("easel: invalid blend mode %d", m)
	}
	return []byte(blendModeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names
// fall back to BlendNormal so documents from newer versions still
// load.
func (m *BlendMode) UnmarshalText(text []byte) error {
	mode, _ := ParseBlendMode(string(text))
	*m = mode
	return nil
}

// toInternal converts the public mode to the pixel-level blend mode.
func (m BlendMode) toInternal() blend.Mode {
	switch m {
	case BlendNormal:
		return blend.ModeNormal
	case BlendMultiply:
		return blend.ModeMultiply
	case BlendScreen:
		return blend.ModeScreen
	case BlendOverlay:
		return blend.ModeOverlay
	case BlendDarken:
		return blend.ModeDarken
	case BlendLighten:
		return blend.ModeLighten
	case BlendColorDodge:
		return blend.ModeColorDodge
	case BlendColorBurn:
		return blend.ModeColorBurn
	case BlendHardLight:
		return blend.ModeHardLight
	case BlendSoftLight:
		return blend.ModeSoftLight
	case BlendDifference:
		return blend.ModeDifference
	case BlendExclusion:
		return blend.ModeExclusion
	default:
		return blend.ModeNormal
	}
}

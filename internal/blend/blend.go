// Package blend implements the per-pixel math behind layer blend modes.
//
// Separable blend modes follow the W3C Compositing and Blending Level 1
// specification: each channel is blended independently with B(Cb, Cs),
// where Cb is the backdrop (destination) and Cs the source, and the
// result is then alpha-composited over the backdrop with the source's
// alpha. All channels are straight (non-premultiplied) alpha.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode identifies a blend mode.
type Mode uint8

const (
	// ModeNormal performs standard alpha compositing (source over).
	ModeNormal Mode = iota

	// ModeMultiply multiplies backdrop and source. Always darkens.
	ModeMultiply

	// ModeScreen is the inverse of multiply. Always lightens.
	ModeScreen

	// ModeOverlay multiplies or screens depending on the backdrop.
	ModeOverlay

	// ModeDarken selects the darker channel value.
	ModeDarken

	// ModeLighten selects the lighter channel value.
	ModeLighten

	// ModeColorDodge brightens the backdrop to reflect the source.
	ModeColorDodge

	// ModeColorBurn darkens the backdrop to reflect the source.
	ModeColorBurn

	// ModeHardLight multiplies or screens depending on the source.
	ModeHardLight

	// ModeSoftLight darkens or lightens like a diffused spotlight.
	ModeSoftLight

	// ModeDifference subtracts the darker channel from the lighter.
	ModeDifference

	// ModeExclusion is like difference with lower contrast.
	ModeExclusion
)

const unknownMode = "Unknown"

// String returns a string representation of the blend mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeMultiply:
		return "Multiply"
	case ModeScreen:
		return "Screen"
	case ModeOverlay:
		return "Overlay"
	case ModeDarken:
		return "Darken"
	case ModeLighten:
		return "Lighten"
	case ModeColorDodge:
		return "ColorDodge"
	case ModeColorBurn:
		return "ColorBurn"
	case ModeHardLight:
		return "HardLight"
	case ModeSoftLight:
		return "SoftLight"
	case ModeDifference:
		return "Difference"
	case ModeExclusion:
		return "Exclusion"
	default:
		return unknownMode
	}
}

// channelFunc blends one straight channel pair: B(dst, src) in the
// W3C sense, with dst as the backdrop.
type channelFunc func(src, dst uint8) uint8

// channel returns the per-channel blend function for a mode, or nil
// for ModeNormal and unknown modes.
func (m Mode) channel() channelFunc {
	switch m {
	case ModeMultiply:
		return multiplyChannel
	case ModeScreen:
		return screenChannel
	case ModeOverlay:
		return overlayChannel
	case ModeDarken:
		return darkenChannel
	case ModeLighten:
		return lightenChannel
	case ModeColorDodge:
		return colorDodgeChannel
	case ModeColorBurn:
		return colorBurnChannel
	case ModeHardLight:
		return hardLightChannel
	case ModeSoftLight:
		return softLightChannel
	case ModeDifference:
		return differenceChannel
	case ModeExclusion:
		return exclusionChannel
	default:
		return nil
	}
}

// Pixel blends one source pixel over one destination pixel and returns
// the result. All values are straight (non-premultiplied) alpha.
func Pixel(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA uint8, mode Mode) (r, g, b, a uint8) {
	if srcA == 0 {
		// Fully transparent source, destination unchanged
		return dstR, dstG, dstB, dstA
	}

	fn := mode.channel()
	if fn == nil {
		return compositeOver(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA)
	}

	// Blend the straight color channels first, then composite the
	// blended color over the backdrop with the source alpha.
	blendedR := fn(srcR, dstR)
	blendedG := fn(srcG, dstG)
	blendedB := fn(srcB, dstB)

	return compositeOver(blendedR, blendedG, blendedB, srcA, dstR, dstG, dstB, dstA)
}

// compositeOver performs Porter-Duff source-over on straight-alpha
// channels.
//
// Formula:
//
//	out_a = src_a + dst_a * (1 - src_a)
//	out_c = (src_c * src_a + dst_c * dst_a * (1 - src_a)) / out_a
func compositeOver(srcR, srcG, srcB, srcA, dstR, dstG, dstB, dstA uint8) (r, g, b, a uint8) {
	if srcA == 255 {
		// Fully opaque source, just return source
		return srcR, srcG, srcB, 255
	}

	if dstA == 0 {
		// Transparent destination, just return source
		return srcR, srcG, srcB, srcA
	}

	srcAlpha := float64(srcA) / 255.0
	dstAlpha := float64(dstA) / 255.0

	outAlpha := srcAlpha + dstAlpha*(1-srcAlpha)
	if outAlpha == 0 {
		return 0, 0, 0, 0
	}

	r = uint8((float64(srcR)*srcAlpha + float64(dstR)*dstAlpha*(1-srcAlpha)) / outAlpha)
	g = uint8((float64(srcG)*srcAlpha + float64(dstG)*dstAlpha*(1-srcAlpha)) / outAlpha)
	b = uint8((float64(srcB)*srcAlpha + float64(dstB)*dstAlpha*(1-srcAlpha)) / outAlpha)
	a = uint8(outAlpha*255.0 + 0.5)

	return r, g, b, a
}

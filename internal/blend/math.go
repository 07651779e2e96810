package blend

// div255 divides x by 255 using a fast shift approximation.
//
// Formula: (x + 255) >> 8
//
// The maximum error is +1 for some inputs, which is imperceptible in
// blending. For inputs 0-65025 (255*255) the result stays in [0, 255].
func div255(x uint16) uint16 {
	return (x + 255) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 using the fast
// approximation.
func mulDiv255(a, b uint8) uint8 {
	return uint8(div255(uint16(a) * uint16(b)))
}

// clamp255 clamps a uint16 to byte range [0, 255].
func clamp255(x uint16) uint8 {
	if x > 255 {
		return 255
	}
	return uint8(x)
}

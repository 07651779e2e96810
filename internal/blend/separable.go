package blend

import "math"

// Per-channel blend functions. Each computes B(Cb, Cs) from the W3C
// compositing spec on straight 8-bit channels, with dst as the
// backdrop Cb and src as Cs.

// multiplyChannel computes Cb * Cs.
func multiplyChannel(src, dst uint8) uint8 {
	return mulDiv255(src, dst)
}

// screenChannel computes 1 - (1-Cb) * (1-Cs).
func screenChannel(src, dst uint8) uint8 {
	return 255 - mulDiv255(255-src, 255-dst)
}

// overlayChannel multiplies or screens depending on the backdrop.
//
//	if Cb <= 0.5: 2 * Cb * Cs
//	else:         1 - 2 * (1-Cb) * (1-Cs)
func overlayChannel(src, dst uint8) uint8 {
	if dst < 128 {
		return uint8((2 * int(src) * int(dst)) / 255)
	}
	return uint8(255 - (2*(255-int(src))*(255-int(dst)))/255)
}

// darkenChannel computes min(Cb, Cs).
func darkenChannel(src, dst uint8) uint8 {
	if src < dst {
		return src
	}
	return dst
}

// lightenChannel computes max(Cb, Cs).
func lightenChannel(src, dst uint8) uint8 {
	if src > dst {
		return src
	}
	return dst
}

// colorDodgeChannel computes min(1, Cb / (1-Cs)), with Cs == 1
// mapping to 1.
func colorDodgeChannel(src, dst uint8) uint8 {
	if src == 255 {
		return 255
	}
	result := (uint16(dst) * 255) / uint16(255-src)
	return clamp255(result)
}

// colorBurnChannel computes 1 - min(1, (1-Cb) / Cs), with Cs == 0
// mapping to 0.
func colorBurnChannel(src, dst uint8) uint8 {
	if src == 0 {
		return 0
	}
	result := (uint16(255-dst) * 255) / uint16(src)
	if result > 255 {
		return 0
	}
	return 255 - uint8(result)
}

// hardLightChannel multiplies or screens depending on the source.
//
//	if Cs <= 0.5: Multiply(Cb, 2*Cs)
//	else:         Screen(Cb, 2*Cs - 1)
func hardLightChannel(src, dst uint8) uint8 {
	if src < 128 {
		return uint8((2 * int(src) * int(dst)) / 255)
	}
	return uint8(255 - (2*(255-int(src))*(255-int(dst)))/255)
}

// softLightChannel darkens or lightens depending on the source.
//
//	if Cs <= 0.5: Cb - (1 - 2*Cs) * Cb * (1 - Cb)
//	else:         Cb + (2*Cs - 1) * (D(Cb) - Cb)
//
// where D(x) = ((16*x - 12)*x + 4)*x for x <= 0.25, else sqrt(x).
func softLightChannel(src, dst uint8) uint8 {
	sf := float64(src) / 255.0
	df := float64(dst) / 255.0

	var result float64
	if sf <= 0.5 {
		result = df - (1-2*sf)*df*(1-df)
	} else {
		var dx float64
		if df <= 0.25 {
			dx = ((16*df-12)*df + 4) * df
		} else {
			dx = math.Sqrt(df)
		}
		result = df + (2*sf-1)*(dx-df)
	}

	if result < 0 {
		return 0
	}
	if result > 1 {
		return 255
	}
	return uint8(result*255 + 0.5)
}

// differenceChannel computes |Cb - Cs|.
func differenceChannel(src, dst uint8) uint8 {
	if src > dst {
		return src - dst
	}
	return dst - src
}

// exclusionChannel computes Cb + Cs - 2 * Cb * Cs.
func exclusionChannel(src, dst uint8) uint8 {
	sum := uint16(src) + uint16(dst)
	product := uint16(mulDiv255(src, dst))
	if 2*product > sum {
		return 0
	}
	return clamp255(sum - 2*product)
}

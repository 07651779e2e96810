package easel

import "github.com/easelkit/easel/internal/blend"

// blendSurface composites src onto dst at the given offset with a blend
// mode and a layer opacity. The overlap is clipped on both sides, so
// sources hanging past any edge lose only the off-canvas part.
//
// Opacity scales the source alpha before blending, which matches how
// layer opacity interacts with every blend mode during compositing.
func blendSurface(dst, src *Pixmap, offsetX, offsetY int, mode BlendMode, opacity float64) {
	if src == nil || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	x1 := max(0, offsetX)
	y1 := max(0, offsetY)
	x2 := min(dst.Width(), offsetX+src.Width())
	y2 := min(dst.Height(), offsetY+src.Height())
	if x2 <= x1 || y2 <= y1 {
		return
	}

	m := mode.toInternal()
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			sr, sg, sb, sa := src.RGBA8At(x-offsetX, y-offsetY)
			if sa == 0 {
				continue
			}
			if opacity < 1 {
				sa = uint8(float64(sa)*opacity + 0.5)
				if sa == 0 {
					continue
				}
			}
			dr, dg, db, da := dst.RGBA8At(x, y)
			r, g, b, a := blend.Pixel(sr, sg, sb, sa, dr, dg, db, da, m)
			dst.SetRGBA8(x, y, r, g, b, a)
		}
	}
}

// blendLayer composites one layer's current surface onto dst at the
// layer's offset using the layer's own blend mode and opacity. The
// layer's effect stack renders around the content: shadows and glows
// first, overlays and strokes after.
func blendLayer(dst *Pixmap, l Layer) {
	renderEffects(dst, l, true)
	x, y := l.Offset()
	blendSurface(dst, l.Surface(), x, y, l.BlendMode(), l.Opacity())
	renderEffects(dst, l, false)
}

// mergeVisible composites every visible layer onto dst, bottom to top.
// Hidden layers contribute nothing.
func mergeVisible(dst *Pixmap, layers []Layer) {
	for _, l := range layers {
		if !l.Visible() {
			continue
		}
		blendLayer(dst, l)
	}
}

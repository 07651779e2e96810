package easel

import (
	"image"
	"math"
	"slices"

	"github.com/anthonynsimon/bild/blur"
)

// Effect rendering works on grayscale coverage masks derived from the
// layer surface's alpha channel. Masks carry a margin so blurs and
// dilations have room to bleed past the surface; the margin is
// subtracted again when the tinted result is composited.

// renderEffects composites the half of the layer's effect stack that
// sits on the given side of the content, in the fixed render order.
func renderEffects(dst *Pixmap, l Layer, behind bool) {
	var fx []LayerEffect
	for _, e := range l.Effects() {
		if e.Enabled() && effectBehindContent(e.Kind()) == behind {
			fx = append(fx, e)
		}
	}
	if len(fx) == 0 {
		return
	}
	slices.SortStableFunc(fx, func(a, b LayerEffect) int {
		return effectRenderRank(a.Kind()) - effectRenderRank(b.Kind())
	})

	surf := l.Surface()
	ox, oy := l.Offset()
	for _, e := range fx {
		renderEffect(dst, surf, ox, oy, e)
	}
}

func renderEffect(dst, surf *Pixmap, ox, oy int, e LayerEffect) {
	switch t := e.(type) {
	case *DropShadowEffect:
		renderDropShadow(dst, surf, ox, oy, t)
	case *OuterGlowEffect:
		renderOuterGlow(dst, surf, ox, oy, t)
	case *InnerShadowEffect:
		renderInnerShadow(dst, surf, ox, oy, t)
	case *InnerGlowEffect:
		renderInnerGlow(dst, surf, ox, oy, t)
	case *BevelEmbossEffect:
		renderBevelEmboss(dst, surf, ox, oy, t)
	case *ColorOverlayEffect:
		renderColorOverlay(dst, surf, ox, oy, t)
	case *StrokeEffect:
		renderStroke(dst, surf, ox, oy, t)
	}
}

func renderDropShadow(dst, surf *Pixmap, ox, oy int, e *DropShadowEffect) {
	m := max(0, e.Blur*3+abs(e.Spread))
	mask := silhouette(surf, m)
	mask = growMask(mask, e.Spread)
	mask = blurMask(mask, float64(e.Blur))
	tinted := tintMask(mask, e.Color, e.ColorOpacity)
	blendSurface(dst, tinted, ox-m+e.OffsetX, oy-m+e.OffsetY, e.BlendMode(), e.Opacity())
}

func renderOuterGlow(dst, surf *Pixmap, ox, oy int, e *OuterGlowEffect) {
	m := max(0, e.Blur*3+e.Spread)
	mask := silhouette(surf, m)
	mask = growMask(mask, e.Spread)
	mask = blurMask(mask, float64(e.Blur))
	tinted := tintMask(mask, e.Color, e.ColorOpacity)
	blendSurface(dst, tinted, ox-m, oy-m, e.BlendMode(), e.Opacity())
}

func renderInnerShadow(dst, surf *Pixmap, ox, oy int, e *InnerShadowEffect) {
	m := e.Blur*3 + e.Choke + max(abs(e.OffsetX), abs(e.OffsetY))
	inv := inverseSilhouette(surf, m)
	inv = growMask(inv, e.Choke)
	inv = blurMask(inv, float64(e.Blur))

	w, h := surf.Width(), surf.Height()
	out := NewPixmap(w, h)
	r8, g8, b8, _ := e.Color.Bytes()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := surf.RGBA8At(x, y)
			if a == 0 {
				continue
			}
			v := maskAt(inv, x-e.OffsetX+m, y-e.OffsetY+m, 255)
			aa := float64(v) * float64(a) / 255 * e.ColorOpacity
			if aa <= 0 {
				continue
			}
			out.SetRGBA8(x, y, r8, g8, b8, uint8(min(aa, 255)+0.5))
		}
	}
	blendSurface(dst, out, ox, oy, e.BlendMode(), e.Opacity())
}

func renderInnerGlow(dst, surf *Pixmap, ox, oy int, e *InnerGlowEffect) {
	m := e.Blur*3 + e.Choke
	var mask *image.Gray
	if e.Source == GlowCenter {
		mask = growMask(silhouette(surf, m), e.Choke)
	} else {
		mask = growMask(inverseSilhouette(surf, m), e.Choke)
	}
	mask = blurMask(mask, float64(e.Blur))
	clipInside(mask, surf, m)
	tinted := tintMask(mask, e.Color, e.ColorOpacity)
	blendSurface(dst, tinted, ox-m, oy-m, e.BlendMode(), e.Opacity())
}

func renderBevelEmboss(dst, surf *Pixmap, ox, oy int, e *BevelEmbossEffect) {
	size := max(1, e.Size)
	m := size*2 + e.Soften + 2
	cov := blurMask(silhouette(surf, m), float64(size))

	rad := float64(e.Angle) * math.Pi / 180
	dx := int(math.Round(math.Cos(rad)))
	dy := -int(math.Round(math.Sin(rad)))
	if dx == 0 && dy == 0 {
		dx, dy = -1, -1
	}

	depth := e.Depth
	if depth <= 0 {
		depth = 1
	}
	hi := image.NewGray(cov.Bounds())
	sh := image.NewGray(cov.Bounds())
	w, h := cov.Bounds().Dx(), cov.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			toward := int(maskAt(cov, x+dx, y+dy, 0))
			away := int(maskAt(cov, x-dx, y-dy, 0))
			d := (away - toward) * depth / 3
			if e.Direction == BevelDown {
				d = -d
			}
			switch {
			case d > 0:
				hi.Pix[y*hi.Stride+x] = uint8(min(d, 255))
			case d < 0:
				sh.Pix[y*sh.Stride+x] = uint8(min(-d, 255))
			}
		}
	}
	if e.Soften > 0 {
		hi = blurMask(hi, float64(e.Soften))
		sh = blurMask(sh, float64(e.Soften))
	}

	switch e.Style {
	case BevelStyleOuter:
		clipOutside(hi, surf, m)
		clipOutside(sh, surf, m)
	case BevelStyleEmboss:
		// Shades both sides of the edge.
	case BevelStylePillow:
		clipInside(hi, surf, m)
		clipInside(sh, surf, m)
		hi, sh = sh, hi
	default:
		clipInside(hi, surf, m)
		clipInside(sh, surf, m)
	}

	blendSurface(dst, tintMask(hi, e.HighlightColor, e.HighlightOpacity),
		ox-m, oy-m, e.BlendMode(), e.Opacity())
	blendSurface(dst, tintMask(sh, e.ShadowColor, e.ShadowOpacity),
		ox-m, oy-m, e.BlendMode(), e.Opacity())
}

func renderColorOverlay(dst, surf *Pixmap, ox, oy int, e *ColorOverlayEffect) {
	w, h := surf.Width(), surf.Height()
	out := NewPixmap(w, h)
	r8, g8, b8, _ := e.Color.Bytes()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, _, _, a := surf.RGBA8At(x, y); a > 0 {
				out.SetRGBA8(x, y, r8, g8, b8, a)
			}
		}
	}
	blendSurface(dst, out, ox, oy, e.BlendMode(), e.Opacity())
}

func renderStroke(dst, surf *Pixmap, ox, oy int, e *StrokeEffect) {
	if e.Size <= 0 {
		return
	}
	m := e.Size + 1
	s := silhouette(surf, m)

	var ring *image.Gray
	switch e.Position {
	case StrokeInside:
		ring = subtractMask(s, growMask(s, -e.Size))
	case StrokeCenter:
		ring = subtractMask(growMask(s, (e.Size+1)/2), growMask(s, -(e.Size/2)))
	default:
		ring = subtractMask(growMask(s, e.Size), s)
	}
	tinted := tintMask(ring, e.Color, e.ColorOpacity)
	blendSurface(dst, tinted, ox-m, oy-m, e.BlendMode(), e.Opacity())
}

// silhouette extracts the surface's alpha channel into a mask with
// margin empty pixels on every side.
func silhouette(surf *Pixmap, margin int) *image.Gray {
	w, h := surf.Width(), surf.Height()
	g := image.NewGray(image.Rect(0, 0, w+2*margin, h+2*margin))
	for y := 0; y < h; y++ {
		row := (y + margin) * g.Stride
		for x := 0; x < w; x++ {
			_, _, _, a := surf.RGBA8At(x, y)
			g.Pix[row+x+margin] = a
		}
	}
	return g
}

// inverseSilhouette is the complement: full coverage everywhere the
// surface is transparent, including the whole margin.
func inverseSilhouette(surf *Pixmap, margin int) *image.Gray {
	g := silhouette(surf, margin)
	for i, v := range g.Pix {
		g.Pix[i] = 255 - v
	}
	return g
}

// blurMask gaussian-blurs a mask. Zero or negative radii return the
// mask unchanged.
func blurMask(g *image.Gray, radius float64) *image.Gray {
	if radius <= 0 {
		return g
	}
	rgba := blur.Gaussian(g, radius)
	out := image.NewGray(g.Bounds())
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = rgba.Pix[y*rgba.Stride+x*4]
		}
	}
	return out
}

// growMask widens mask coverage by r pixels, or shrinks it for
// negative r, with a separable extremum filter pass per axis.
func growMask(g *image.Gray, r int) *image.Gray {
	if r == 0 {
		return g
	}
	dilate := r > 0
	if !dilate {
		r = -r
	}
	w, h := g.Bounds().Dx(), g.Bounds().Dy()

	pass := func(src *image.Gray, horizontal bool) *image.Gray {
		out := image.NewGray(src.Bounds())
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var best uint8
				if !dilate {
					best = 255
				}
				for k := -r; k <= r; k++ {
					sx, sy := x, y
					if horizontal {
						sx += k
					} else {
						sy += k
					}
					var v uint8
					if sx >= 0 && sx < w && sy >= 0 && sy < h {
						v = src.Pix[sy*src.Stride+sx]
					}
					if dilate {
						if v > best {
							best = v
						}
					} else if v < best {
						best = v
					}
				}
				out.Pix[y*out.Stride+x] = best
			}
		}
		return out
	}
	return pass(pass(g, true), false)
}

// subtractMask returns a minus b, clamped at zero.
func subtractMask(a, b *image.Gray) *image.Gray {
	out := image.NewGray(a.Bounds())
	for i := range a.Pix {
		if a.Pix[i] > b.Pix[i] {
			out.Pix[i] = a.Pix[i] - b.Pix[i]
		}
	}
	return out
}

// clipInside multiplies the mask by the surface's alpha so coverage
// survives only over content. The mask is offset from the surface by
// margin pixels on each side.
func clipInside(g *image.Gray, surf *Pixmap, margin int) {
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*g.Stride + x
			if g.Pix[i] == 0 {
				continue
			}
			var a uint8
			sx, sy := x-margin, y-margin
			if sx >= 0 && sx < surf.Width() && sy >= 0 && sy < surf.Height() {
				_, _, _, a = surf.RGBA8At(sx, sy)
			}
			g.Pix[i] = uint8((int(g.Pix[i])*int(a) + 127) / 255)
		}
	}
}

// clipOutside is the complement: coverage survives only off content.
func clipOutside(g *image.Gray, surf *Pixmap, margin int) {
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*g.Stride + x
			if g.Pix[i] == 0 {
				continue
			}
			var a uint8
			sx, sy := x-margin, y-margin
			if sx >= 0 && sx < surf.Width() && sy >= 0 && sy < surf.Height() {
				_, _, _, a = surf.RGBA8At(sx, sy)
			}
			g.Pix[i] = uint8((int(g.Pix[i])*int(255-a) + 127) / 255)
		}
	}
}

// maskAt reads a mask pixel with a fallback for out-of-range
// coordinates.
func maskAt(g *image.Gray, x, y int, fallback uint8) uint8 {
	if x < 0 || y < 0 || x >= g.Bounds().Dx() || y >= g.Bounds().Dy() {
		return fallback
	}
	return g.Pix[y*g.Stride+x]
}

// tintMask builds a pixmap of one solid color whose alpha follows the
// mask, scaled by opacity.
func tintMask(mask *image.Gray, c RGBA, opacity float64) *Pixmap {
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()
	pm := NewPixmap(w, h)
	r8, g8, b8, _ := c.Bytes()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := mask.Pix[y*mask.Stride+x]
			if v == 0 {
				continue
			}
			a := float64(v) * opacity
			if a <= 0 {
				continue
			}
			pm.SetRGBA8(x, y, r8, g8, b8, uint8(min(a, 255)+0.5))
		}
	}
	return pm
}

package easel

import "github.com/easelkit/easel/internal/raster"

// pixmapAdapter adapts Pixmap to the raster package's interfaces.
type pixmapAdapter struct {
	pixmap *Pixmap
}

func (p *pixmapAdapter) Width() int {
	return p.pixmap.Width()
}

func (p *pixmapAdapter) Height() int {
	return p.pixmap.Height()
}

func (p *pixmapAdapter) SetPixel(x, y int, c raster.RGBA) {
	p.pixmap.SetPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// BlendPixelAlpha blends a color with the existing pixel using the
// given coverage alpha. This implements raster.AAPixmap for
// anti-aliased rendering.
func (p *pixmapAdapter) BlendPixelAlpha(x, y int, c raster.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}

	if x < 0 || x >= p.pixmap.Width() || y < 0 || y >= p.pixmap.Height() {
		return
	}

	if alpha == 255 && c.A >= 1 {
		p.pixmap.SetPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		return
	}

	existing := p.pixmap.GetPixel(x, y)

	srcAlpha := c.A * float64(alpha) / 255.0
	invSrcAlpha := 1.0 - srcAlpha

	outA := srcAlpha + existing.A*invSrcAlpha
	if outA > 0 {
		outR := (c.R*srcAlpha + existing.R*existing.A*invSrcAlpha) / outA
		outG := (c.G*srcAlpha + existing.G*existing.A*invSrcAlpha) / outA
		outB := (c.B*srcAlpha + existing.B*existing.A*invSrcAlpha) / outA
		p.pixmap.SetPixel(x, y, RGBA{R: outR, G: outG, B: outB, A: outA})
	}
}

func toRasterRGBA(c RGBA) raster.RGBA {
	return raster.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toRasterPoints(pts []Point) []raster.Point {
	out := make([]raster.Point, len(pts))
	for i, p := range pts {
		out[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return out
}

// flattenTolerance is the curve flattening tolerance for rendering,
// in device pixels.
const flattenTolerance = 0.25

// renderShape draws one shape onto dst. scale applies a uniform zoom
// for supersampled rendering; antialias selects the smooth or the
// fast aliased pipeline. Both pipelines consume the same outline, so
// they encode identical geometry.
func renderShape(r *raster.Rasterizer, dst *Pixmap, s Shape, scale float64, antialias bool) {
	style := *s.Style()
	if style.Opacity <= 0 {
		return
	}
	if !style.Fill && !style.Stroke {
		return
	}

	outline := s.outline()
	if scale != 1 {
		outline = outline.Transform(Scale(scale, scale))
	}
	subs := outline.flattenSubpaths(flattenTolerance)
	if len(subs) == 0 {
		return
	}

	adapter := &pixmapAdapter{pixmap: dst}

	if style.Fill && s.Kind() != ShapeKindLine {
		color := style.FillColor
		color.A *= style.Opacity

		polygons := make([][]raster.Point, 0, len(subs))
		for _, sub := range subs {
			if len(sub.points) >= 3 {
				polygons = append(polygons, toRasterPoints(sub.points))
			}
		}
		if len(polygons) > 0 {
			if antialias {
				r.FillAA(adapter, polygons, raster.FillRuleNonZero, toRasterRGBA(color))
			} else {
				r.Fill(adapter, polygons, raster.FillRuleNonZero, toRasterRGBA(color))
			}
		}
	}

	if style.Stroke && style.StrokeWidth > 0 {
		color := style.StrokeColor
		color.A *= style.Opacity
		width := style.StrokeWidth * scale

		for _, sub := range subs {
			pts := toRasterPoints(sub.points)
			if antialias {
				r.StrokeAA(adapter, pts, sub.closed, width, toRasterRGBA(color))
			} else {
				r.Stroke(adapter, pts, sub.closed, width, toRasterRGBA(color))
			}
		}

		if line, ok := s.(*LineShape); ok && line.Cap == LineCapRound {
			strokeRoundCaps(r, adapter, line, scale, antialias, toRasterRGBA(color))
		}
	}
}

// strokeRoundCaps fills a disc at each line endpoint.
func strokeRoundCaps(r *raster.Rasterizer, adapter *pixmapAdapter, line *LineShape, scale float64, antialias bool, color raster.RGBA) {
	radius := line.style.StrokeWidth * scale / 2
	if radius <= 0 {
		return
	}

	for _, end := range [][2]float64{{line.X1, line.Y1}, {line.X2, line.Y2}} {
		disc := NewPath()
		disc.Circle(end[0]*scale, end[1]*scale, radius)
		for _, sub := range disc.flattenSubpaths(flattenTolerance) {
			if len(sub.points) < 3 {
				continue
			}
			polygon := [][]raster.Point{toRasterPoints(sub.points)}
			if antialias {
				r.FillAA(adapter, polygon, raster.FillRuleNonZero, color)
			} else {
				r.Fill(adapter, polygon, raster.FillRuleNonZero, color)
			}
		}
	}
}

package raster

import "math"

// aaSamples is the vertical supersampling factor for anti-aliased
// rendering. Horizontal coverage is computed exactly per span.
const aaSamples = 4

// FillAA rasterizes filled polygons with anti-aliasing. Coverage is
// accumulated per pixel row and blended through BlendPixelAlpha.
func (r *Rasterizer) FillAA(pixmap AAPixmap, polygons [][]Point, fillRule FillRule, color RGBA) {
	edges := buildEdges(polygons)
	if len(edges) == 0 {
		return
	}

	width := pixmap.Width()
	if len(r.cover) < width {
		r.cover = make([]float64, width)
	}
	cover := r.cover[:width]

	yMinInt, yMaxInt := edgeYBounds(edges, pixmap.Height())

	for y := yMinInt; y < yMaxInt; y++ {
		for i := range cover {
			cover[i] = 0
		}

		rowCovered := false
		for s := 0; s < aaSamples; s++ {
			scanY := float64(y) + (float64(s)+0.5)/aaSamples
			if r.accumulateScanline(edges, scanY, fillRule, cover, width) {
				rowCovered = true
			}
		}
		if !rowCovered {
			continue
		}

		for x := 0; x < width; x++ {
			c := cover[x]
			if c <= 0 {
				continue
			}
			alpha := c / aaSamples
			if alpha > 1 {
				alpha = 1
			}
			a := uint8(alpha*255 + 0.5)
			if a == 0 {
				continue
			}
			pixmap.BlendPixelAlpha(x, y, color, a)
		}
	}
}

// accumulateScanline adds one subsample scanline's span coverage into
// cover. Returns true when any span touched the row.
func (r *Rasterizer) accumulateScanline(edges []Edge, y float64, fillRule FillRule, cover []float64, width int) bool {
	r.aet.Clear()
	for i := range edges {
		if edges[i].y0 <= y && y < edges[i].y1 {
			r.aet.AddAtY(edges[i], y)
		}
	}

	active := r.aet.Edges()
	if len(active) == 0 {
		return false
	}
	r.aet.Sort()
	active = r.aet.Edges()

	covered := false
	if fillRule == FillRuleNonZero {
		winding := 0
		var x1 float64
		for i := 0; i < len(active); i++ {
			edge := active[i]
			if winding == 0 {
				x1 = edge.x
			}
			winding += edge.dir
			if winding == 0 {
				if accumulateSpan(cover, x1, edge.x, width) {
					covered = true
				}
			}
		}
	} else {
		for i := 0; i+1 < len(active); i += 2 {
			if accumulateSpan(cover, active[i].x, active[i+1].x, width) {
				covered = true
			}
		}
	}
	return covered
}

// accumulateSpan adds fractional horizontal coverage for the span
// [x1, x2) into cover, clipped to [0, width).
func accumulateSpan(cover []float64, x1, x2 float64, width int) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x2 <= 0 || x1 >= float64(width) {
		return false
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > float64(width) {
		x2 = float64(width)
	}
	if x2 <= x1 {
		return false
	}

	ix1 := int(math.Floor(x1))
	ix2 := int(math.Floor(x2))

	if ix1 == ix2 {
		cover[ix1] += x2 - x1
		return true
	}

	cover[ix1] += float64(ix1+1) - x1
	for x := ix1 + 1; x < ix2; x++ {
		cover[x] += 1
	}
	if ix2 < width {
		cover[ix2] += x2 - float64(ix2)
	}
	return true
}

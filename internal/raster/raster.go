// Package raster provides scanline rasterization for 2D polygons.
package raster

import "math"

// RGBA represents a color (internal copy to avoid import cycle).
type RGBA struct {
	R, G, B, A float64
}

// Pixmap is an interface for writing pixels (avoids import cycle).
type Pixmap interface {
	Width() int
	Height() int
	SetPixel(x, y int, c RGBA)
}

// AAPixmap extends Pixmap with coverage-weighted blending for
// anti-aliased rendering.
type AAPixmap interface {
	Pixmap
	BlendPixelAlpha(x, y int, c RGBA, alpha uint8)
}

// SpanFiller is an optional interface that pixmaps can implement for
// optimized span filling.
type SpanFiller interface {
	FillSpan(x1, x2, y int, c RGBA)
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Rasterizer performs scanline rasterization.
type Rasterizer struct {
	width  int
	height int
	aet    *ActiveEdgeTable
	cover  []float64 // per-pixel coverage accumulator for one row
}

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		aet:    NewActiveEdgeTable(),
		cover:  make([]float64, width),
	}
}

// buildEdges converts subpath polygons to an edge list. Each polygon is
// implicitly closed; horizontal edges are skipped.
func buildEdges(polygons [][]Point) []Edge {
	var edges []Edge
	for _, poly := range polygons {
		n := len(poly)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			p0 := poly[i]
			p1 := poly[(i+1)%n]
			if math.Abs(p1.Y-p0.Y) < 0.001 {
				continue
			}
			edges = append(edges, NewEdge(p0, p1))
		}
	}
	return edges
}

// edgeYBounds returns the clamped integer scanline range of the edges.
func edgeYBounds(edges []Edge, height int) (int, int) {
	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for _, e := range edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}

	yMinInt := int(math.Floor(yMin))
	yMaxInt := int(math.Ceil(yMax))
	if yMinInt < 0 {
		yMinInt = 0
	}
	if yMaxInt > height {
		yMaxInt = height
	}
	return yMinInt, yMaxInt
}

// Fill rasterizes filled polygons onto a pixmap without anti-aliasing.
// Each polygon is one subpath, implicitly closed.
func (r *Rasterizer) Fill(pixmap Pixmap, polygons [][]Point, fillRule FillRule, color RGBA) {
	edges := buildEdges(polygons)
	if len(edges) == 0 {
		return
	}

	yMinInt, yMaxInt := edgeYBounds(edges, pixmap.Height())

	// Scanline rasterization through pixel centers.
	for y := yMinInt; y < yMaxInt; y++ {
		scanY := float64(y) + 0.5
		r.scanline(pixmap, edges, scanY, fillRule, color)
	}
}

// scanline processes a single scanline.
func (r *Rasterizer) scanline(pixmap Pixmap, edges []Edge, y float64, fillRule FillRule, color RGBA) {
	r.aet.Clear()

	// Add edges that cross this scanline with x computed at y.
	for i := range edges {
		if edges[i].y0 <= y && y < edges[i].y1 {
			r.aet.AddAtY(edges[i], y)
		}
	}

	if len(r.aet.Edges()) == 0 {
		return
	}

	r.aet.Sort()

	activeEdges := r.aet.Edges()
	if fillRule == FillRuleNonZero {
		r.fillNonZero(pixmap, activeEdges, int(y), color)
	} else {
		r.fillEvenOdd(pixmap, activeEdges, int(y), color)
	}
}

// fillNonZero fills using the non-zero winding rule.
func (r *Rasterizer) fillNonZero(pixmap Pixmap, edges []ActiveEdge, y int, color RGBA) {
	winding := 0
	var x1 float64

	for i := 0; i < len(edges); i++ {
		edge := edges[i]

		if winding == 0 {
			x1 = edge.x
		}

		winding += edge.dir

		if winding == 0 {
			x2 := edge.x
			r.fillSpan(pixmap, int(math.Round(x1)), int(math.Round(x2)), y, color)
		}
	}
}

// fillEvenOdd fills using the even-odd rule.
func (r *Rasterizer) fillEvenOdd(pixmap Pixmap, edges []ActiveEdge, y int, color RGBA) {
	for i := 0; i+1 < len(edges); i += 2 {
		x1 := int(math.Round(edges[i].x))
		x2 := int(math.Round(edges[i+1].x))
		r.fillSpan(pixmap, x1, x2, y, color)
	}
}

// fillSpan fills a horizontal span of pixels.
func (r *Rasterizer) fillSpan(pixmap Pixmap, x1, x2, y int, color RGBA) {
	if y < 0 || y >= pixmap.Height() {
		return
	}

	if x1 > x2 {
		x1, x2 = x2, x1
	}

	if x1 < 0 {
		x1 = 0
	}
	if x2 > pixmap.Width() {
		x2 = pixmap.Width()
	}

	// Try to use optimized FillSpan if available
	if spanFiller, ok := pixmap.(SpanFiller); ok {
		spanFiller.FillSpan(x1, x2, y, color)
		return
	}

	for x := x1; x < x2; x++ {
		pixmap.SetPixel(x, y, color)
	}
}

// Stroke rasterizes a stroked polyline. When closed is true the last
// point connects back to the first.
func (r *Rasterizer) Stroke(pixmap Pixmap, points []Point, closed bool, lineWidth float64, color RGBA) {
	if len(points) < 2 {
		return
	}

	if lineWidth < 1 {
		lineWidth = 1
	}

	for i := 0; i < len(points)-1; i++ {
		r.strokeLine(pixmap, points[i], points[i+1], lineWidth, color)
	}
	if closed {
		r.strokeLine(pixmap, points[len(points)-1], points[0], lineWidth, color)
	}
}

// strokeLine draws a thick line as a filled quad around the segment.
func (r *Rasterizer) strokeLine(pixmap Pixmap, p0, p1 Point, width float64, color RGBA) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	length := math.Sqrt(dx*dx + dy*dy)

	if length < 0.001 {
		return
	}

	// Perpendicular vector
	nx := -dy / length
	ny := dx / length

	// Offset by half width
	offset := width / 2

	quad := []Point{
		{X: p0.X + nx*offset, Y: p0.Y + ny*offset},
		{X: p0.X - nx*offset, Y: p0.Y - ny*offset},
		{X: p1.X - nx*offset, Y: p1.Y - ny*offset},
		{X: p1.X + nx*offset, Y: p1.Y + ny*offset},
	}

	r.Fill(pixmap, [][]Point{quad}, FillRuleNonZero, color)
}

// StrokeAA rasterizes an anti-aliased stroked polyline.
func (r *Rasterizer) StrokeAA(pixmap AAPixmap, points []Point, closed bool, lineWidth float64, color RGBA) {
	if len(points) < 2 {
		return
	}

	if lineWidth < 1 {
		lineWidth = 1
	}

	for i := 0; i < len(points)-1; i++ {
		r.strokeLineAA(pixmap, points[i], points[i+1], lineWidth, color)
	}
	if closed {
		r.strokeLineAA(pixmap, points[len(points)-1], points[0], lineWidth, color)
	}
}

func (r *Rasterizer) strokeLineAA(pixmap AAPixmap, p0, p1 Point, width float64, color RGBA) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	length := math.Sqrt(dx*dx + dy*dy)

	if length < 0.001 {
		return
	}

	nx := -dy / length
	ny := dx / length
	offset := width / 2

	quad := []Point{
		{X: p0.X + nx*offset, Y: p0.Y + ny*offset},
		{X: p0.X - nx*offset, Y: p0.Y - ny*offset},
		{X: p1.X - nx*offset, Y: p1.Y - ny*offset},
		{X: p1.X + nx*offset, Y: p1.Y + ny*offset},
	}

	r.FillAA(pixmap, [][]Point{quad}, FillRuleNonZero, color)
}

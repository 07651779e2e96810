package easel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PolygonShape is a sequence of straight segments. Open polygons
// stroke as a polyline but still fill as if closed, matching how the
// renderer treats them.
type PolygonShape struct {
	id    string
	style ShapeStyle

	Points []Point
	Closed bool
}

// NewPolygonShape creates a polygon with the default style. The point
// slice is copied.
func NewPolygonShape(points []Point, closed bool) *PolygonShape {
	pts := make([]Point, len(points))
	copy(pts, points)
	return &PolygonShape{
		id:     newShapeID(),
		style:  DefaultShapeStyle(),
		Points: pts,
		Closed: closed,
	}
}

// ID returns the shape's stable identifier.
func (p *PolygonShape) ID() string { return p.id }

func (p *PolygonShape) setID(id string) { p.id = id }

// Kind returns ShapeKindPolygon.
func (p *PolygonShape) Kind() ShapeKind { return ShapeKindPolygon }

// Style returns the shape's mutable fill and stroke settings.
func (p *PolygonShape) Style() *ShapeStyle { return &p.style }

// Bounds returns the vertex box expanded by any stroke width.
func (p *PolygonShape) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return NewRect(Pt(minX, minY), Pt(maxX, maxY)).Expand(p.style.strokePad())
}

// ContainsPoint tests the point with the non-zero winding rule, the
// same rule the renderer fills with. Stroke-only polygons test
// proximity to the edges instead.
func (p *PolygonShape) ContainsPoint(x, y float64) bool {
	if len(p.Points) < 2 {
		return false
	}

	pt := Pt(x, y)
	if p.style.Fill {
		return polygonWinding(pt, p.Points) != 0
	}
	if !p.style.Stroke {
		return false
	}
	return polylineDistance(pt, p.Points, p.Closed) <= p.style.StrokeWidth/2
}

// ControlPoints returns one anchor per vertex.
func (p *PolygonShape) ControlPoints() []ControlPoint {
	cps := make([]ControlPoint, len(p.Points))
	for i, pt := range p.Points {
		cps[i] = ControlPoint{
			ID:   fmt.Sprintf("v%d", i),
			X:    pt.X,
			Y:    pt.Y,
			Kind: ControlAnchor,
		}
	}
	return cps
}

// SetControlPoint moves one vertex.
func (p *PolygonShape) SetControlPoint(id string, x, y float64) bool {
	idx, ok := parseVertexID(id)
	if !ok || idx < 0 || idx >= len(p.Points) {
		return false
	}
	p.Points[idx] = Pt(x, y)
	return true
}

// polygonWinding sums the winding contributions of every edge,
// implicitly closing the polygon.
func polygonWinding(pt Point, points []Point) int {
	winding := 0
	n := len(points)
	for i := 0; i < n; i++ {
		winding += lineWinding(points[i], points[(i+1)%n], pt)
	}
	return winding
}

func parseVertexID(id string) (int, bool) {
	num, ok := strings.CutPrefix(id, "v")
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// MoveBy translates every vertex.
func (p *PolygonShape) MoveBy(dx, dy float64) {
	for i := range p.Points {
		p.Points[i].X += dx
		p.Points[i].Y += dy
	}
}

// Clone returns a deep copy preserving the id.
func (p *PolygonShape) Clone() Shape {
	dup := *p
	dup.Points = make([]Point, len(p.Points))
	copy(dup.Points, p.Points)
	return &dup
}

func (p *PolygonShape) outline() *Path {
	path := NewPath()
	path.Polygon(p.Points, p.Closed)
	return path
}

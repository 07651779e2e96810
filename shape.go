package easel

import (
	"math"

	"github.com/google/uuid"
)

// ShapeKind identifies a shape variant. The values double as the type
// tags in saved documents.
type ShapeKind string

const (
	ShapeKindRectangle ShapeKind = "rect"
	ShapeKindEllipse   ShapeKind = "ellipse"
	ShapeKindLine      ShapeKind = "line"
	ShapeKindPolygon   ShapeKind = "polygon"
	ShapeKindPath      ShapeKind = "path"
)

// ControlPointKind distinguishes anchors from bezier handles.
type ControlPointKind uint8

const (
	// ControlAnchor is a point lying on the shape itself.
	ControlAnchor ControlPointKind = iota
	// ControlHandle is a bezier handle steering curvature.
	ControlHandle
)

// ControlPoint is one editable point exposed by a shape for
// interactive manipulation. Coordinates are absolute.
type ControlPoint struct {
	ID   string
	X    float64
	Y    float64
	Kind ControlPointKind
}

// ShapeStyle holds the fill and stroke settings shared by all shape
// variants. Strokes are centered on the outline.
type ShapeStyle struct {
	Fill        bool
	Stroke      bool
	FillColor   RGBA
	StrokeColor RGBA
	StrokeWidth float64
	Opacity     float64
}

// DefaultShapeStyle returns the style new shapes start with: black
// fill, no stroke, full opacity.
func DefaultShapeStyle() ShapeStyle {
	return ShapeStyle{
		Fill:        true,
		Stroke:      false,
		FillColor:   Black,
		StrokeColor: Black,
		StrokeWidth: 1,
		Opacity:     1,
	}
}

// strokePad returns how far a centered stroke extends beyond the
// geometric outline.
func (s ShapeStyle) strokePad() float64 {
	if !s.Stroke || s.StrokeWidth <= 0 {
		return 0
	}
	return s.StrokeWidth / 2
}

// Shape is the contract shared by all vector shape variants. Shapes
// are owned by a VectorLayer; mutating one directly does not refresh
// the layer's cached raster, use the layer's editing operations or
// call Invalidate on the owner.
type Shape interface {
	// ID returns the shape's stable identifier.
	ID() string

	// Kind returns the variant tag used for serialization dispatch.
	Kind() ShapeKind

	// Style returns the shape's mutable fill and stroke settings.
	Style() *ShapeStyle

	// Bounds returns the axis-aligned bounding box including any
	// stroke-width expansion.
	Bounds() Rect

	// ContainsPoint reports whether the point hits the shape
	// geometrically. Filled shapes test the interior, stroke-only
	// shapes test proximity to the outline.
	ContainsPoint(x, y float64) bool

	// ControlPoints lists the shape's editable points. Handles appear
	// only where curvature is defined.
	ControlPoints() []ControlPoint

	// SetControlPoint moves the identified control point to an
	// absolute position. Unknown ids report false and change nothing.
	SetControlPoint(id string, x, y float64) bool

	// MoveBy translates the whole shape.
	MoveBy(dx, dy float64)

	// Clone returns a deep copy preserving the id.
	Clone() Shape

	// Snapshot returns the shape's serialized form.
	Snapshot() *ShapeSnapshot

	// outline returns the shape's geometry as a path in layer
	// coordinates, without stroke expansion.
	outline() *Path

	setID(id string)
}

// newShapeID returns a fresh unique shape identifier.
func newShapeID() string {
	return "shape-" + uuid.NewString()
}

// pointSegmentDistance returns the distance from p to the segment ab.
func pointSegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// polylineDistance returns the shortest distance from p to a polyline.
// When closed is true the segment from the last point back to the
// first is included.
func polylineDistance(p Point, points []Point, closed bool) float64 {
	if len(points) == 0 {
		return math.Inf(1)
	}
	if len(points) == 1 {
		return p.Distance(points[0])
	}

	best := math.Inf(1)
	for i := 0; i+1 < len(points); i++ {
		if d := pointSegmentDistance(p, points[i], points[i+1]); d < best {
			best = d
		}
	}
	if closed {
		if d := pointSegmentDistance(p, points[len(points)-1], points[0]); d < best {
			best = d
		}
	}
	return best
}

// outlineStrokeHit reports whether p lies within half the stroke
// width of any flattened subpath of the outline.
func outlineStrokeHit(outline *Path, p Point, strokeWidth float64) bool {
	half := strokeWidth / 2
	if half <= 0 {
		return false
	}
	for _, sub := range outline.flattenSubpaths(0.1) {
		if polylineDistance(p, sub.points, sub.closed) <= half {
			return true
		}
	}
	return false
}

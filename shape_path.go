package easel

import (
	"fmt"
	"strconv"
	"strings"
)

// PathPointType controls how a path point's handles behave during
// editing.
type PathPointType uint8

const (
	// PathPointCorner leaves both handles independent.
	PathPointCorner PathPointType = iota
	// PathPointSmooth keeps the handles co-linear through the anchor
	// while allowing different lengths.
	PathPointSmooth
	// PathPointSymmetric mirrors each handle onto the other with
	// equal length and opposite direction.
	PathPointSymmetric
)

var pathPointTypeNames = [...]string{
	PathPointCorner:    "corner",
	PathPointSmooth:    "smooth",
	PathPointSymmetric: "symmetric",
}

// String returns the point type's document name.
func (t PathPointType) String() string {
	if int(t) < len(pathPointTypeNames) {
		return pathPointTypeNames[t]
	}
	return "corner"
}

// ParsePathPointType returns the point type for a document name.
// Unknown names report false and fall back to PathPointCorner.
func ParsePathPointType(name string) (PathPointType, bool) {
	for t, n := range pathPointTypeNames {
		if n == name {
			return PathPointType(t), true
		}
	}
	return PathPointCorner, false
}

// MarshalText implements encoding.TextMarshaler.
func (t PathPointType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PathPointType) UnmarshalText(text []byte) error {
	parsed, _ := ParsePathPointType(string(text))
	*t = parsed
	return nil
}

// PathPoint is one anchor on a PathShape. Handles are offsets
// relative to the anchor position, not absolute coordinates; a nil
// handle means the adjacent segment has no curvature on that side.
type PathPoint struct {
	Position  Point
	Type      PathPointType
	HandleIn  *Point
	HandleOut *Point
}

// clone returns a deep copy of the point.
func (pp PathPoint) clone() PathPoint {
	dup := pp
	if pp.HandleIn != nil {
		h := *pp.HandleIn
		dup.HandleIn = &h
	}
	if pp.HandleOut != nil {
		h := *pp.HandleOut
		dup.HandleOut = &h
	}
	return dup
}

// handleAbs returns a handle's absolute position, or false when the
// handle is absent.
func (pp PathPoint) handleAbs(handle *Point) (Point, bool) {
	if handle == nil {
		return Point{}, false
	}
	return pp.Position.Add(*handle), true
}

// PathShape is a bezier path built from a sequence of anchors with
// optional handles. Segment curvature follows the available handles:
// both handles make a cubic, a single handle makes a quadratic, none
// makes a straight line.
type PathShape struct {
	id    string
	style ShapeStyle

	Points []PathPoint
	Closed bool
}

// NewPathShape creates a path with the default style. The point slice
// is deep-copied.
func NewPathShape(points []PathPoint, closed bool) *PathShape {
	pts := make([]PathPoint, len(points))
	for i, pp := range points {
		pts[i] = pp.clone()
	}
	return &PathShape{
		id:     newShapeID(),
		style:  DefaultShapeStyle(),
		Points: pts,
		Closed: closed,
	}
}

// ID returns the shape's stable identifier.
func (p *PathShape) ID() string { return p.id }

func (p *PathShape) setID(id string) { p.id = id }

// Kind returns ShapeKindPath.
func (p *PathShape) Kind() ShapeKind { return ShapeKindPath }

// Style returns the shape's mutable fill and stroke settings.
func (p *PathShape) Style() *ShapeStyle { return &p.style }

// Bounds returns the flattened outline's box expanded by any stroke
// width.
func (p *PathShape) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	return p.outline().BoundingBox().Expand(p.style.strokePad())
}

// ContainsPoint tests the point with the non-zero winding rule over
// the flattened outline. Stroke-only paths test proximity to the
// outline instead.
func (p *PathShape) ContainsPoint(x, y float64) bool {
	if len(p.Points) < 2 {
		return false
	}

	pt := Pt(x, y)
	outline := p.outline()
	if p.style.Fill {
		return outline.Contains(pt)
	}
	if !p.style.Stroke {
		return false
	}
	return outlineStrokeHit(outline, pt, p.style.StrokeWidth)
}

// ControlPoints returns one anchor per point plus a handle control
// for each handle that exists.
func (p *PathShape) ControlPoints() []ControlPoint {
	var cps []ControlPoint
	for i, pp := range p.Points {
		cps = append(cps, ControlPoint{
			ID:   fmt.Sprintf("anchor-%d", i),
			X:    pp.Position.X,
			Y:    pp.Position.Y,
			Kind: ControlAnchor,
		})
		if abs, ok := pp.handleAbs(pp.HandleIn); ok {
			cps = append(cps, ControlPoint{
				ID:   fmt.Sprintf("in-%d", i),
				X:    abs.X,
				Y:    abs.Y,
				Kind: ControlHandle,
			})
		}
		if abs, ok := pp.handleAbs(pp.HandleOut); ok {
			cps = append(cps, ControlPoint{
				ID:   fmt.Sprintf("out-%d", i),
				X:    abs.X,
				Y:    abs.Y,
				Kind: ControlHandle,
			})
		}
	}
	return cps
}

// SetControlPoint moves an anchor or handle. Moving an anchor
// translates it without changing its handle offsets. Moving one
// handle of a symmetric point mirrors the opposite handle with equal
// length and opposite direction; on a smooth point the opposite
// handle keeps its length but turns to stay co-linear.
func (p *PathShape) SetControlPoint(id string, x, y float64) bool {
	kind, idx, ok := parsePathControlID(id)
	if !ok || idx < 0 || idx >= len(p.Points) {
		return false
	}

	pp := &p.Points[idx]
	switch kind {
	case "anchor":
		pp.Position = Pt(x, y)
		return true
	case "in":
		if pp.HandleIn == nil {
			return false
		}
		offset := Pt(x, y).Sub(pp.Position)
		*pp.HandleIn = offset
		pp.syncOppositeHandle(offset, pp.HandleOut)
		return true
	case "out":
		if pp.HandleOut == nil {
			return false
		}
		offset := Pt(x, y).Sub(pp.Position)
		*pp.HandleOut = offset
		pp.syncOppositeHandle(offset, pp.HandleIn)
		return true
	}
	return false
}

// syncOppositeHandle updates the opposite handle after one handle
// moved, according to the point type.
func (pp *PathPoint) syncOppositeHandle(moved Point, opposite *Point) {
	if opposite == nil {
		return
	}
	switch pp.Type {
	case PathPointSymmetric:
		*opposite = moved.Mul(-1)
	case PathPointSmooth:
		length := opposite.Length()
		dir := moved.Normalize()
		*opposite = dir.Mul(-length)
	}
}

func parsePathControlID(id string) (kind string, idx int, ok bool) {
	kind, num, found := strings.Cut(id, "-")
	if !found {
		return "", 0, false
	}
	idx, err := strconv.Atoi(num)
	if err != nil {
		return "", 0, false
	}
	switch kind {
	case "anchor", "in", "out":
		return kind, idx, true
	}
	return "", 0, false
}

// MoveBy translates every anchor. Handle offsets are relative to
// their anchors, so they follow without changes.
func (p *PathShape) MoveBy(dx, dy float64) {
	for i := range p.Points {
		p.Points[i].Position.X += dx
		p.Points[i].Position.Y += dy
	}
}

// Clone returns a deep copy preserving the id.
func (p *PathShape) Clone() Shape {
	dup := *p
	dup.Points = make([]PathPoint, len(p.Points))
	for i, pp := range p.Points {
		dup.Points[i] = pp.clone()
	}
	return &dup
}

// outline converts the point sequence to a drawable path. Each
// segment picks its curve order from the handles present: cubic for
// two, quadratic for one, straight line for none. A closed path adds
// the closing segment from the last point's outgoing handle and the
// first point's incoming handle.
func (p *PathShape) outline() *Path {
	path := NewPath()
	if len(p.Points) == 0 {
		return path
	}

	first := p.Points[0]
	path.MoveTo(first.Position.X, first.Position.Y)

	for i := 1; i < len(p.Points); i++ {
		appendPathSegment(path, p.Points[i-1], p.Points[i])
	}

	if p.Closed && len(p.Points) > 2 {
		appendPathSegment(path, p.Points[len(p.Points)-1], p.Points[0])
		path.Close()
	}
	return path
}

func appendPathSegment(path *Path, from, to PathPoint) {
	hOut, hasOut := from.handleAbs(from.HandleOut)
	hIn, hasIn := to.handleAbs(to.HandleIn)

	switch {
	case hasOut && hasIn:
		path.CubicTo(hOut.X, hOut.Y, hIn.X, hIn.Y, to.Position.X, to.Position.Y)
	case hasOut:
		path.QuadraticTo(hOut.X, hOut.Y, to.Position.X, to.Position.Y)
	case hasIn:
		path.QuadraticTo(hIn.X, hIn.Y, to.Position.X, to.Position.Y)
	default:
		path.LineTo(to.Position.X, to.Position.Y)
	}
}

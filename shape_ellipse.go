package easel

import "math"

// EllipseShape is an axis-aligned ellipse defined by center and radii.
type EllipseShape struct {
	id    string
	style ShapeStyle

	CX, CY float64
	RX, RY float64
}

// NewEllipseShape creates an ellipse with the default style. Negative
// radii are normalized to their absolute values.
func NewEllipseShape(cx, cy, rx, ry float64) *EllipseShape {
	return &EllipseShape{
		id:    newShapeID(),
		style: DefaultShapeStyle(),
		CX:    cx,
		CY:    cy,
		RX:    math.Abs(rx),
		RY:    math.Abs(ry),
	}
}

// ID returns the shape's stable identifier.
func (e *EllipseShape) ID() string { return e.id }

func (e *EllipseShape) setID(id string) { e.id = id }

// Kind returns ShapeKindEllipse.
func (e *EllipseShape) Kind() ShapeKind { return ShapeKindEllipse }

// Style returns the shape's mutable fill and stroke settings.
func (e *EllipseShape) Style() *ShapeStyle { return &e.style }

// Bounds returns the ellipse's box expanded by any stroke width.
func (e *EllipseShape) Bounds() Rect {
	return NewRect(Pt(e.CX-e.RX, e.CY-e.RY), Pt(e.CX+e.RX, e.CY+e.RY)).Expand(e.style.strokePad())
}

// ContainsPoint tests the point against the exact ellipse equation.
// Stroke-only ellipses test the ring between the inner and outer
// offsets.
func (e *EllipseShape) ContainsPoint(x, y float64) bool {
	if e.style.Fill {
		return ellipseContains(x, y, e.CX, e.CY, e.RX, e.RY)
	}
	if !e.style.Stroke {
		return false
	}

	half := e.style.StrokeWidth / 2
	if !ellipseContains(x, y, e.CX, e.CY, e.RX+half, e.RY+half) {
		return false
	}
	innerRX := e.RX - half
	innerRY := e.RY - half
	if innerRX <= 0 || innerRY <= 0 {
		return true
	}
	return !ellipseContains(x, y, e.CX, e.CY, innerRX, innerRY)
}

func ellipseContains(px, py, cx, cy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (px - cx) / rx
	dy := (py - cy) / ry
	return dx*dx+dy*dy <= 1
}

// ControlPoints returns the four extreme anchors.
func (e *EllipseShape) ControlPoints() []ControlPoint {
	return []ControlPoint{
		{ID: "top", X: e.CX, Y: e.CY - e.RY, Kind: ControlAnchor},
		{ID: "right", X: e.CX + e.RX, Y: e.CY, Kind: ControlAnchor},
		{ID: "bottom", X: e.CX, Y: e.CY + e.RY, Kind: ControlAnchor},
		{ID: "left", X: e.CX - e.RX, Y: e.CY, Kind: ControlAnchor},
	}
}

// SetControlPoint drags an extreme point, adjusting the matching
// radius.
func (e *EllipseShape) SetControlPoint(id string, x, y float64) bool {
	switch id {
	case "top", "bottom":
		e.RY = math.Abs(y - e.CY)
	case "left", "right":
		e.RX = math.Abs(x - e.CX)
	default:
		return false
	}
	return true
}

// MoveBy translates the ellipse.
func (e *EllipseShape) MoveBy(dx, dy float64) {
	e.CX += dx
	e.CY += dy
}

// Clone returns a deep copy preserving the id.
func (e *EllipseShape) Clone() Shape {
	dup := *e
	return &dup
}

func (e *EllipseShape) outline() *Path {
	p := NewPath()
	p.Ellipse(e.CX, e.CY, e.RX, e.RY)
	return p
}

package easel

// RectangleShape is an axis-aligned rectangle with an optional corner
// radius.
type RectangleShape struct {
	id    string
	style ShapeStyle

	X, Y          float64
	Width, Height float64
	CornerRadius  float64
}

// NewRectangleShape creates a rectangle with the default style.
func NewRectangleShape(x, y, width, height float64) *RectangleShape {
	return &RectangleShape{
		id:     newShapeID(),
		style:  DefaultShapeStyle(),
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// ID returns the shape's stable identifier.
func (r *RectangleShape) ID() string { return r.id }

func (r *RectangleShape) setID(id string) { r.id = id }

// Kind returns ShapeKindRectangle.
func (r *RectangleShape) Kind() ShapeKind { return ShapeKindRectangle }

// Style returns the shape's mutable fill and stroke settings.
func (r *RectangleShape) Style() *ShapeStyle { return &r.style }

// effectiveRadius clamps the corner radius to half the shorter side.
func (r *RectangleShape) effectiveRadius() float64 {
	radius := r.CornerRadius
	if radius <= 0 {
		return 0
	}
	if half := r.Width / 2; radius > half {
		radius = half
	}
	if half := r.Height / 2; radius > half {
		radius = half
	}
	return radius
}

// Bounds returns the rectangle expanded by any stroke width.
func (r *RectangleShape) Bounds() Rect {
	return RectXYWH(r.X, r.Y, r.Width, r.Height).Expand(r.style.strokePad())
}

// ContainsPoint tests the point against the exact geometry. Filled
// rectangles test the interior, stroke-only rectangles test the
// border ring.
func (r *RectangleShape) ContainsPoint(x, y float64) bool {
	radius := r.effectiveRadius()
	if r.style.Fill {
		return roundedRectContains(x, y, r.X, r.Y, r.Width, r.Height, radius)
	}
	if !r.style.Stroke {
		return false
	}

	half := r.style.StrokeWidth / 2
	outer := roundedRectContains(x, y, r.X-half, r.Y-half, r.Width+2*half, r.Height+2*half, radius+half)
	if !outer {
		return false
	}
	innerW := r.Width - 2*half
	innerH := r.Height - 2*half
	if innerW <= 0 || innerH <= 0 {
		return true
	}
	innerR := radius - half
	if innerR < 0 {
		innerR = 0
	}
	return !roundedRectContains(x, y, r.X+half, r.Y+half, innerW, innerH, innerR)
}

// roundedRectContains tests a point against a rectangle with rounded
// corners of the given radius.
func roundedRectContains(px, py, x, y, w, h, radius float64) bool {
	if px < x || px > x+w || py < y || py > y+h {
		return false
	}
	if radius <= 0 {
		return true
	}

	// Only the four corner squares need the circle test.
	var cx, cy float64
	switch {
	case px < x+radius && py < y+radius:
		cx, cy = x+radius, y+radius
	case px > x+w-radius && py < y+radius:
		cx, cy = x+w-radius, y+radius
	case px > x+w-radius && py > y+h-radius:
		cx, cy = x+w-radius, y+h-radius
	case px < x+radius && py > y+h-radius:
		cx, cy = x+radius, y+h-radius
	default:
		return true
	}

	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= radius*radius
}

// ControlPoints returns the four corner anchors.
func (r *RectangleShape) ControlPoints() []ControlPoint {
	return []ControlPoint{
		{ID: "tl", X: r.X, Y: r.Y, Kind: ControlAnchor},
		{ID: "tr", X: r.X + r.Width, Y: r.Y, Kind: ControlAnchor},
		{ID: "br", X: r.X + r.Width, Y: r.Y + r.Height, Kind: ControlAnchor},
		{ID: "bl", X: r.X, Y: r.Y + r.Height, Kind: ControlAnchor},
	}
}

// SetControlPoint moves a corner, resizing the rectangle. The
// rectangle is renormalized so width and height stay positive.
func (r *RectangleShape) SetControlPoint(id string, x, y float64) bool {
	right := r.X + r.Width
	bottom := r.Y + r.Height

	switch id {
	case "tl":
		r.X, r.Y = x, y
	case "tr":
		right, r.Y = x, y
	case "br":
		right, bottom = x, y
	case "bl":
		r.X, bottom = x, y
	default:
		return false
	}

	r.Width = right - r.X
	r.Height = bottom - r.Y
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return true
}

// MoveBy translates the rectangle.
func (r *RectangleShape) MoveBy(dx, dy float64) {
	r.X += dx
	r.Y += dy
}

// Clone returns a deep copy preserving the id.
func (r *RectangleShape) Clone() Shape {
	dup := *r
	return &dup
}

func (r *RectangleShape) outline() *Path {
	p := NewPath()
	if radius := r.effectiveRadius(); radius > 0 {
		p.RoundedRectangle(r.X, r.Y, r.Width, r.Height, radius)
	} else {
		p.Rectangle(r.X, r.Y, r.Width, r.Height)
	}
	return p
}

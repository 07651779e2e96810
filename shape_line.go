package easel

// LineCap controls how line endpoints are drawn.
type LineCap string

const (
	LineCapButt  LineCap = "butt"
	LineCapRound LineCap = "round"
)

// LineShape is a straight stroked segment. Lines never fill; the
// style's fill settings are ignored.
type LineShape struct {
	id    string
	style ShapeStyle

	X1, Y1 float64
	X2, Y2 float64
	Cap    LineCap
}

// NewLineShape creates a line with the default style, stroke enabled
// and round caps.
func NewLineShape(x1, y1, x2, y2 float64) *LineShape {
	style := DefaultShapeStyle()
	style.Fill = false
	style.Stroke = true
	return &LineShape{
		id:    newShapeID(),
		style: style,
		X1:    x1,
		Y1:    y1,
		X2:    x2,
		Y2:    y2,
		Cap:   LineCapRound,
	}
}

// ID returns the shape's stable identifier.
func (l *LineShape) ID() string { return l.id }

func (l *LineShape) setID(id string) { l.id = id }

// Kind returns ShapeKindLine.
func (l *LineShape) Kind() ShapeKind { return ShapeKindLine }

// Style returns the shape's mutable stroke settings.
func (l *LineShape) Style() *ShapeStyle { return &l.style }

// Bounds returns the segment's box expanded by half the stroke width.
func (l *LineShape) Bounds() Rect {
	pad := l.style.StrokeWidth / 2
	if pad < 0.5 {
		pad = 0.5
	}
	return NewRect(Pt(l.X1, l.Y1), Pt(l.X2, l.Y2)).Expand(pad)
}

// ContainsPoint reports whether the point lies within half the stroke
// width of the segment.
func (l *LineShape) ContainsPoint(x, y float64) bool {
	half := l.style.StrokeWidth / 2
	if half < 0.5 {
		half = 0.5
	}
	d := pointSegmentDistance(Pt(x, y), Pt(l.X1, l.Y1), Pt(l.X2, l.Y2))
	return d <= half
}

// ControlPoints returns the two endpoint anchors.
func (l *LineShape) ControlPoints() []ControlPoint {
	return []ControlPoint{
		{ID: "start", X: l.X1, Y: l.Y1, Kind: ControlAnchor},
		{ID: "end", X: l.X2, Y: l.Y2, Kind: ControlAnchor},
	}
}

// SetControlPoint moves one endpoint.
func (l *LineShape) SetControlPoint(id string, x, y float64) bool {
	switch id {
	case "start":
		l.X1, l.Y1 = x, y
	case "end":
		l.X2, l.Y2 = x, y
	default:
		return false
	}
	return true
}

// MoveBy translates both endpoints.
func (l *LineShape) MoveBy(dx, dy float64) {
	l.X1 += dx
	l.Y1 += dy
	l.X2 += dx
	l.Y2 += dy
}

// Clone returns a deep copy preserving the id.
func (l *LineShape) Clone() Shape {
	dup := *l
	return &dup
}

func (l *LineShape) outline() *Path {
	p := NewPath()
	p.MoveTo(l.X1, l.Y1)
	p.LineTo(l.X2, l.Y2)
	return p
}

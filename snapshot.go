package easel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"
)

// Snapshot structs are the JSON exchange form of a document. Field
// names mirror the canvas wire format: camelCase keys, blend modes as
// CSS compositing keywords, colors as hex strings, raster content as
// a PNG data URL.
//
// Serialization preserves ids, so a deserialized document continues
// the original's identity. Snapshots hold plain data; marshal them
// with encoding/json.

// DocumentSnapshot is the serialized form of a Document.
type DocumentSnapshot struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	ActiveIndex int             `json:"activeIndex"`
	Layers      []LayerSnapshot `json:"layers"`
}

// LayerSnapshot is the serialized form of one layer. The Type tag
// selects which of the content fields are meaningful.
type LayerSnapshot struct {
	ID        string    `json:"id"`
	Type      LayerKind `json:"type"`
	Name      string    `json:"name"`
	Visible   bool      `json:"visible"`
	Locked    bool      `json:"locked,omitempty"`
	Opacity   float64   `json:"opacity"`
	BlendMode BlendMode `json:"blendMode"`
	OffsetX   int       `json:"offsetX"`
	OffsetY   int       `json:"offsetY"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`

	// Effect stack, bottom to top.
	Effects []EffectSnapshot `json:"effects,omitempty"`

	// Raster content: PNG data URL. Empty means a transparent buffer
	// of the layer's dimensions.
	ImageData string `json:"imageData,omitempty"`

	// Vector content.
	Shapes []ShapeSnapshot `json:"shapes,omitempty"`

	// Text content.
	Text       string     `json:"text,omitempty"`
	Font       FontFamily `json:"font,omitempty"`
	FontSize   float64    `json:"fontSize,omitempty"`
	TextColor  string     `json:"textColor,omitempty"`
	LineHeight float64    `json:"lineHeight,omitempty"`
}

// ShapeSnapshot is the serialized form of one shape. Geometry fields
// are populated according to the Type tag; the rest stay at their
// zero values and are omitted from JSON.
type ShapeSnapshot struct {
	ID          string    `json:"id"`
	Type        ShapeKind `json:"type"`
	Fill        bool      `json:"fill"`
	Stroke      bool      `json:"stroke"`
	FillColor   string    `json:"fillColor"`
	StrokeColor string    `json:"strokeColor"`
	StrokeWidth float64   `json:"strokeWidth"`
	Opacity     float64   `json:"opacity"`

	X            float64 `json:"x,omitempty"`
	Y            float64 `json:"y,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`

	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	RX float64 `json:"rx,omitempty"`
	RY float64 `json:"ry,omitempty"`

	X1      float64 `json:"x1,omitempty"`
	Y1      float64 `json:"y1,omitempty"`
	X2      float64 `json:"x2,omitempty"`
	Y2      float64 `json:"y2,omitempty"`
	LineCap LineCap `json:"lineCap,omitempty"`

	Points     []PointSnapshot     `json:"points,omitempty"`
	PathPoints []PathPointSnapshot `json:"pathPoints,omitempty"`
	Closed     bool                `json:"closed,omitempty"`
}

// PointSnapshot is a bare coordinate pair.
type PointSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PathPointSnapshot is one serialized path anchor. Handles are
// offsets relative to the anchor, matching the in-memory form.
type PathPointSnapshot struct {
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Type      PathPointType  `json:"type"`
	HandleIn  *PointSnapshot `json:"handleIn,omitempty"`
	HandleOut *PointSnapshot `json:"handleOut,omitempty"`
}

// pngDataURL encodes a pixmap as a PNG data URL.
func pngDataURL(p *Pixmap) string {
	var buf bytes.Buffer
	if err := p.EncodePNG(&buf); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// decodePNGDataURL decodes a PNG data URL (or bare base64 PNG) into a
// pixmap.
func decodePNGDataURL(s string) (*Pixmap, error) {
	if _, rest, ok := strings.Cut(s, ","); ok {
		s = rest
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("easel: decode image data: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("easel: decode image data: %w", err)
	}
	return FromImage(img), nil
}

// layerSnapshotBase fills the properties every layer variant shares.
func layerSnapshotBase(l Layer) *LayerSnapshot {
	x, y := l.Offset()
	s := &LayerSnapshot{
		ID:        l.ID(),
		Type:      l.Kind(),
		Name:      l.Name(),
		Visible:   l.Visible(),
		Locked:    l.Locked(),
		Opacity:   l.Opacity(),
		BlendMode: l.BlendMode(),
		OffsetX:   x,
		OffsetY:   y,
		Width:     l.Width(),
		Height:    l.Height(),
	}
	if fx := l.Effects(); len(fx) > 0 {
		s.Effects = make([]EffectSnapshot, len(fx))
		for i, e := range fx {
			s.Effects[i] = *e.Snapshot()
		}
	}
	return s
}

func applyLayerSnapshotBase(l Layer, s *LayerSnapshot) error {
	l.setID(s.ID)
	l.SetVisible(s.Visible)
	l.SetLocked(s.Locked)
	l.SetOpacity(s.Opacity)
	l.SetBlendMode(s.BlendMode)
	l.SetOffset(s.OffsetX, s.OffsetY)
	if len(s.Effects) > 0 {
		effects := make([]LayerEffect, len(s.Effects))
		for i := range s.Effects {
			e, err := EffectFromSnapshot(&s.Effects[i])
			if err != nil {
				return err
			}
			effects[i] = e
		}
		l.setEffects(effects)
	}
	return nil
}

// Snapshot returns the layer's serialized form.
func (l *RasterLayer) Snapshot() *LayerSnapshot {
	s := layerSnapshotBase(l)
	s.ImageData = pngDataURL(l.pixels)
	return s
}

// Snapshot returns the layer's serialized form. Shapes are serialized
// in render order; the cached rasterization is not part of the wire
// format.
func (l *VectorLayer) Snapshot() *LayerSnapshot {
	s := layerSnapshotBase(l)
	s.Shapes = make([]ShapeSnapshot, len(l.shapes))
	for i, shape := range l.shapes {
		s.Shapes[i] = *shape.Snapshot()
	}
	return s
}

// Snapshot returns the layer's serialized form. Width and height
// record the measured size; they are informational and recomputed on
// load.
func (l *TextLayer) Snapshot() *LayerSnapshot {
	s := layerSnapshotBase(l)
	s.Text = l.text
	s.Font = l.family
	s.FontSize = l.fontSize
	s.TextColor = l.color.HexString()
	s.LineHeight = l.lineHeight
	return s
}

// LayerFromSnapshot rebuilds a layer from its serialized form,
// preserving the id.
func LayerFromSnapshot(s *LayerSnapshot) (Layer, error) {
	switch s.Type {
	case LayerKindRaster:
		l := NewRasterLayer(s.Name, s.Width, s.Height)
		if s.ImageData != "" {
			pixels, err := decodePNGDataURL(s.ImageData)
			if err != nil {
				return nil, fmt.Errorf("easel: layer %q: %w", s.ID, err)
			}
			l.pixels = pixels
		}
		if err := applyLayerSnapshotBase(l, s); err != nil {
			return nil, fmt.Errorf("easel: layer %q: %w", s.ID, err)
		}
		return l, nil

	case LayerKindVector:
		l := NewVectorLayer(s.Name, s.Width, s.Height)
		for i := range s.Shapes {
			shape, err := ShapeFromSnapshot(&s.Shapes[i])
			if err != nil {
				return nil, fmt.Errorf("easel: layer %q: %w", s.ID, err)
			}
			l.AddShape(shape)
		}
		if err := applyLayerSnapshotBase(l, s); err != nil {
			return nil, fmt.Errorf("easel: layer %q: %w", s.ID, err)
		}
		return l, nil

	case LayerKindText:
		l := NewTextLayer(s.Name, s.Text)
		l.family = s.Font
		if s.FontSize > 0 {
			l.fontSize = s.FontSize
		}
		if s.TextColor != "" {
			l.color = Hex(s.TextColor)
		}
		if s.LineHeight > 0 {
			l.lineHeight = s.LineHeight
		}
		if err := applyLayerSnapshotBase(l, s); err != nil {
			return nil, fmt.Errorf("easel: layer %q: %w", s.ID, err)
		}
		return l, nil

	default:
		return nil, fmt.Errorf("easel: unknown layer type %q", s.Type)
	}
}

// shapeSnapshotBase fills the style fields every shape shares.
func shapeSnapshotBase(s Shape) *ShapeSnapshot {
	style := s.Style()
	return &ShapeSnapshot{
		ID:          s.ID(),
		Type:        s.Kind(),
		Fill:        style.Fill,
		Stroke:      style.Stroke,
		FillColor:   style.FillColor.HexString(),
		StrokeColor: style.StrokeColor.HexString(),
		StrokeWidth: style.StrokeWidth,
		Opacity:     style.Opacity,
	}
}

func shapeStyleFromSnapshot(s *ShapeSnapshot) ShapeStyle {
	return ShapeStyle{
		Fill:        s.Fill,
		Stroke:      s.Stroke,
		FillColor:   Hex(s.FillColor),
		StrokeColor: Hex(s.StrokeColor),
		StrokeWidth: s.StrokeWidth,
		Opacity:     s.Opacity,
	}
}

// Snapshot returns the shape's serialized form.
func (r *RectangleShape) Snapshot() *ShapeSnapshot {
	s := shapeSnapshotBase(r)
	s.X, s.Y = r.X, r.Y
	s.Width, s.Height = r.Width, r.Height
	s.CornerRadius = r.CornerRadius
	return s
}

// Snapshot returns the shape's serialized form.
func (e *EllipseShape) Snapshot() *ShapeSnapshot {
	s := shapeSnapshotBase(e)
	s.CX, s.CY = e.CX, e.CY
	s.RX, s.RY = e.RX, e.RY
	return s
}

// Snapshot returns the shape's serialized form.
func (l *LineShape) Snapshot() *ShapeSnapshot {
	s := shapeSnapshotBase(l)
	s.X1, s.Y1 = l.X1, l.Y1
	s.X2, s.Y2 = l.X2, l.Y2
	s.LineCap = l.Cap
	return s
}

// Snapshot returns the shape's serialized form.
func (p *PolygonShape) Snapshot() *ShapeSnapshot {
	s := shapeSnapshotBase(p)
	s.Points = make([]PointSnapshot, len(p.Points))
	for i, pt := range p.Points {
		s.Points[i] = PointSnapshot{X: pt.X, Y: pt.Y}
	}
	s.Closed = p.Closed
	return s
}

// Snapshot returns the shape's serialized form.
func (p *PathShape) Snapshot() *ShapeSnapshot {
	s := shapeSnapshotBase(p)
	s.PathPoints = make([]PathPointSnapshot, len(p.Points))
	for i, pp := range p.Points {
		out := PathPointSnapshot{
			X:    pp.Position.X,
			Y:    pp.Position.Y,
			Type: pp.Type,
		}
		if pp.HandleIn != nil {
			out.HandleIn = &PointSnapshot{X: pp.HandleIn.X, Y: pp.HandleIn.Y}
		}
		if pp.HandleOut != nil {
			out.HandleOut = &PointSnapshot{X: pp.HandleOut.X, Y: pp.HandleOut.Y}
		}
		s.PathPoints[i] = out
	}
	s.Closed = p.Closed
	return s
}

// ShapeFromSnapshot rebuilds a shape from its serialized form,
// preserving the id.
func ShapeFromSnapshot(s *ShapeSnapshot) (Shape, error) {
	var shape Shape
	switch s.Type {
	case ShapeKindRectangle:
		r := NewRectangleShape(s.X, s.Y, s.Width, s.Height)
		r.CornerRadius = s.CornerRadius
		shape = r

	case ShapeKindEllipse:
		shape = NewEllipseShape(s.CX, s.CY, s.RX, s.RY)

	case ShapeKindLine:
		l := NewLineShape(s.X1, s.Y1, s.X2, s.Y2)
		if s.LineCap != "" {
			l.Cap = s.LineCap
		}
		shape = l

	case ShapeKindPolygon:
		pts := make([]Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = Pt(p.X, p.Y)
		}
		shape = NewPolygonShape(pts, s.Closed)

	case ShapeKindPath:
		pts := make([]PathPoint, len(s.PathPoints))
		for i, p := range s.PathPoints {
			pp := PathPoint{Position: Pt(p.X, p.Y), Type: p.Type}
			if p.HandleIn != nil {
				pp.HandleIn = &Point{X: p.HandleIn.X, Y: p.HandleIn.Y}
			}
			if p.HandleOut != nil {
				pp.HandleOut = &Point{X: p.HandleOut.X, Y: p.HandleOut.Y}
			}
			pts[i] = pp
		}
		shape = NewPathShape(pts, s.Closed)

	default:
		return nil, fmt.Errorf("easel: unknown shape type %q", s.Type)
	}

	*shape.Style() = shapeStyleFromSnapshot(s)
	shape.setID(s.ID)
	return shape, nil
}

// Snapshot returns the document's serialized form.
func (d *Document) Snapshot() *DocumentSnapshot {
	s := &DocumentSnapshot{
		Width:       d.width,
		Height:      d.height,
		ActiveIndex: d.activeIndex,
		Layers:      make([]LayerSnapshot, len(d.layers)),
	}
	for i, l := range d.layers {
		s.Layers[i] = *l.Snapshot()
	}
	return s
}

// DocumentFromSnapshot rebuilds a document from its serialized form.
// Layer and shape ids are preserved; the active index is clamped into
// the rebuilt stack.
func DocumentFromSnapshot(s *DocumentSnapshot) (*Document, error) {
	d := NewDocument(s.Width, s.Height)
	for i := range s.Layers {
		l, err := LayerFromSnapshot(&s.Layers[i])
		if err != nil {
			return nil, err
		}
		d.layers = append(d.layers, l)
	}

	switch {
	case len(d.layers) == 0:
		d.activeIndex = -1
	case s.ActiveIndex < 0:
		d.activeIndex = 0
	case s.ActiveIndex >= len(d.layers):
		d.activeIndex = len(d.layers) - 1
	default:
		d.activeIndex = s.ActiveIndex
	}
	return d, nil
}

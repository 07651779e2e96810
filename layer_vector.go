package easel

import (
	"math"

	"github.com/easelkit/easel/internal/raster"
)

// OrderDirection names a direction in a layer's shape render order.
type OrderDirection uint8

const (
	// OrderUp moves a shape one step toward the top.
	OrderUp OrderDirection = iota
	// OrderDown moves a shape one step toward the bottom.
	OrderDown
)

// supersampleFactor is the oversampling used for final-quality vector
// rendering before downscaling.
const supersampleFactor = 4

// controlPointHitRadius is the pick distance for control points, in
// canvas pixels.
const controlPointHitRadius = 6.0

var _ Layer = (*VectorLayer)(nil)

// VectorLayer owns an ordered list of shapes, rendered bottom to top,
// plus a selection set and a cached rasterization. Every shape
// mutation goes through the layer (or calls Invalidate) so the cache
// is regenerated before the next composite reads it.
type VectorLayer struct {
	baseLayer
	width  int
	height int

	shapes    []Shape
	selection map[string]struct{}

	cache   *Pixmap
	dirty   bool
	editing bool
}

// NewVectorLayer creates an empty vector layer of the given size.
func NewVectorLayer(name string, width, height int) *VectorLayer {
	return &VectorLayer{
		baseLayer: newBaseLayer(name),
		width:     width,
		height:    height,
		selection: make(map[string]struct{}),
		dirty:     true,
	}
}

// Kind returns LayerKindVector.
func (l *VectorLayer) Kind() LayerKind { return LayerKindVector }

// Width returns the layer surface width.
func (l *VectorLayer) Width() int { return l.width }

// Height returns the layer surface height.
func (l *VectorLayer) Height() int { return l.height }

// Shapes returns the shape list in render order, bottom to top.
func (l *VectorLayer) Shapes() []Shape { return l.shapes }

// ShapeCount returns the number of shapes.
func (l *VectorLayer) ShapeCount() int { return len(l.shapes) }

// Invalidate marks the cached rasterization stale.
func (l *VectorLayer) Invalidate() { l.dirty = true }

// AddShape appends a shape at the top of the render order. A locked
// layer refuses the shape and reports false.
func (l *VectorLayer) AddShape(s Shape) bool {
	if l.locked {
		return false
	}
	l.shapes = append(l.shapes, s)
	l.dirty = true
	return true
}

// RemoveShape deletes a shape by id. Unknown ids and locked layers
// report false. The shape is also dropped from the selection, keeping
// the selection a subset of existing shapes.
func (l *VectorLayer) RemoveShape(id string) bool {
	if l.locked {
		return false
	}
	for i, s := range l.shapes {
		if s.ID() == id {
			l.shapes = append(l.shapes[:i], l.shapes[i+1:]...)
			delete(l.selection, id)
			l.dirty = true
			return true
		}
	}
	return false
}

// setShapes replaces the shape list wholesale, pruning selection
// entries that no longer resolve. Used when restoring history state.
func (l *VectorLayer) setShapes(shapes []Shape) {
	l.shapes = shapes
	for id := range l.selection {
		if l.ShapeByID(id) == nil {
			delete(l.selection, id)
		}
	}
	l.dirty = true
}

// ShapeByID returns the shape with the given id, or nil.
func (l *VectorLayer) ShapeByID(id string) Shape {
	for _, s := range l.shapes {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// ShapeAt returns the topmost shape containing the point, or nil.
func (l *VectorLayer) ShapeAt(x, y float64) Shape {
	for i := len(l.shapes) - 1; i >= 0; i-- {
		if l.shapes[i].ContainsPoint(x, y) {
			return l.shapes[i]
		}
	}
	return nil
}

// SelectShape adds a shape to the selection. Without additive the
// selection is replaced. Unknown ids report false and leave the
// selection untouched.
func (l *VectorLayer) SelectShape(id string, additive bool) bool {
	if l.ShapeByID(id) == nil {
		return false
	}
	if !additive {
		clear(l.selection)
	}
	l.selection[id] = struct{}{}
	return true
}

// DeselectShape removes a shape from the selection.
func (l *VectorLayer) DeselectShape(id string) {
	delete(l.selection, id)
}

// ClearSelection empties the selection.
func (l *VectorLayer) ClearSelection() {
	clear(l.selection)
}

// IsSelected reports whether the shape id is selected.
func (l *VectorLayer) IsSelected(id string) bool {
	_, ok := l.selection[id]
	return ok
}

// SelectedShapes returns the selected shapes in render order.
func (l *VectorLayer) SelectedShapes() []Shape {
	var out []Shape
	for _, s := range l.shapes {
		if l.IsSelected(s.ID()) {
			out = append(out, s)
		}
	}
	return out
}

// MoveShapeInOrder swaps a shape with its neighbor in render order.
// Reports false for unknown ids, moves past either end, and locked
// layers.
func (l *VectorLayer) MoveShapeInOrder(id string, dir OrderDirection) bool {
	if l.locked {
		return false
	}
	idx := -1
	for i, s := range l.shapes {
		if s.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	switch dir {
	case OrderUp:
		if idx == len(l.shapes)-1 {
			return false
		}
		l.shapes[idx], l.shapes[idx+1] = l.shapes[idx+1], l.shapes[idx]
	case OrderDown:
		if idx == 0 {
			return false
		}
		l.shapes[idx], l.shapes[idx-1] = l.shapes[idx-1], l.shapes[idx]
	default:
		return false
	}
	l.dirty = true
	return true
}

// ControlPointAt finds the control point under the cursor, scanning
// selected shapes first, topmost first. Reports false on miss.
func (l *VectorLayer) ControlPointAt(x, y float64) (Shape, ControlPoint, bool) {
	if s, cp, ok := l.scanControlPoints(x, y, true); ok {
		return s, cp, true
	}
	return l.scanControlPoints(x, y, false)
}

func (l *VectorLayer) scanControlPoints(x, y float64, selected bool) (Shape, ControlPoint, bool) {
	for i := len(l.shapes) - 1; i >= 0; i-- {
		s := l.shapes[i]
		if l.IsSelected(s.ID()) != selected {
			continue
		}
		for _, cp := range s.ControlPoints() {
			dx := cp.X - x
			dy := cp.Y - y
			if math.Sqrt(dx*dx+dy*dy) <= controlPointHitRadius {
				return s, cp, true
			}
		}
	}
	return nil, ControlPoint{}, false
}

// MoveShapeBy translates a shape and invalidates the cache. Unknown
// ids and locked layers report false.
func (l *VectorLayer) MoveShapeBy(id string, dx, dy float64) bool {
	if l.locked {
		return false
	}
	s := l.ShapeByID(id)
	if s == nil {
		return false
	}
	s.MoveBy(dx, dy)
	l.dirty = true
	return true
}

// SetShapeControlPoint moves one control point of a shape and
// invalidates the cache. Unknown ids and locked layers report false.
func (l *VectorLayer) SetShapeControlPoint(shapeID, controlID string, x, y float64) bool {
	if l.locked {
		return false
	}
	s := l.ShapeByID(shapeID)
	if s == nil {
		return false
	}
	if !s.SetControlPoint(controlID, x, y) {
		return false
	}
	l.dirty = true
	return true
}

// ShapesBounds returns the union of all shape bounds, or an empty
// rect for an empty layer.
func (l *VectorLayer) ShapesBounds() Rect {
	var bounds Rect
	for i, s := range l.shapes {
		if i == 0 {
			bounds = s.Bounds()
		} else {
			bounds = bounds.Union(s.Bounds())
		}
	}
	return bounds
}

// StartEditing switches to the fast preview render path used during
// interactive drags. Geometry is unchanged; only the rendering
// technique differs.
func (l *VectorLayer) StartEditing() {
	if l.editing {
		return
	}
	l.editing = true
	l.dirty = true
}

// EndEditing switches back to the final-quality render path.
func (l *VectorLayer) EndEditing() {
	if !l.editing {
		return
	}
	l.editing = false
	l.dirty = true
}

// Editing reports whether the preview render path is active.
func (l *VectorLayer) Editing() bool { return l.editing }

// Render regenerates the cached rasterization now. The preview path
// draws aliased at target resolution; the final path renders
// supersampled with anti-aliasing and downsamples.
func (l *VectorLayer) Render() {
	if l.editing {
		l.cache = l.renderAt(1, false)
	} else {
		big := l.renderAt(supersampleFactor, true)
		l.cache = downsample(big, l.width, l.height)
	}
	l.dirty = false
}

func (l *VectorLayer) renderAt(scale int, antialias bool) *Pixmap {
	pm := NewPixmap(l.width*scale, l.height*scale)
	if len(l.shapes) == 0 {
		return pm
	}

	r := raster.NewRasterizer(pm.Width(), pm.Height())
	for _, s := range l.shapes {
		renderShape(r, pm, s, float64(scale), antialias)
	}
	return pm
}

// Surface returns the cached rasterization, regenerating it first if
// any shape changed since the last render.
func (l *VectorLayer) Surface() *Pixmap {
	if l.dirty || l.cache == nil {
		l.Render()
	}
	return l.cache
}

// refreshShapeIDs assigns fresh ids to every shape. The selection is
// cleared since it references the old ids. Used when duplicating a
// layer so the copy's shapes are addressable independently.
func (l *VectorLayer) refreshShapeIDs() {
	for _, s := range l.shapes {
		s.setID(newShapeID())
	}
	clear(l.selection)
}

// Clone returns a deep copy preserving the id. Shapes and the cached
// raster are copied; the clone renders independently afterward.
func (l *VectorLayer) Clone() Layer {
	dup := *l
	dup.shapes = make([]Shape, len(l.shapes))
	for i, s := range l.shapes {
		dup.shapes[i] = s.Clone()
	}
	dup.selection = make(map[string]struct{}, len(l.selection))
	for id := range l.selection {
		dup.selection[id] = struct{}{}
	}
	if l.cache != nil {
		dup.cache = l.cache.Clone()
	}
	dup.effects = cloneEffects(l.effects)
	return &dup
}

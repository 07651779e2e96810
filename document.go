package easel

import "errors"

// ErrLayerNotFound indicates a layer lookup by id or index failed.
var ErrLayerNotFound = errors.New("easel: layer not found")

// ErrLayerLocked indicates the operation targeted a locked layer.
var ErrLayerLocked = errors.New("easel: layer is locked")

// ErrLastLayer indicates an attempt to remove the only remaining
// layer. Documents never go back to empty once a layer exists.
var ErrLastLayer = errors.New("easel: cannot remove the last layer")

// Document owns the canvas dimensions and the bottom-to-top layer
// stack. The active index is -1 while the document is empty and
// otherwise always addresses a live layer, through every structural
// operation.
//
// Documents are not safe for concurrent use. All mutation is expected
// to happen on a single goroutine, typically the one dispatching
// input events.
type Document struct {
	width       int
	height      int
	layers      []Layer
	activeIndex int
}

// NewDocument creates an empty document of the given size.
func NewDocument(width, height int) *Document {
	return &Document{
		width:       width,
		height:      height,
		activeIndex: -1,
	}
}

// Width returns the canvas width in pixels.
func (d *Document) Width() int { return d.width }

// Height returns the canvas height in pixels.
func (d *Document) Height() int { return d.height }

// Layers returns the layer stack, bottom to top.
func (d *Document) Layers() []Layer { return d.layers }

// LayerCount returns the number of layers.
func (d *Document) LayerCount() int { return len(d.layers) }

// ActiveIndex returns the active layer index, or -1 for an empty
// document.
func (d *Document) ActiveIndex() int { return d.activeIndex }

// ActiveLayer returns the active layer, or nil for an empty document.
func (d *Document) ActiveLayer() Layer {
	if d.activeIndex < 0 {
		return nil
	}
	return d.layers[d.activeIndex]
}

// AddLayer appends the layer at the top of the stack and makes it
// active. Returns the layer for chaining; nil input is ignored.
func (d *Document) AddLayer(l Layer) Layer {
	if l == nil {
		return nil
	}
	d.layers = append(d.layers, l)
	d.activeIndex = len(d.layers) - 1
	Logger().Debug("layer added", "id", l.ID(), "name", l.Name(), "kind", l.Kind())
	return l
}

// RemoveLayer removes the layer at index. Out-of-range indices are a
// no-op. Removing a locked layer fails with ErrLayerLocked; removing
// the only layer fails with ErrLastLayer.
//
// If the active layer is removed, the layer below it becomes active.
func (d *Document) RemoveLayer(index int) error {
	if index < 0 || index >= len(d.layers) {
		return nil
	}
	if len(d.layers) == 1 {
		return ErrLastLayer
	}
	l := d.layers[index]
	if l.Locked() {
		return ErrLayerLocked
	}

	d.layers = append(d.layers[:index], d.layers[index+1:]...)
	switch {
	case index == d.activeIndex:
		d.activeIndex = max(0, index-1)
	case index < d.activeIndex:
		d.activeIndex--
	}
	Logger().Debug("layer removed", "id", l.ID(), "name", l.Name())
	return nil
}

// DuplicateLayer deep-copies the layer at index and inserts the copy
// directly above the source. The copy gets a fresh id (and, for
// vector layers, fresh shape ids) and becomes active. Returns nil on
// a bad index.
func (d *Document) DuplicateLayer(index int) Layer {
	if index < 0 || index >= len(d.layers) {
		return nil
	}
	src := d.layers[index]

	dup := src.Clone()
	dup.setID(newLayerID())
	dup.SetName(src.Name() + " copy")
	if vl, ok := dup.(*VectorLayer); ok {
		vl.refreshShapeIDs()
	}

	d.layers = append(d.layers, nil)
	copy(d.layers[index+2:], d.layers[index+1:])
	d.layers[index+1] = dup
	d.activeIndex = index + 1
	Logger().Debug("layer duplicated", "source", src.ID(), "copy", dup.ID())
	return dup
}

// MoveLayer moves the layer at index to newIndex, shifting the layers
// in between. The target position is clamped to the stack. The active
// layer stays the same layer, wherever it lands.
func (d *Document) MoveLayer(index, newIndex int) error {
	if index < 0 || index >= len(d.layers) {
		return ErrLayerNotFound
	}
	if newIndex < 0 {
		newIndex = 0
	} else if newIndex >= len(d.layers) {
		newIndex = len(d.layers) - 1
	}
	if index == newIndex {
		return nil
	}

	active := d.ActiveLayer()
	moved := d.layers[index]
	d.layers = append(d.layers[:index], d.layers[index+1:]...)
	d.layers = append(d.layers, nil)
	copy(d.layers[newIndex+1:], d.layers[newIndex:])
	d.layers[newIndex] = moved
	if active != nil {
		d.activeIndex = d.indexOf(active)
	}
	Logger().Debug("layer moved", "id", moved.ID(), "from", index, "to", newIndex)
	return nil
}

// MergeDown composites the layer at index onto the layer below it,
// using the upper layer's blend mode and opacity. The result is a
// single raster layer sized to the union of both layers' bounds that
// keeps the lower layer's identity and composite properties.
//
// Index 0 (and out-of-range indices) are a no-op. A locked party on
// either side fails with ErrLayerLocked.
func (d *Document) MergeDown(index int) error {
	if index < 1 || index >= len(d.layers) {
		return nil
	}
	upper := d.layers[index]
	lower := d.layers[index-1]
	if upper.Locked() || lower.Locked() {
		return ErrLayerLocked
	}

	lx, ly := lower.Offset()
	ux, uy := upper.Offset()
	minX := min(lx, ux)
	minY := min(ly, uy)
	maxX := max(lx+lower.Width(), ux+upper.Width())
	maxY := max(ly+lower.Height(), uy+upper.Height())

	merged := NewRasterLayer(lower.Name(), maxX-minX, maxY-minY)
	merged.setID(lower.ID())
	merged.SetVisible(lower.Visible())
	merged.SetOpacity(lower.Opacity())
	merged.SetBlendMode(lower.BlendMode())
	merged.SetOffset(minX, minY)

	// The lower layer's pixels land raw; its own opacity and blend
	// mode still apply when the merged layer is composited later.
	merged.Pixels().Paste(lower.Surface(), lx-minX, ly-minY)
	blendSurface(merged.Pixels(), upper.Surface(), ux-minX, uy-minY, upper.BlendMode(), upper.Opacity())

	d.layers[index-1] = merged
	d.layers = append(d.layers[:index], d.layers[index+1:]...)
	switch {
	case d.activeIndex == index || d.activeIndex == index-1:
		d.activeIndex = index - 1
	case d.activeIndex > index:
		d.activeIndex--
	}
	Logger().Debug("layer merged down", "upper", upper.ID(), "into", merged.ID())
	return nil
}

// FlattenAll collapses every visible layer into one document-sized
// raster layer named "Background", which replaces the whole stack and
// becomes active. Invisible layers are discarded. Returns the new
// layer, or nil for an empty document.
func (d *Document) FlattenAll() Layer {
	if len(d.layers) == 0 {
		return nil
	}

	flat := NewRasterLayer("Background", d.width, d.height)
	mergeVisible(flat.Pixels(), d.layers)

	d.layers = []Layer{flat}
	d.activeIndex = 0
	Logger().Debug("document flattened", "id", flat.ID())
	return flat
}

// RasterizeLayer renders a vector or text layer and replaces it in
// place with a raster layer carrying the same id, name, composite
// properties and stack position. Calling it on a layer that is
// already raster returns that same layer. Unknown ids and locked
// layers return nil; locked layers are left untouched.
func (d *Document) RasterizeLayer(id string) Layer {
	index := d.LayerIndex(id)
	if index < 0 {
		return nil
	}
	l := d.layers[index]
	if rl, ok := l.(*RasterLayer); ok {
		return rl
	}
	if l.Locked() {
		Logger().Warn("rasterize refused, layer is locked", "id", id)
		return nil
	}

	rasterized := NewRasterLayer(l.Name(), l.Width(), l.Height())
	rasterized.setID(l.ID())
	rasterized.SetVisible(l.Visible())
	rasterized.SetOpacity(l.Opacity())
	rasterized.SetBlendMode(l.BlendMode())
	x, y := l.Offset()
	rasterized.SetOffset(x, y)
	rasterized.Pixels().Paste(l.Surface(), 0, 0)

	d.layers[index] = rasterized
	Logger().Debug("layer rasterized", "id", id, "was", l.Kind())
	return rasterized
}

// SetActiveLayer sets the active layer by index. Invalid indices are
// a no-op.
func (d *Document) SetActiveLayer(index int) {
	if index < 0 || index >= len(d.layers) {
		return
	}
	d.activeIndex = index
}

// SetActiveLayerByID sets the active layer by id. Unknown ids are a
// no-op.
func (d *Document) SetActiveLayerByID(id string) {
	if index := d.LayerIndex(id); index >= 0 {
		d.activeIndex = index
	}
}

// LayerIndex returns the stack index of the layer with the given id,
// or -1 if no layer has it.
func (d *Document) LayerIndex(id string) int {
	for i, l := range d.layers {
		if l.ID() == id {
			return i
		}
	}
	return -1
}

// LayerByID returns the layer with the given id, or nil.
func (d *Document) LayerByID(id string) Layer {
	if index := d.LayerIndex(id); index >= 0 {
		return d.layers[index]
	}
	return nil
}

func (d *Document) indexOf(l Layer) int {
	for i, candidate := range d.layers {
		if candidate == l {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the document. Every layer is cloned
// with its id, so the copy continues the original's identity.
func (d *Document) Clone() *Document {
	out := &Document{
		width:       d.width,
		height:      d.height,
		layers:      make([]Layer, len(d.layers)),
		activeIndex: d.activeIndex,
	}
	for i, l := range d.layers {
		out.layers[i] = l.Clone()
	}
	return out
}

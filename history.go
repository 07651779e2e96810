package easel

import (
	"bytes"
	"image"
	"reflect"
	"slices"
)

// DefaultHistoryCapacity is the number of undo entries kept when no
// explicit capacity is configured.
const DefaultHistoryCapacity = 50

type captureState uint8

const (
	captureIdle captureState = iota
	capturePixel
	captureStructural
)

// History records undoable edits against one document. Single-shot
// pixel edits go through SaveState; interactive pixel sessions through
// BeginPixelCapture/FinishState; anything that touches layer topology,
// order, properties or shape geometry through BeginCapture/
// BeginStructuralChange/CommitCapture. Pixel and structural captures
// are not interchangeable: an offset move changes no pixel byte but
// still needs a structural entry.
//
// The two capture families share one session slot, so a second begin
// while a session is open reports false. Entries beyond the capacity
// are evicted oldest-first without notice.
type History struct {
	doc      *Document
	capacity int

	undo []*historyEntry
	redo []*historyEntry

	state captureState
	label string

	pixelLayer  *RasterLayer
	pixelBefore *Pixmap

	captureIDs   []string
	structBefore *stackSnapshot
}

// NewHistory creates an empty history bound to the document with the
// default capacity.
func NewHistory(doc *Document) *History {
	return &History{doc: doc, capacity: DefaultHistoryCapacity}
}

// Capacity returns the maximum number of undo entries kept.
func (h *History) Capacity() int { return h.capacity }

// SetCapacity bounds the undo stack to n entries, evicting the oldest
// immediately if it is over. Values below one are raised to one.
func (h *History) SetCapacity(n int) {
	if n < 1 {
		n = 1
	}
	h.capacity = n
	if len(h.undo) > n {
		h.undo = slices.Delete(h.undo, 0, len(h.undo)-n)
	}
}

// CanUndo reports whether an entry is available to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether an undone entry is available to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth returns the number of entries on the undo stack.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of entries on the redo stack.
func (h *History) RedoDepth() int { return len(h.redo) }

// Clear empties both stacks and abandons any open capture session
// without restoring.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.resetSession()
}

// SaveState records the active raster layer's full pixel buffer ahead
// of one atomic pixel edit and clears the redo stack. It reports false
// when a capture session is open or the active layer holds no mutable
// pixels. The post-edit state is captured lazily on the first undo.
func (h *History) SaveState(label string) bool {
	if h.state != captureIdle {
		return false
	}
	l, ok := h.doc.ActiveLayer().(*RasterLayer)
	if !ok {
		return false
	}
	h.push(&historyEntry{label: label, pixel: &pixelChange{
		layer:  l,
		rect:   l.pixels.Bounds(),
		before: l.pixels.Clone(),
	}})
	Logger().Debug("history state saved", "label", label, "layer", l.ID())
	return true
}

// BeginPixelCapture opens a pixel session on the active raster layer.
// It reports false when a session is already open or the active layer
// holds no mutable pixels.
func (h *History) BeginPixelCapture(label string) bool {
	active := h.doc.ActiveLayer()
	if active == nil {
		return false
	}
	return h.BeginPixelCaptureFor(label, active.ID())
}

// BeginPixelCaptureFor opens a pixel session on the raster layer with
// the given id. Unknown or non-raster targets report false.
func (h *History) BeginPixelCaptureFor(label, layerID string) bool {
	if h.state != captureIdle {
		return false
	}
	l, ok := h.doc.LayerByID(layerID).(*RasterLayer)
	if !ok {
		return false
	}
	h.state = capturePixel
	h.label = label
	h.pixelLayer = l
	h.pixelBefore = l.pixels.Clone()
	return true
}

// FinishState closes the open pixel session. The buffer is diffed
// against the session snapshot and only the changed region is kept; an
// unchanged buffer discards the session without an entry. It reports
// whether an entry was recorded.
func (h *History) FinishState() bool {
	if h.state != capturePixel {
		return false
	}
	label, l, before := h.label, h.pixelLayer, h.pixelBefore
	h.resetSession()

	rect, changed := diffRegion(before, l.pixels)
	if !changed {
		Logger().Debug("history pixel capture discarded", "label", label)
		return false
	}
	h.push(&historyEntry{label: label, pixel: &pixelChange{
		layer:  l,
		rect:   rect,
		before: before.CopyRegion(rect),
	}})
	Logger().Debug("history pixel capture recorded", "label", label,
		"layer", l.ID(), "region", rect)
	return true
}

// BeginCapture opens a structural session. layerIDs limits which
// layers get their shape and text state recorded; with none given,
// every layer is recorded. Order, properties, existence and the active
// index are always covered. Reports false when a session is open.
func (h *History) BeginCapture(label string, layerIDs ...string) bool {
	if h.state != captureIdle {
		return false
	}
	h.state = captureStructural
	h.label = label
	h.captureIDs = slices.Clone(layerIDs)
	h.structBefore = nil
	return true
}

// BeginStructuralChange snapshots the stack the first time it is
// called within the open structural session. Later calls in the same
// session are no-ops, so call sites may invoke it before every
// mutation without double-recording.
func (h *History) BeginStructuralChange() {
	if h.state != captureStructural || h.structBefore != nil {
		return
	}
	h.structBefore = h.snapshotStack(h.captureIDs)
}

// CommitCapture closes the open structural session, diffing the stack
// against the session snapshot. No net change discards the session
// without an entry. It reports whether an entry was recorded.
func (h *History) CommitCapture() bool {
	if h.state != captureStructural {
		return false
	}
	label, ids, before := h.label, h.captureIDs, h.structBefore
	h.resetSession()

	if before == nil {
		return false
	}
	now := h.snapshotStack(ids)
	if before.equal(now) {
		Logger().Debug("history capture discarded", "label", label)
		return false
	}
	h.push(&historyEntry{label: label, structural: &structuralChange{
		ids:    ids,
		before: before,
	}})
	Logger().Debug("history capture recorded", "label", label)
	return true
}

// CancelCapture restores the pre-session state and discards the open
// session, whichever kind it is. Without an open session it is a
// no-op.
func (h *History) CancelCapture() {
	switch h.state {
	case capturePixel:
		if h.pixelBefore != nil {
			h.pixelLayer.pixels.Paste(h.pixelBefore, 0, 0)
		}
	case captureStructural:
		if h.structBefore != nil {
			h.restoreStack(h.structBefore)
		}
	}
	h.resetSession()
}

// Undo reverts the most recent entry and moves it to the redo stack.
// It reports false with nothing to undo or while a capture session is
// open.
func (h *History) Undo() bool {
	if h.state != captureIdle || len(h.undo) == 0 {
		return false
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	e.undo(h)
	h.redo = append(h.redo, e)
	Logger().Debug("history undo", "label", e.label)
	return true
}

// Redo reapplies the most recently undone entry and moves it back to
// the undo stack. It reports false with nothing to redo or while a
// capture session is open.
func (h *History) Redo() bool {
	if h.state != captureIdle || len(h.redo) == 0 {
		return false
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	e.redo(h)
	h.undo = append(h.undo, e)
	Logger().Debug("history redo", "label", e.label)
	return true
}

func (h *History) push(e *historyEntry) {
	h.undo = append(h.undo, e)
	if len(h.undo) > h.capacity {
		h.undo = slices.Delete(h.undo, 0, len(h.undo)-h.capacity)
	}
	h.redo = nil
}

func (h *History) resetSession() {
	h.state = captureIdle
	h.label = ""
	h.pixelLayer = nil
	h.pixelBefore = nil
	h.captureIDs = nil
	h.structBefore = nil
}

// historyEntry is one undoable edit: either a pixel region change or a
// structural change, never both.
type historyEntry struct {
	label      string
	pixel      *pixelChange
	structural *structuralChange
}

func (e *historyEntry) undo(h *History) {
	switch {
	case e.pixel != nil:
		c := e.pixel
		if c.after == nil {
			c.after = c.layer.pixels.CopyRegion(c.rect)
		}
		c.layer.pixels.Paste(c.before, c.rect.Min.X, c.rect.Min.Y)
	case e.structural != nil:
		c := e.structural
		if c.after == nil {
			c.after = h.snapshotStack(c.ids)
		}
		h.restoreStack(c.before)
	}
}

func (e *historyEntry) redo(h *History) {
	switch {
	case e.pixel != nil:
		c := e.pixel
		c.layer.pixels.Paste(c.after, c.rect.Min.X, c.rect.Min.Y)
	case e.structural != nil:
		h.restoreStack(e.structural.after)
	}
}

// pixelChange holds the before bytes of one region of one raster
// layer. The after side is captured on the first undo, so committing
// an entry never copies the buffer twice.
type pixelChange struct {
	layer  *RasterLayer
	rect   image.Rectangle
	before *Pixmap
	after  *Pixmap
}

// structuralChange holds a stack snapshot from before the edit. Like
// pixel entries, the after side materializes on the first undo.
type structuralChange struct {
	ids    []string
	before *stackSnapshot
	after  *stackSnapshot
}

// stackSnapshot records layer order, the active index and per-layer
// property records. Pixel payloads are shared by reference; shape
// lists and text settings are deep copies for the recorded layers.
type stackSnapshot struct {
	layers      []layerRecord
	activeIndex int
}

type layerRecord struct {
	layer   Layer
	name    string
	visible bool
	locked  bool
	opacity float64
	blend   BlendMode
	offsetX int
	offsetY int
	effects []LayerEffect

	hasShapes bool
	shapes    []Shape
	text      *textRecord
}

type textRecord struct {
	text       string
	family     FontFamily
	size       float64
	color      RGBA
	lineHeight float64
}

func (h *History) snapshotStack(ids []string) *stackSnapshot {
	recorded := func(id string) bool {
		return len(ids) == 0 || slices.Contains(ids, id)
	}
	s := &stackSnapshot{activeIndex: h.doc.activeIndex}
	for _, l := range h.doc.layers {
		x, y := l.Offset()
		rec := layerRecord{
			layer:   l,
			name:    l.Name(),
			visible: l.Visible(),
			locked:  l.Locked(),
			opacity: l.Opacity(),
			blend:   l.BlendMode(),
			offsetX: x,
			offsetY: y,
			effects: cloneEffects(l.Effects()),
		}
		if recorded(l.ID()) {
			switch t := l.(type) {
			case *VectorLayer:
				rec.hasShapes = true
				rec.shapes = cloneShapes(t.Shapes())
			case *TextLayer:
				rec.text = &textRecord{
					text:       t.Text(),
					family:     t.Font(),
					size:       t.FontSize(),
					color:      t.Color(),
					lineHeight: t.LineHeight(),
				}
			}
		}
		s.layers = append(s.layers, rec)
	}
	return s
}

// restoreStack rebuilds the document's layer slice from the records,
// reinstating removed layers by reference and resetting recorded
// properties, geometry and text. The lock flag is restored last so a
// currently locked layer cannot block its own content restore.
func (h *History) restoreStack(s *stackSnapshot) {
	layers := make([]Layer, len(s.layers))
	for i := range s.layers {
		rec := &s.layers[i]
		l := rec.layer
		l.SetLocked(false)
		l.SetName(rec.name)
		l.SetVisible(rec.visible)
		l.SetOpacity(rec.opacity)
		l.SetBlendMode(rec.blend)
		l.SetOffset(rec.offsetX, rec.offsetY)
		l.setEffects(cloneEffects(rec.effects))
		if rec.hasShapes {
			if vl, ok := l.(*VectorLayer); ok {
				vl.setShapes(cloneShapes(rec.shapes))
			}
		}
		if rec.text != nil {
			if tl, ok := l.(*TextLayer); ok {
				tl.SetText(rec.text.text)
				tl.SetFont(rec.text.family)
				tl.SetFontSize(rec.text.size)
				tl.SetColor(rec.text.color)
				tl.SetLineHeight(rec.text.lineHeight)
			}
		}
		l.SetLocked(rec.locked)
		layers[i] = l
	}
	h.doc.layers = layers
	h.doc.activeIndex = s.activeIndex
}

func (s *stackSnapshot) equal(o *stackSnapshot) bool {
	if s.activeIndex != o.activeIndex || len(s.layers) != len(o.layers) {
		return false
	}
	for i := range s.layers {
		if !s.layers[i].equal(&o.layers[i]) {
			return false
		}
	}
	return true
}

func (r *layerRecord) equal(o *layerRecord) bool {
	if r.layer != o.layer {
		return false
	}
	if r.name != o.name || r.visible != o.visible || r.locked != o.locked {
		return false
	}
	if r.opacity != o.opacity || r.blend != o.blend {
		return false
	}
	if r.offsetX != o.offsetX || r.offsetY != o.offsetY {
		return false
	}
	if len(r.effects) != len(o.effects) {
		return false
	}
	for j := range r.effects {
		if !reflect.DeepEqual(r.effects[j].Snapshot(), o.effects[j].Snapshot()) {
			return false
		}
	}
	if r.hasShapes != o.hasShapes {
		return false
	}
	if r.hasShapes {
		if len(r.shapes) != len(o.shapes) {
			return false
		}
		for j := range r.shapes {
			if !reflect.DeepEqual(r.shapes[j].Snapshot(), o.shapes[j].Snapshot()) {
				return false
			}
		}
	}
	if (r.text == nil) != (o.text == nil) {
		return false
	}
	if r.text != nil && *r.text != *o.text {
		return false
	}
	return true
}

func cloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

// diffRegion returns the bounding box of pixels that differ between
// two same-sized pixmaps. Differing dimensions count as a whole-frame
// change.
func diffRegion(a, b *Pixmap) (image.Rectangle, bool) {
	if a.width != b.width || a.height != b.height {
		return b.Bounds(), true
	}
	stride := a.width * 4
	minX, minY := a.width, 0
	maxX, maxY := -1, -1
	first := true
	for y := 0; y < a.height; y++ {
		row := y * stride
		if bytes.Equal(a.data[row:row+stride], b.data[row:row+stride]) {
			continue
		}
		for x := 0; x < a.width; x++ {
			off := row + x*4
			if a.data[off] == b.data[off] &&
				a.data[off+1] == b.data[off+1] &&
				a.data[off+2] == b.data[off+2] &&
				a.data[off+3] == b.data[off+3] {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
		if first {
			minY = y
			first = false
		}
		maxY = y
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

package easel

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// ErrNotRasterLayer indicates a pixel operation aimed at a vector or
// text layer.
var ErrNotRasterLayer = errors.New("easel: layer is not a raster layer")

// ErrLayerBusy indicates a mutation on a layer that has a filter
// application in flight.
var ErrLayerBusy = errors.New("easel: layer busy")

// ErrCaptureInProgress indicates an operation that needs the history
// idle while a capture session is still open.
var ErrCaptureInProgress = errors.New("easel: history capture in progress")

// ErrEffectNotFound indicates an effect lookup by id failed.
var ErrEffectNotFound = errors.New("easel: effect not found")

// Editor wires a document, its undo history, the clipboard, the
// compositor, and the viewport into a single editing session. It is
// the intended entry point for interactive tooling.
//
// An Editor is not safe for concurrent use. All methods must be
// called from the same goroutine.
//
// Example:
//
//	ed := easel.NewEditor(800, 600)
//	ed.Document().AddLayer(easel.NewRasterLayer("Paint", 800, 600))
//	frame := ed.Composite()
type Editor struct {
	doc     *Document
	hist    *History
	clip    *Clipboard
	comp    *Compositor
	view    *Viewport
	backend FilterBackend

	// busy holds ids of layers with a filter application in flight.
	// Mutations targeting a busy layer are refused.
	busy map[string]struct{}
}

// NewEditor creates an editing session around a fresh document of the
// given canvas size.
func NewEditor(width, height int, opts ...EditorOption) *Editor {
	o := defaultEditorOptions()
	for _, opt := range opts {
		opt(&o)
	}

	doc := NewDocument(width, height)
	hist := NewHistory(doc)
	hist.SetCapacity(o.historyCapacity)

	comp := NewCompositor()
	comp.SetBackground(o.background)
	comp.SetCheckerboard(o.checkerboard)

	return &Editor{
		doc:     doc,
		hist:    hist,
		clip:    NewClipboard(),
		comp:    comp,
		view:    NewViewport(),
		backend: o.backend,
		busy:    make(map[string]struct{}),
	}
}

// Document returns the document being edited.
func (e *Editor) Document() *Document { return e.doc }

// History returns the undo history for the session.
func (e *Editor) History() *History { return e.hist }

// Clipboard returns the session clipboard.
func (e *Editor) Clipboard() *Clipboard { return e.clip }

// Compositor returns the session compositor.
func (e *Editor) Compositor() *Compositor { return e.comp }

// Viewport returns the pan and zoom state of the session.
func (e *Editor) Viewport() *Viewport { return e.view }

// MarkDirty flags the composited output as stale. Tools that mutate
// the document directly must call this so the next Composite
// re-renders.
func (e *Editor) MarkDirty() { e.comp.MarkDirty() }

// Composite returns the current document composited down to a single
// pixmap, re-rendering only when marked dirty.
func (e *Editor) Composite() *Pixmap {
	return e.comp.Composite(e.doc)
}

// RenderView renders the composited document into a window of the
// given size under the session viewport transform.
func (e *Editor) RenderView(windowW, windowH int) *Pixmap {
	return e.comp.RenderView(e.doc, e.view, windowW, windowH)
}

// LayerBusy reports whether the given layer has a filter application
// in flight.
func (e *Editor) LayerBusy(id string) bool {
	_, ok := e.busy[id]
	return ok
}

// activeBusy reports whether the active layer is busy.
func (e *Editor) activeBusy() bool {
	l := e.doc.ActiveLayer()
	return l != nil && e.LayerBusy(l.ID())
}

// Undo reverts the most recent history entry and reports whether
// anything changed.
func (e *Editor) Undo() bool {
	if !e.hist.Undo() {
		return false
	}
	e.comp.MarkDirty()
	return true
}

// Redo re-applies the most recently undone entry and reports whether
// anything changed.
func (e *Editor) Redo() bool {
	if !e.hist.Redo() {
		return false
	}
	e.comp.MarkDirty()
	return true
}

// Copy copies the active layer's pixels to the clipboard. See
// Clipboard.Copy for region semantics.
func (e *Editor) Copy(region *image.Rectangle) bool {
	return e.clip.Copy(e.doc, region)
}

// CopyMerged copies the merged visible stack to the clipboard.
func (e *Editor) CopyMerged(region *image.Rectangle) bool {
	return e.clip.CopyMerged(e.doc, e.comp, region)
}

// Cut copies the region to the clipboard and clears it from the
// active layer, recording one undo entry.
func (e *Editor) Cut(region *image.Rectangle) bool {
	if e.activeBusy() {
		Logger().Warn("cut refused", "reason", "layer busy")
		return false
	}
	if !e.clip.Cut(e.doc, e.hist, region) {
		return false
	}
	e.comp.MarkDirty()
	return true
}

// Paste pastes the clipboard at the given document position, either
// onto the active raster layer or as a new layer. Returns the layer
// that received the pixels, or nil.
func (e *Editor) Paste(x, y int, asNewLayer bool) Layer {
	if !asNewLayer && e.activeBusy() {
		Logger().Warn("paste refused", "reason", "layer busy")
		return nil
	}
	l := e.clip.Paste(e.doc, e.hist, x, y, asNewLayer)
	if l != nil {
		e.comp.MarkDirty()
	}
	return l
}

// PasteInPlace pastes the clipboard back at the coordinates it was
// copied from.
func (e *Editor) PasteInPlace() bool {
	if e.activeBusy() {
		Logger().Warn("paste refused", "reason", "layer busy")
		return false
	}
	if !e.clip.PasteInPlace(e.doc, e.hist) {
		return false
	}
	e.comp.MarkDirty()
	return true
}

// FloodFill fills the contiguous region of the active raster layer
// around the given document position with the fill color, recording
// one undo entry. Reports whether any pixel changed; a fill that
// changes nothing leaves the history untouched.
func (e *Editor) FloodFill(x, y int, fill RGBA, tolerance uint8) bool {
	l, ok := e.doc.ActiveLayer().(*RasterLayer)
	if !ok {
		Logger().Warn("fill refused", "reason", "active layer is not raster")
		return false
	}
	if l.Locked() {
		Logger().Warn("fill refused", "layer", l.ID(), "reason", "locked")
		return false
	}
	if e.LayerBusy(l.ID()) {
		Logger().Warn("fill refused", "layer", l.ID(), "reason", "busy")
		return false
	}
	if !e.hist.BeginPixelCapture("fill") {
		return false
	}
	ox, oy := l.Offset()
	if !l.FloodFill(x-ox, y-oy, fill, tolerance) {
		e.hist.CancelCapture()
		return false
	}
	e.hist.FinishState()
	e.comp.MarkDirty()
	Logger().Debug("flood fill", "layer", l.ID(), "x", x, "y", y)
	return true
}

// ApplyFilter runs the named filter over the full surface of the
// given raster layer through the session's filter backend, recording
// one undo entry on success. The layer is marked busy for the
// duration of the call; a failed or misbehaving backend leaves the
// layer pixels and the history unchanged.
//
// The output buffer must have the layer's exact dimensions. Backends
// that resize are rejected.
func (e *Editor) ApplyFilter(ctx context.Context, layerID, filterID string, params FilterParams) error {
	l := e.doc.LayerByID(layerID)
	if l == nil {
		return fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerNotFound)
	}
	rl, ok := l.(*RasterLayer)
	if !ok {
		return fmt.Errorf("easel: layer %q: %w", layerID, ErrNotRasterLayer)
	}
	if rl.Locked() {
		return fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerLocked)
	}
	if e.LayerBusy(layerID) {
		return fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerBusy)
	}

	b := e.backend
	if b == nil {
		b = Backend()
	}
	if b == nil {
		return ErrNoFilterBackend
	}
	if !b.Has(filterID) {
		return fmt.Errorf("easel: filter %q: %w", filterID, ErrUnknownFilter)
	}

	if !e.hist.BeginPixelCaptureFor("filter: "+filterID, layerID) {
		return fmt.Errorf("easel: apply filter %q: %w", filterID, ErrCaptureInProgress)
	}
	e.busy[layerID] = struct{}{}
	defer delete(e.busy, layerID)

	p := rl.Pixels()
	w, h := p.Width(), p.Height()
	out, err := b.Apply(ctx, filterID, p.Data(), w, h, params)
	if err != nil {
		e.hist.CancelCapture()
		return fmt.Errorf("easel: filter %q: %w", filterID, err)
	}
	if len(out) != w*h*4 {
		e.hist.CancelCapture()
		return fmt.Errorf("easel: filter %q returned %d bytes, want %d", filterID, len(out), w*h*4)
	}
	if err := rl.ApplyPixels(out); err != nil {
		e.hist.CancelCapture()
		return fmt.Errorf("easel: filter %q: %w", filterID, err)
	}
	e.hist.FinishState()
	e.comp.MarkDirty()
	Logger().Debug("filter applied", "layer", layerID, "filter", filterID)
	return nil
}

// LayerEffects returns the effect stack of the given layer, bottom to
// top.
func (e *Editor) LayerEffects(layerID string) ([]LayerEffect, error) {
	l := e.doc.LayerByID(layerID)
	if l == nil {
		return nil, fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerNotFound)
	}
	return l.Effects(), nil
}

// AddLayerEffect appends an effect to the given layer's stack,
// recording one undo entry.
func (e *Editor) AddLayerEffect(layerID string, eff LayerEffect) error {
	l, err := e.effectTarget(layerID)
	if err != nil {
		return err
	}
	if !e.hist.BeginCapture("add effect", layerID) {
		return ErrCaptureInProgress
	}
	e.hist.BeginStructuralChange()
	if !l.AddEffect(eff) {
		e.hist.CancelCapture()
		return fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerLocked)
	}
	e.hist.CommitCapture()
	e.comp.MarkDirty()
	Logger().Debug("effect added", "layer", layerID, "effect", eff.ID(), "kind", eff.Kind())
	return nil
}

// UpdateLayerEffect applies the update function to one effect of the
// given layer, recording one undo entry. An update that changes
// nothing leaves the history untouched.
func (e *Editor) UpdateLayerEffect(layerID, effectID string, update func(LayerEffect)) error {
	l, err := e.effectTarget(layerID)
	if err != nil {
		return err
	}
	eff := l.EffectByID(effectID)
	if eff == nil {
		return fmt.Errorf("easel: effect %q: %w", effectID, ErrEffectNotFound)
	}
	if !e.hist.BeginCapture("update effect", layerID) {
		return ErrCaptureInProgress
	}
	e.hist.BeginStructuralChange()
	update(eff)
	e.hist.CommitCapture()
	e.comp.MarkDirty()
	Logger().Debug("effect updated", "layer", layerID, "effect", effectID)
	return nil
}

// RemoveLayerEffect deletes an effect from the given layer's stack,
// recording one undo entry.
func (e *Editor) RemoveLayerEffect(layerID, effectID string) error {
	l, err := e.effectTarget(layerID)
	if err != nil {
		return err
	}
	if l.EffectByID(effectID) == nil {
		return fmt.Errorf("easel: effect %q: %w", effectID, ErrEffectNotFound)
	}
	if !e.hist.BeginCapture("remove effect", layerID) {
		return ErrCaptureInProgress
	}
	e.hist.BeginStructuralChange()
	if !l.RemoveEffect(effectID) {
		e.hist.CancelCapture()
		return fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerLocked)
	}
	e.hist.CommitCapture()
	e.comp.MarkDirty()
	Logger().Debug("effect removed", "layer", layerID, "effect", effectID)
	return nil
}

// effectTarget resolves a layer for an effect mutation, refusing
// locked and busy layers.
func (e *Editor) effectTarget(layerID string) (Layer, error) {
	l := e.doc.LayerByID(layerID)
	if l == nil {
		return nil, fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerNotFound)
	}
	if l.Locked() {
		return nil, fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerLocked)
	}
	if e.LayerBusy(layerID) {
		return nil, fmt.Errorf("easel: layer %q: %w", layerID, ErrLayerBusy)
	}
	return l, nil
}

package easel

import "image"

// Clipboard holds one pixel buffer captured from a layer or from the
// merged stack, together with the document position it came from. The
// slot lives until overwritten or cleared; undo and redo never touch
// it, so content cut three edits ago still pastes.
type Clipboard struct {
	buffer  *Pixmap
	sourceX int
	sourceY int
}

// NewClipboard creates an empty clipboard.
func NewClipboard() *Clipboard { return &Clipboard{} }

// HasContent reports whether the clipboard holds a buffer.
func (c *Clipboard) HasContent() bool { return c.buffer != nil }

// Width returns the buffer width, or zero when empty.
func (c *Clipboard) Width() int {
	if c.buffer == nil {
		return 0
	}
	return c.buffer.Width()
}

// Height returns the buffer height, or zero when empty.
func (c *Clipboard) Height() int {
	if c.buffer == nil {
		return 0
	}
	return c.buffer.Height()
}

// SourceX returns the document x position the buffer was captured at.
func (c *Clipboard) SourceX() int { return c.sourceX }

// SourceY returns the document y position the buffer was captured at.
func (c *Clipboard) SourceY() int { return c.sourceY }

// ClearBuffer empties the clipboard.
func (c *Clipboard) ClearBuffer() {
	c.buffer = nil
	c.sourceX = 0
	c.sourceY = 0
}

// Copy captures a region of the active layer's surface. The region is
// given in document coordinates; nil means the whole layer. It is
// clamped to the layer's bounds, and a zero-area result or missing
// active layer reports false, leaving the previous content in place.
func (c *Clipboard) Copy(doc *Document, region *image.Rectangle) bool {
	if doc == nil {
		return false
	}
	l := doc.ActiveLayer()
	if l == nil {
		return false
	}
	surf := l.Surface()
	if surf == nil {
		return false
	}

	ox, oy := l.Offset()
	local := surf.Bounds()
	if region != nil {
		local = local.Intersect(region.Sub(image.Pt(ox, oy)))
	}
	buf := surf.CopyRegion(local)
	if buf == nil {
		return false
	}

	c.buffer = buf
	c.sourceX = local.Min.X + ox
	c.sourceY = local.Min.Y + oy
	Logger().Debug("clipboard copy", "layer", l.ID(),
		"w", buf.Width(), "h", buf.Height())
	return true
}

// CopyMerged captures a region of the merged visible stack instead of
// a single layer. The region is in document coordinates; nil means the
// whole document.
func (c *Clipboard) CopyMerged(doc *Document, comp *Compositor, region *image.Rectangle) bool {
	if doc == nil || comp == nil {
		return false
	}
	merged := comp.MergeVisible(doc)
	area := merged.Bounds()
	if region != nil {
		area = area.Intersect(*region)
	}
	buf := merged.CopyRegion(area)
	if buf == nil {
		return false
	}

	c.buffer = buf
	c.sourceX = area.Min.X
	c.sourceY = area.Min.Y
	Logger().Debug("clipboard copy merged", "w", buf.Width(), "h", buf.Height())
	return true
}

// Cut copies the region and then clears it on the active raster
// layer, recorded as a single history entry. Locked or non-raster
// active layers report false without touching the clipboard.
func (c *Clipboard) Cut(doc *Document, hist *History, region *image.Rectangle) bool {
	if doc == nil {
		return false
	}
	l, ok := doc.ActiveLayer().(*RasterLayer)
	if !ok || l.Locked() {
		return false
	}
	if !c.Copy(doc, region) {
		return false
	}
	if hist != nil && !hist.SaveState("cut") {
		return false
	}

	ox, oy := l.Offset()
	x := c.sourceX - ox
	y := c.sourceY - oy
	l.Pixels().ClearRect(image.Rect(x, y, x+c.buffer.Width(), y+c.buffer.Height()))
	return true
}

// Paste draws the buffer into the document at (x, y) in document
// coordinates. With asNewLayer it inserts a buffer-sized raster layer
// named "Pasted Layer" on top of the stack as one structural history
// entry and returns it. Otherwise it composites the buffer onto the
// active raster layer as one pixel entry and returns that layer.
// An empty clipboard, a locked target or a target without pixels
// returns nil.
func (c *Clipboard) Paste(doc *Document, hist *History, x, y int, asNewLayer bool) Layer {
	if doc == nil || c.buffer == nil {
		return nil
	}

	if asNewLayer {
		if hist != nil {
			if !hist.BeginCapture("paste") {
				return nil
			}
			hist.BeginStructuralChange()
		}
		l := NewRasterLayer("Pasted Layer", c.buffer.Width(), c.buffer.Height())
		l.Pixels().Paste(c.buffer, 0, 0)
		l.SetOffset(x, y)
		doc.AddLayer(l)
		if hist != nil {
			hist.CommitCapture()
		}
		return l
	}

	l, ok := doc.ActiveLayer().(*RasterLayer)
	if !ok || l.Locked() {
		return nil
	}
	if hist != nil && !hist.SaveState("paste") {
		return nil
	}
	ox, oy := l.Offset()
	l.Pixels().DrawOver(c.buffer, x-ox, y-oy)
	return l
}

// PasteInPlace composites the buffer onto the active raster layer at
// the position it was captured from, which restores a cut region
// exactly.
func (c *Clipboard) PasteInPlace(doc *Document, hist *History) bool {
	if c.buffer == nil {
		return false
	}
	return c.Paste(doc, hist, c.sourceX, c.sourceY, false) != nil
}

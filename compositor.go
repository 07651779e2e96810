package easel

import (
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// checkerSize is the pitch of the transparency checkerboard in pixels.
const checkerSize = 8

var (
	checkerLight   = Hex("#ffffff")
	checkerDark    = Hex("#cccccc")
	workspaceColor = Hex("#333333")
	viewBorder     = Hex("#000000")
)

// Compositor turns a document's layer stack into display pixels. A
// dirty flag coalesces repeated mutations: Composite rebuilds at most
// once per MarkDirty, otherwise it hands back the cached surface
// unchanged. Callers that mutate the document or a layer are
// responsible for marking the compositor dirty.
type Compositor struct {
	background   RGBA
	checkerboard bool

	preview  *Pixmap
	previewX int
	previewY int

	cache *Pixmap
	dirty bool
}

// NewCompositor creates a compositor with an opaque white background
// and the transparency checkerboard disabled.
func NewCompositor() *Compositor {
	return &Compositor{background: Hex("#ffffff"), dirty: true}
}

// Background returns the backdrop color drawn under the layer stack.
func (c *Compositor) Background() RGBA { return c.background }

// SetBackground sets the backdrop color drawn under the layer stack.
func (c *Compositor) SetBackground(col RGBA) {
	c.background = col
	c.dirty = true
}

// Checkerboard reports whether the transparency checkerboard is drawn
// instead of the background color.
func (c *Compositor) Checkerboard() bool { return c.checkerboard }

// SetCheckerboard toggles the transparency checkerboard backdrop.
func (c *Compositor) SetCheckerboard(on bool) {
	c.checkerboard = on
	c.dirty = true
}

// MarkDirty schedules a rebuild on the next Composite call.
func (c *Compositor) MarkDirty() { c.dirty = true }

// IsDirty reports whether the next Composite call will rebuild.
func (c *Compositor) IsDirty() bool { return c.dirty }

// SetPreview installs the ephemeral tool overlay. It is drawn above
// the whole stack at full opacity with source-over blending and is
// never persisted into any layer.
func (c *Compositor) SetPreview(p *Pixmap, x, y int) {
	c.preview = p
	c.previewX = x
	c.previewY = y
	c.dirty = true
}

// ClearPreview removes the tool overlay.
func (c *Compositor) ClearPreview() {
	c.preview = nil
	c.dirty = true
}

// Composite returns the document-sized composite: backdrop, visible
// layers bottom to top through their blend modes and opacities, then
// the preview overlay. While the compositor is clean the cached
// surface is returned as-is, so repeat calls without an intervening
// MarkDirty are byte-identical.
func (c *Compositor) Composite(doc *Document) *Pixmap {
	if doc == nil {
		return nil
	}
	if !c.dirty && c.cache != nil &&
		c.cache.Width() == doc.Width() && c.cache.Height() == doc.Height() {
		return c.cache
	}

	out := NewPixmap(doc.Width(), doc.Height())
	if c.checkerboard {
		drawCheckerboard(out)
	} else {
		out.Clear(c.background)
	}
	mergeVisible(out, doc.Layers())
	if c.preview != nil {
		out.DrawOver(c.preview, c.previewX, c.previewY)
	}

	c.cache = out
	c.dirty = false
	return out
}

// MergeVisible composites the visible stack over transparency, with no
// backdrop and no preview. This is the surface a merged copy captures.
func (c *Compositor) MergeVisible(doc *Document) *Pixmap {
	if doc == nil {
		return nil
	}
	out := NewPixmap(doc.Width(), doc.Height())
	mergeVisible(out, doc.Layers())
	return out
}

// RenderView maps the composite into a window-sized surface through
// the viewport's pan and zoom, fills the area around the canvas with
// the workspace color and strokes a one-pixel border just outside the
// canvas edge. Nearest-neighbor sampling keeps pixels crisp when
// zoomed in.
func (c *Compositor) RenderView(doc *Document, vp *Viewport, windowW, windowH int) *Pixmap {
	if doc == nil || vp == nil || windowW <= 0 || windowH <= 0 {
		return nil
	}
	src := c.Composite(doc)

	out := NewPixmap(windowW, windowH)
	out.Clear(workspaceColor)

	m := vp.Matrix()
	srcImg := src.NRGBA()
	draw.NearestNeighbor.Transform(
		out.NRGBA(),
		f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F},
		srcImg,
		srcImg.Bounds(),
		draw.Over,
		nil,
	)
	strokeCanvasBorder(out, vp, doc.Width(), doc.Height())
	return out
}

func drawCheckerboard(p *Pixmap) {
	lr, lg, lb, la := checkerLight.Bytes()
	dr, dg, db, da := checkerDark.Bytes()
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			if (x/checkerSize+y/checkerSize)%2 == 0 {
				p.SetRGBA8(x, y, lr, lg, lb, la)
			} else {
				p.SetRGBA8(x, y, dr, dg, db, da)
			}
		}
	}
}

// strokeCanvasBorder draws the one-pixel frame hugging the outside of
// the canvas rectangle in window coordinates. Off-window parts clip.
func strokeCanvasBorder(out *Pixmap, vp *Viewport, canvasW, canvasH int) {
	x0f, y0f := vp.CanvasToScreen(0, 0)
	x1f, y1f := vp.CanvasToScreen(float64(canvasW), float64(canvasH))
	x0 := int(math.Floor(x0f)) - 1
	y0 := int(math.Floor(y0f)) - 1
	x1 := int(math.Ceil(x1f))
	y1 := int(math.Ceil(y1f))

	r, g, b, a := viewBorder.Bytes()
	for x := x0; x <= x1; x++ {
		out.SetRGBA8(x, y0, r, g, b, a)
		out.SetRGBA8(x, y1, r, g, b, a)
	}
	for y := y0; y <= y1; y++ {
		out.SetRGBA8(x0, y, r, g, b, a)
		out.SetRGBA8(x1, y, r, g, b, a)
	}
}

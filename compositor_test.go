package easel

import "testing"

func probeRGBA8(t *testing.T, p *Pixmap, x, y int, wr, wg, wb, wa uint8, what string) {
	t.Helper()
	r, g, b, a := p.RGBA8At(x, y)
	if r != wr || g != wg || b != wb || a != wa {
		t.Errorf("%s at (%d,%d) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
			what, x, y, r, g, b, a, wr, wg, wb, wa)
	}
}

func TestCompositeDefaultBackground(t *testing.T) {
	d := NewDocument(16, 16)
	c := NewCompositor()
	out := c.Composite(d)

	probeRGBA8(t, out, 0, 0, 255, 255, 255, 255, "background")
	probeRGBA8(t, out, 15, 15, 255, 255, 255, 255, "background")
}

func TestCompositeCheckerboard(t *testing.T) {
	d := NewDocument(32, 32)
	c := NewCompositor()
	c.SetCheckerboard(true)
	out := c.Composite(d)

	probeRGBA8(t, out, 0, 0, 255, 255, 255, 255, "light cell")
	probeRGBA8(t, out, 8, 0, 204, 204, 204, 255, "dark cell")
	probeRGBA8(t, out, 0, 8, 204, 204, 204, 255, "dark cell")
	probeRGBA8(t, out, 8, 8, 255, 255, 255, 255, "light cell")
}

func TestCompositeLayersAtOffsets(t *testing.T) {
	d := NewDocument(20, 20)

	red := NewRasterLayer("red", 10, 10)
	red.FillAll(RGBA{R: 1, A: 1})
	red.SetOffset(5, 5)
	d.AddLayer(red)

	hidden := NewRasterLayer("hidden", 20, 20)
	hidden.FillAll(RGBA{B: 1, A: 1})
	hidden.SetVisible(false)
	d.AddLayer(hidden)

	out := NewCompositor().Composite(d)
	probeRGBA8(t, out, 7, 7, 255, 0, 0, 255, "offset layer")
	probeRGBA8(t, out, 2, 2, 255, 255, 255, 255, "uncovered background")
	probeRGBA8(t, out, 0, 0, 255, 255, 255, 255, "hidden layer must not draw")
}

func TestCompositeBlendAndOpacity(t *testing.T) {
	d := NewDocument(20, 20)
	gray := NewRasterLayer("gray", 20, 20)
	gray.FillAll(RGBA{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255, A: 1})
	gray.SetBlendMode(BlendMultiply)
	d.AddLayer(gray)

	out := NewCompositor().Composite(d)
	probeRGBA8(t, out, 10, 10, 128, 128, 128, 255, "multiply over white")
}

func TestCompositeCachedUntilDirty(t *testing.T) {
	d := NewDocument(8, 8)
	l := NewRasterLayer("paint", 8, 8)
	d.AddLayer(l)
	c := NewCompositor()

	first := c.Composite(d)
	if c.IsDirty() {
		t.Error("compositor should be clean after a composite")
	}
	second := c.Composite(d)
	if first != second {
		t.Error("repeat composite without MarkDirty must return the cached surface")
	}

	l.FillAll(RGBA{G: 1, A: 1})
	c.MarkDirty()
	third := c.Composite(d)
	if third == first {
		t.Error("MarkDirty must force a rebuild")
	}
	probeRGBA8(t, third, 4, 4, 0, 255, 0, 255, "rebuilt composite")
}

func TestCompositePreviewOverlay(t *testing.T) {
	d := NewDocument(10, 10)
	c := NewCompositor()

	overlay := NewPixmap(2, 2)
	overlay.Clear(RGBA{R: 1, A: 1})
	c.SetPreview(overlay, 2, 3)

	out := c.Composite(d)
	probeRGBA8(t, out, 2, 3, 255, 0, 0, 255, "preview pixel")
	probeRGBA8(t, out, 3, 4, 255, 0, 0, 255, "preview pixel")
	probeRGBA8(t, out, 5, 5, 255, 255, 255, 255, "outside preview")

	c.ClearPreview()
	out = c.Composite(d)
	probeRGBA8(t, out, 2, 3, 255, 255, 255, 255, "preview cleared")
}

func TestMergeVisibleSkipsBackdrop(t *testing.T) {
	d := NewDocument(12, 12)
	red := NewRasterLayer("red", 4, 4)
	red.FillAll(RGBA{R: 1, A: 1})
	red.SetOffset(4, 4)
	d.AddLayer(red)

	c := NewCompositor()
	c.SetCheckerboard(true)
	out := c.MergeVisible(d)

	probeRGBA8(t, out, 5, 5, 255, 0, 0, 255, "layer content")
	probeRGBA8(t, out, 0, 0, 0, 0, 0, 0, "uncovered area stays transparent")
}

func TestRenderViewWorkspaceAndBorder(t *testing.T) {
	d := NewDocument(10, 10)
	v := NewViewport()
	v.SetPan(20, 20)

	out := NewCompositor().RenderView(d, v, 50, 50)
	if out.Width() != 50 || out.Height() != 50 {
		t.Fatalf("view size = %dx%d, want 50x50", out.Width(), out.Height())
	}

	probeRGBA8(t, out, 5, 5, 51, 51, 51, 255, "workspace")
	probeRGBA8(t, out, 25, 25, 255, 255, 255, 255, "canvas content")
	probeRGBA8(t, out, 19, 25, 0, 0, 0, 255, "left border")
	probeRGBA8(t, out, 30, 25, 0, 0, 0, 255, "right border")
	probeRGBA8(t, out, 25, 19, 0, 0, 0, 255, "top border")
	probeRGBA8(t, out, 25, 30, 0, 0, 0, 255, "bottom border")
	probeRGBA8(t, out, 19, 19, 0, 0, 0, 255, "corner")
}

func TestRenderViewZoomScalesPixels(t *testing.T) {
	d := NewDocument(2, 1)
	l := NewRasterLayer("pair", 2, 1)
	l.Pixels().SetRGBA8(0, 0, 255, 0, 0, 255)
	l.Pixels().SetRGBA8(1, 0, 0, 0, 255, 255)
	d.AddLayer(l)

	v := NewViewport()
	v.SetZoom(8)

	out := NewCompositor().RenderView(d, v, 16, 8)
	probeRGBA8(t, out, 3, 3, 255, 0, 0, 255, "left source pixel")
	probeRGBA8(t, out, 12, 3, 0, 0, 255, 255, "right source pixel")
}

package easel

import (
	"errors"
	"image"
	"strings"
	"testing"
)

func TestLayerDefaults(t *testing.T) {
	l := NewRasterLayer("Background", 10, 10)

	if !strings.HasPrefix(l.ID(), "layer-") {
		t.Errorf("ID() = %q, want layer- prefix", l.ID())
	}
	if l.Name() != "Background" {
		t.Errorf("Name() = %q, want Background", l.Name())
	}
	if !l.Visible() {
		t.Error("new layer should be visible")
	}
	if l.Locked() {
		t.Error("new layer should not be locked")
	}
	if l.Opacity() != 1 {
		t.Errorf("Opacity() = %v, want 1", l.Opacity())
	}
	if l.BlendMode() != BlendNormal {
		t.Errorf("BlendMode() = %v, want BlendNormal", l.BlendMode())
	}
	if x, y := l.Offset(); x != 0 || y != 0 {
		t.Errorf("Offset() = (%d, %d), want (0, 0)", x, y)
	}
}

func TestLayerUniqueIDs(t *testing.T) {
	a := NewRasterLayer("a", 1, 1)
	b := NewRasterLayer("b", 1, 1)
	if a.ID() == b.ID() {
		t.Errorf("two layers share id %q", a.ID())
	}
}

func TestLayerOpacityClamped(t *testing.T) {
	l := NewRasterLayer("test", 1, 1)

	l.SetOpacity(1.5)
	if l.Opacity() != 1 {
		t.Errorf("SetOpacity(1.5): Opacity() = %v, want 1", l.Opacity())
	}
	l.SetOpacity(-0.2)
	if l.Opacity() != 0 {
		t.Errorf("SetOpacity(-0.2): Opacity() = %v, want 0", l.Opacity())
	}
	l.SetOpacity(0.5)
	if l.Opacity() != 0.5 {
		t.Errorf("SetOpacity(0.5): Opacity() = %v, want 0.5", l.Opacity())
	}
}

func TestLayerOffsetLeavesPixelsAlone(t *testing.T) {
	l := NewRasterLayer("test", 4, 4)
	l.FillAll(RGBA{R: 1, A: 1})
	before := l.Pixels().Clone()

	l.SetOffset(100, -30)

	if x, y := l.Offset(); x != 100 || y != -30 {
		t.Errorf("Offset() = (%d, %d), want (100, -30)", x, y)
	}
	if !l.Pixels().Equal(before) {
		t.Error("SetOffset modified pixel data")
	}
}

func TestRasterLayerCloneDeep(t *testing.T) {
	l := NewRasterLayer("original", 4, 4)
	l.FillAll(RGBA{G: 1, A: 1})
	l.SetOpacity(0.7)
	l.SetBlendMode(BlendMultiply)

	dup, ok := l.Clone().(*RasterLayer)
	if !ok {
		t.Fatal("Clone() did not return a *RasterLayer")
	}
	if dup.ID() != l.ID() {
		t.Errorf("clone id = %q, want %q", dup.ID(), l.ID())
	}
	if dup.Opacity() != 0.7 || dup.BlendMode() != BlendMultiply {
		t.Error("clone did not copy opacity or blend mode")
	}

	l.FillAll(RGBA{B: 1, A: 1})
	if _, g, _, _ := dup.Pixels().RGBA8At(2, 2); g != 255 {
		t.Error("mutating the original leaked into the clone")
	}
}

func TestRasterLayerApplyPixels(t *testing.T) {
	l := NewRasterLayer("test", 2, 2)

	if err := l.ApplyPixels(make([]uint8, 7)); err == nil {
		t.Error("ApplyPixels with a short buffer should fail")
	}

	data := make([]uint8, 16)
	for i := range data {
		data[i] = uint8(i * 16)
	}
	if err := l.ApplyPixels(data); err != nil {
		t.Fatalf("ApplyPixels: %v", err)
	}
	if r, _, _, _ := l.Pixels().RGBA8At(0, 0); r != 0 {
		t.Errorf("pixel (0,0) r = %d, want 0", r)
	}
	if _, g, _, _ := l.Pixels().RGBA8At(1, 1); g != 208 {
		t.Errorf("pixel (1,1) g = %d, want 208", g)
	}
}

func TestVectorLayerAddRemoveShape(t *testing.T) {
	l := NewVectorLayer("shapes", 100, 100)
	a := NewRectangleShape(0, 0, 10, 10)
	b := NewEllipseShape(50, 50, 20, 10)
	l.AddShape(a)
	l.AddShape(b)

	if l.ShapeCount() != 2 {
		t.Fatalf("ShapeCount() = %d, want 2", l.ShapeCount())
	}
	if l.ShapeByID(a.ID()) != Shape(a) {
		t.Error("ShapeByID did not find the rectangle")
	}

	if !l.RemoveShape(a.ID()) {
		t.Error("RemoveShape(existing) = false")
	}
	if l.RemoveShape(a.ID()) {
		t.Error("RemoveShape(removed) = true")
	}
	if l.ShapeCount() != 1 {
		t.Errorf("ShapeCount() after removal = %d, want 1", l.ShapeCount())
	}
}

func TestVectorLayerRemoveDropsSelection(t *testing.T) {
	l := NewVectorLayer("shapes", 100, 100)
	s := NewRectangleShape(0, 0, 10, 10)
	l.AddShape(s)
	l.SelectShape(s.ID(), false)

	l.RemoveShape(s.ID())

	if l.IsSelected(s.ID()) {
		t.Error("removed shape is still selected")
	}
	if got := l.SelectedShapes(); len(got) != 0 {
		t.Errorf("SelectedShapes() has %d entries, want 0", len(got))
	}
}

func TestVectorLayerShapeAtTopmost(t *testing.T) {
	l := NewVectorLayer("shapes", 100, 100)
	bottom := NewRectangleShape(10, 10, 50, 50)
	top := NewRectangleShape(30, 30, 50, 50)
	l.AddShape(bottom)
	l.AddShape(top)

	if got := l.ShapeAt(40, 40); got != Shape(top) {
		t.Error("ShapeAt in the overlap should return the topmost shape")
	}
	if got := l.ShapeAt(15, 15); got != Shape(bottom) {
		t.Error("ShapeAt outside the top shape should fall through")
	}
	if got := l.ShapeAt(95, 95); got != nil {
		t.Error("ShapeAt on empty canvas should return nil")
	}
}

func TestVectorLayerSelection(t *testing.T) {
	l := NewVectorLayer("shapes", 100, 100)
	a := NewRectangleShape(0, 0, 10, 10)
	b := NewRectangleShape(20, 0, 10, 10)
	l.AddShape(a)
	l.AddShape(b)

	if l.SelectShape("shape-missing", false) {
		t.Error("selecting an unknown id should report false")
	}

	l.SelectShape(a.ID(), false)
	l.SelectShape(b.ID(), true)
	if !l.IsSelected(a.ID()) || !l.IsSelected(b.ID()) {
		t.Error("additive select should keep both shapes selected")
	}

	l.SelectShape(a.ID(), false)
	if l.IsSelected(b.ID()) {
		t.Error("replacing select should drop the previous selection")
	}

	l.ClearSelection()
	if l.IsSelected(a.ID()) {
		t.Error("ClearSelection left a shape selected")
	}
}

func TestVectorLayerMoveShapeInOrder(t *testing.T) {
	l := NewVectorLayer("shapes", 100, 100)
	a := NewRectangleShape(0, 0, 10, 10)
	b := NewRectangleShape(0, 0, 10, 10)
	c := NewRectangleShape(0, 0, 10, 10)
	l.AddShape(a)
	l.AddShape(b)
	l.AddShape(c)

	if !l.MoveShapeInOrder(b.ID(), OrderUp) {
		t.Fatal("MoveShapeInOrder(middle, up) = false")
	}
	if got := l.Shapes()[2]; got != Shape(b) {
		t.Error("shape b should now be topmost")
	}
	if l.MoveShapeInOrder(b.ID(), OrderUp) {
		t.Error("moving the topmost shape up should report false")
	}
	if l.MoveShapeInOrder(a.ID(), OrderDown) {
		t.Error("moving the bottom shape down should report false")
	}
	if l.MoveShapeInOrder("shape-missing", OrderUp) {
		t.Error("moving an unknown id should report false")
	}
}

func TestVectorLayerControlPointAt(t *testing.T) {
	l := NewVectorLayer("shapes", 200, 200)
	s := NewRectangleShape(50, 50, 60, 40)
	l.AddShape(s)

	shape, cp, ok := l.ControlPointAt(52, 48)
	if !ok {
		t.Fatal("no control point found near the top-left corner")
	}
	if shape != Shape(s) || cp.ID != "tl" {
		t.Errorf("hit %q on %v, want tl on the rectangle", cp.ID, shape)
	}

	if _, _, ok := l.ControlPointAt(80, 80); ok {
		t.Error("found a control point far from every anchor")
	}
}

func TestVectorLayerControlPointPrefersSelected(t *testing.T) {
	l := NewVectorLayer("shapes", 200, 200)
	// Same geometry, so their control points coincide.
	bottom := NewRectangleShape(50, 50, 60, 40)
	top := NewRectangleShape(50, 50, 60, 40)
	l.AddShape(bottom)
	l.AddShape(top)

	shape, _, ok := l.ControlPointAt(50, 50)
	if !ok || shape != Shape(top) {
		t.Error("with no selection the topmost shape should win")
	}

	l.SelectShape(bottom.ID(), false)
	shape, _, ok = l.ControlPointAt(50, 50)
	if !ok || shape != Shape(bottom) {
		t.Error("the selected shape should win over an unselected one above it")
	}
}

func TestVectorLayerEditingGeometryIdentical(t *testing.T) {
	l := NewVectorLayer("shapes", 100, 100)
	l.AddShape(NewRectangleShape(20, 20, 60, 60))

	l.StartEditing()
	if !l.Editing() {
		t.Fatal("StartEditing did not enter editing mode")
	}
	preview := l.Surface()

	l.EndEditing()
	final := l.Surface()

	// Both paths draw the same geometry; probe deep inside the fill
	// where supersampling cannot change coverage.
	if _, _, _, a := preview.RGBA8At(50, 50); a != 255 {
		t.Errorf("preview alpha at center = %d, want 255", a)
	}
	if _, _, _, a := final.RGBA8At(50, 50); a != 255 {
		t.Errorf("final alpha at center = %d, want 255", a)
	}
	if _, _, _, a := final.RGBA8At(5, 5); a != 0 {
		t.Errorf("final alpha outside the shape = %d, want 0", a)
	}
}

func TestVectorLayerSurfaceCaching(t *testing.T) {
	l := NewVectorLayer("shapes", 50, 50)
	l.AddShape(NewRectangleShape(10, 10, 20, 20))

	first := l.Surface()
	if second := l.Surface(); second != first {
		t.Error("Surface without mutations should return the cached buffer")
	}

	l.AddShape(NewRectangleShape(0, 0, 5, 5))
	if l.Surface() == first {
		t.Error("AddShape should invalidate the cached buffer")
	}
}

func TestVectorLayerMutatorsInvalidate(t *testing.T) {
	l := NewVectorLayer("shapes", 50, 50)
	s := NewRectangleShape(10, 10, 20, 20)
	l.AddShape(s)

	before := l.Surface()
	if !l.MoveShapeBy(s.ID(), 5, 0) {
		t.Fatal("MoveShapeBy(existing) = false")
	}
	after := l.Surface()
	if after == before {
		t.Error("MoveShapeBy should invalidate the cache")
	}
	if _, _, _, a := after.RGBA8At(11, 15); a != 0 {
		t.Error("moved shape still covers its old left edge")
	}

	if l.MoveShapeBy("shape-missing", 1, 1) {
		t.Error("MoveShapeBy(unknown) = true")
	}
	if !l.SetShapeControlPoint(s.ID(), "br", 45, 45) {
		t.Error("SetShapeControlPoint(existing corner) = false")
	}
	if l.SetShapeControlPoint(s.ID(), "nope", 0, 0) {
		t.Error("SetShapeControlPoint(unknown corner) = true")
	}
}

func TestVectorLayerShapesBounds(t *testing.T) {
	l := NewVectorLayer("shapes", 200, 200)
	if b := l.ShapesBounds(); b.Width() != 0 || b.Height() != 0 {
		t.Errorf("empty layer bounds = %v, want empty", b)
	}

	a := NewRectangleShape(10, 20, 30, 30)
	b := NewRectangleShape(100, 50, 40, 40)
	l.AddShape(a)
	l.AddShape(b)

	got := l.ShapesBounds()
	want := NewRect(Pt(10, 20), Pt(140, 90))
	if got != want {
		t.Errorf("ShapesBounds() = %+v, want %+v", got, want)
	}
}

func TestVectorLayerCloneDeep(t *testing.T) {
	l := NewVectorLayer("shapes", 100, 100)
	s := NewRectangleShape(10, 10, 20, 20)
	l.AddShape(s)
	l.SelectShape(s.ID(), false)

	dup, ok := l.Clone().(*VectorLayer)
	if !ok {
		t.Fatal("Clone() did not return a *VectorLayer")
	}
	if dup.ID() != l.ID() {
		t.Errorf("clone id = %q, want %q", dup.ID(), l.ID())
	}
	if dup.ShapeCount() != 1 || dup.Shapes()[0].ID() != s.ID() {
		t.Fatal("clone should carry the same shapes with the same ids")
	}
	if !dup.IsSelected(s.ID()) {
		t.Error("clone should carry the selection")
	}

	l.MoveShapeBy(s.ID(), 50, 0)
	if got := dup.Shapes()[0].Bounds(); got.Min.X > 20 {
		t.Error("moving a shape in the original moved the clone's copy")
	}
}

func TestTextLayerAutoSize(t *testing.T) {
	l := NewTextLayer("caption", "Hi")

	// One 24px line at 1.2 line height, plus 4px padding on each side.
	if got := l.Height(); got != 37 {
		t.Errorf("Height() = %d, want 37", got)
	}
	if got := l.Width(); got <= textPadding*2 {
		t.Errorf("Width() = %d, want wider than the padding alone", got)
	}

	wider := NewTextLayer("caption", "Hi there, world")
	if wider.Width() <= l.Width() {
		t.Errorf("longer text width %d should exceed %d", wider.Width(), l.Width())
	}
}

func TestTextLayerMultiline(t *testing.T) {
	one := NewTextLayer("caption", "alpha")
	two := NewTextLayer("caption", "alpha\nbeta")

	if got := two.Height(); got != 66 {
		t.Errorf("two-line Height() = %d, want 66", got)
	}
	if two.Height() <= one.Height() {
		t.Error("adding a line should grow the layer")
	}
}

func TestTextLayerEmpty(t *testing.T) {
	l := NewTextLayer("caption", "")
	if l.Width() != emptyTextWidth || l.Height() != emptyTextHeight {
		t.Errorf("empty layer = %dx%d, want %dx%d",
			l.Width(), l.Height(), emptyTextWidth, emptyTextHeight)
	}

	pm := l.Surface()
	for y := 0; y < pm.Height(); y += 7 {
		for x := 0; x < pm.Width(); x += 7 {
			if _, _, _, a := pm.RGBA8At(x, y); a != 0 {
				t.Fatalf("empty layer has ink at (%d, %d)", x, y)
			}
		}
	}
}

func TestTextLayerRendersInk(t *testing.T) {
	l := NewTextLayer("caption", "W")
	l.SetColor(RGBA{R: 1, A: 1})
	l.SetFontSize(48)

	pm := l.Surface()
	var maxA uint8
	var inkR uint8
	for y := 0; y < pm.Height(); y++ {
		for x := 0; x < pm.Width(); x++ {
			if _, _, _, a := pm.RGBA8At(x, y); a > maxA {
				r, _, _, _ := pm.RGBA8At(x, y)
				maxA, inkR = a, r
			}
		}
	}
	if maxA < 200 {
		t.Fatalf("densest pixel alpha = %d, want near-opaque glyph coverage", maxA)
	}
	if inkR < 250 {
		t.Errorf("densest pixel r = %d, want the configured red", inkR)
	}
}

func TestTextLayerInvalidation(t *testing.T) {
	l := NewTextLayer("caption", "short")
	narrow := l.Width()

	l.SetText("a considerably longer line of text")
	if l.Width() <= narrow {
		t.Error("SetText did not re-render the layer")
	}

	tall := l.Height()
	l.SetFontSize(48)
	if l.Height() <= tall {
		t.Error("SetFontSize did not re-render the layer")
	}

	before := l.Surface()
	l.SetText(l.Text())
	if l.Surface() != before {
		t.Error("setting identical text should not invalidate the cache")
	}
}

func TestTextLayerCloneDeep(t *testing.T) {
	l := NewTextLayer("caption", "hello")
	l.SetColor(RGBA{B: 1, A: 1})
	width := l.Width()

	dup, ok := l.Clone().(*TextLayer)
	if !ok {
		t.Fatal("Clone() did not return a *TextLayer")
	}
	if dup.ID() != l.ID() {
		t.Errorf("clone id = %q, want %q", dup.ID(), l.ID())
	}
	if dup.Text() != "hello" || dup.Color() != (RGBA{B: 1, A: 1}) {
		t.Error("clone did not copy text properties")
	}

	l.SetText("a very different and much longer string")
	if dup.Width() != width {
		t.Error("mutating the original resized the clone")
	}
}

func TestFontFamilyRoundTrip(t *testing.T) {
	families := []FontFamily{FontRegular, FontBold, FontItalic, FontMono}
	for _, f := range families {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", f, err)
		}
		var back FontFamily
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != f {
			t.Errorf("round trip %v = %v", f, back)
		}
	}

	if _, ok := ParseFontFamily("comic"); ok {
		t.Error(`ParseFontFamily("comic") should not be recognized`)
	}
	var f FontFamily
	if err := f.UnmarshalText([]byte("comic")); err != nil || f != FontRegular {
		t.Errorf("unknown family = %v, %v; want FontRegular, nil", f, err)
	}
}

func TestRasterLayerLockedRefusesPaint(t *testing.T) {
	l := NewRasterLayer("bg", 8, 8)
	l.FillAll(RGBA{G: 1, A: 1})
	l.SetLocked(true)

	if l.FillAll(RGBA{R: 1, A: 1}) {
		t.Error("FillAll on a locked layer reported success")
	}
	if l.FillRect(image.Rect(0, 0, 4, 4), RGBA{R: 1, A: 1}) {
		t.Error("FillRect on a locked layer reported success")
	}
	if l.ClearRect(image.Rect(0, 0, 4, 4)) {
		t.Error("ClearRect on a locked layer reported success")
	}
	if l.ClearAll() {
		t.Error("ClearAll on a locked layer reported success")
	}
	if l.FloodFill(2, 2, RGBA{B: 1, A: 1}, 0) {
		t.Error("FloodFill on a locked layer reported success")
	}
	if err := l.ApplyPixels(make([]uint8, 8*8*4)); !errors.Is(err, ErrLayerLocked) {
		t.Errorf("ApplyPixels on a locked layer = %v, want ErrLayerLocked", err)
	}
	if r, g, _, a := l.Pixels().RGBA8At(2, 2); r != 0 || g != 255 || a != 255 {
		t.Errorf("locked layer pixels changed: r=%d g=%d a=%d", r, g, a)
	}

	l.SetLocked(false)
	if !l.FillAll(RGBA{R: 1, A: 1}) {
		t.Error("FillAll after unlock reported failure")
	}
	if r, _, _, _ := l.Pixels().RGBA8At(2, 2); r != 255 {
		t.Error("FillAll after unlock did not paint")
	}
}

func TestVectorLayerLockedRefusesShapeEdits(t *testing.T) {
	l := NewVectorLayer("shapes", 40, 40)
	a := NewRectangleShape(5, 5, 10, 10)
	b := NewRectangleShape(20, 20, 10, 10)
	l.AddShape(a)
	l.AddShape(b)
	l.SetLocked(true)

	if l.AddShape(NewRectangleShape(0, 0, 4, 4)) {
		t.Error("AddShape on a locked layer reported success")
	}
	if l.ShapeCount() != 2 {
		t.Fatalf("locked AddShape grew the shape list to %d", l.ShapeCount())
	}
	if l.RemoveShape(a.ID()) {
		t.Error("RemoveShape on a locked layer reported success")
	}
	if l.MoveShapeBy(a.ID(), 3, 3) {
		t.Error("MoveShapeBy on a locked layer reported success")
	}
	if a.X != 5 || a.Y != 5 {
		t.Errorf("locked MoveShapeBy moved the shape to (%g, %g)", a.X, a.Y)
	}
	if l.SetShapeControlPoint(a.ID(), "br", 50, 50) {
		t.Error("SetShapeControlPoint on a locked layer reported success")
	}
	if l.MoveShapeInOrder(a.ID(), OrderUp) {
		t.Error("MoveShapeInOrder on a locked layer reported success")
	}
	if l.Shapes()[0] != Shape(a) {
		t.Error("locked MoveShapeInOrder reordered the shapes")
	}

	l.SetLocked(false)
	if !l.RemoveShape(a.ID()) {
		t.Error("RemoveShape after unlock reported failure")
	}
}

func TestTextLayerLockedRefusesEdits(t *testing.T) {
	l := NewTextLayer("caption", "hello")
	l.SetLocked(true)

	if l.SetText("changed") {
		t.Error("SetText on a locked layer reported success")
	}
	if l.SetFont(FontBold) {
		t.Error("SetFont on a locked layer reported success")
	}
	if l.SetFontSize(48) {
		t.Error("SetFontSize on a locked layer reported success")
	}
	if l.SetColor(RGBA{R: 1, A: 1}) {
		t.Error("SetColor on a locked layer reported success")
	}
	if l.SetLineHeight(2) {
		t.Error("SetLineHeight on a locked layer reported success")
	}
	if l.Text() != "hello" || l.Font() != FontRegular || l.FontSize() != 24 {
		t.Error("locked layer text state changed")
	}

	l.SetLocked(false)
	if !l.SetText("changed") {
		t.Error("SetText after unlock reported failure")
	}
}

func TestVectorLayerFinalRenderOversamples(t *testing.T) {
	l := NewVectorLayer("shapes", 20, 10)
	l.AddShape(NewRectangleShape(2, 2, 10, 5))

	big := l.renderAt(supersampleFactor, true)
	if big.Width() != 80 || big.Height() != 40 {
		t.Errorf("oversampled render = %dx%d, want 80x40", big.Width(), big.Height())
	}

	final := l.Surface()
	if final.Width() != 20 || final.Height() != 10 {
		t.Errorf("final surface = %dx%d, want 20x10", final.Width(), final.Height())
	}
}

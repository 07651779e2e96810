package easel

import (
	"errors"
	"testing"
)

func TestNewDocumentEmpty(t *testing.T) {
	d := NewDocument(800, 600)

	if d.Width() != 800 || d.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", d.Width(), d.Height())
	}
	if d.LayerCount() != 0 {
		t.Errorf("LayerCount() = %d, want 0", d.LayerCount())
	}
	if d.ActiveIndex() != -1 {
		t.Errorf("ActiveIndex() = %d, want -1", d.ActiveIndex())
	}
	if d.ActiveLayer() != nil {
		t.Error("ActiveLayer() should be nil for an empty document")
	}
	if err := d.RemoveLayer(0); err != nil {
		t.Errorf("RemoveLayer on empty document = %v, want nil no-op", err)
	}
	if d.FlattenAll() != nil {
		t.Error("FlattenAll on empty document should return nil")
	}
}

func TestAddLayerBecomesActive(t *testing.T) {
	d := NewDocument(100, 100)
	a := d.AddLayer(NewRasterLayer("a", 100, 100))
	b := d.AddLayer(NewRasterLayer("b", 100, 100))

	if d.LayerCount() != 2 {
		t.Fatalf("LayerCount() = %d, want 2", d.LayerCount())
	}
	if d.Layers()[0] != a || d.Layers()[1] != b {
		t.Error("layers should stack bottom to top in insertion order")
	}
	if d.ActiveLayer() != b {
		t.Error("the newest layer should be active")
	}
	if d.AddLayer(nil) != nil {
		t.Error("AddLayer(nil) should be ignored")
	}
	if d.LayerCount() != 2 {
		t.Error("AddLayer(nil) should not grow the stack")
	}
}

func TestRemoveLayerActiveFollowsBelow(t *testing.T) {
	d := NewDocument(10, 10)
	a := d.AddLayer(NewRasterLayer("a", 10, 10))
	d.AddLayer(NewRasterLayer("b", 10, 10))
	c := d.AddLayer(NewRasterLayer("c", 10, 10))

	// Active layer (top) removed: the layer below becomes active.
	if err := d.RemoveLayer(2); err != nil {
		t.Fatalf("RemoveLayer(2): %v", err)
	}
	if d.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex() = %d, want 1", d.ActiveIndex())
	}

	// Removing below the active layer shifts the index but keeps the
	// same layer active.
	d.AddLayer(c)
	d.SetActiveLayer(2)
	if err := d.RemoveLayer(0); err != nil {
		t.Fatalf("RemoveLayer(0): %v", err)
	}
	if d.ActiveLayer() != c {
		t.Error("removing a lower layer changed which layer is active")
	}
	if d.LayerIndex(a.ID()) != -1 {
		t.Error("removed layer is still discoverable")
	}

	// Out of range: no-op.
	if err := d.RemoveLayer(99); err != nil {
		t.Errorf("RemoveLayer(99) = %v, want nil", err)
	}
	if d.LayerCount() != 2 {
		t.Errorf("LayerCount() = %d, want 2", d.LayerCount())
	}
}

func TestRemoveLastLayerForbidden(t *testing.T) {
	d := NewDocument(10, 10)
	d.AddLayer(NewRasterLayer("only", 10, 10))

	if err := d.RemoveLayer(0); !errors.Is(err, ErrLastLayer) {
		t.Errorf("RemoveLayer(last) = %v, want ErrLastLayer", err)
	}
	if d.LayerCount() != 1 {
		t.Error("the last layer was removed anyway")
	}
}

func TestRemoveLockedLayer(t *testing.T) {
	d := NewDocument(10, 10)
	d.AddLayer(NewRasterLayer("base", 10, 10))
	locked := d.AddLayer(NewRasterLayer("locked", 10, 10))
	locked.SetLocked(true)

	if err := d.RemoveLayer(1); !errors.Is(err, ErrLayerLocked) {
		t.Errorf("RemoveLayer(locked) = %v, want ErrLayerLocked", err)
	}
	if d.LayerCount() != 2 {
		t.Error("the locked layer was removed")
	}
}

func TestDuplicateLayer(t *testing.T) {
	d := NewDocument(10, 10)
	src := NewRasterLayer("paint", 10, 10)
	src.FillAll(RGBA{R: 1, A: 1})
	d.AddLayer(src)
	d.AddLayer(NewRasterLayer("top", 10, 10))

	dup := d.DuplicateLayer(0)
	if dup == nil {
		t.Fatal("DuplicateLayer(0) = nil")
	}
	if dup.ID() == src.ID() {
		t.Error("duplicate should get a fresh id")
	}
	if dup.Name() != "paint copy" {
		t.Errorf("duplicate name = %q, want %q", dup.Name(), "paint copy")
	}
	if d.Layers()[1] != dup {
		t.Error("duplicate should sit directly above the source")
	}
	if d.ActiveLayer() != dup {
		t.Error("duplicate should become active")
	}

	src.FillAll(RGBA{B: 1, A: 1})
	r, _, _, _ := dup.(*RasterLayer).Pixels().RGBA8At(5, 5)
	if r != 255 {
		t.Error("duplicate shares pixel storage with the source")
	}

	if d.DuplicateLayer(99) != nil {
		t.Error("DuplicateLayer out of range should return nil")
	}
}

func TestDuplicateVectorLayerFreshShapeIDs(t *testing.T) {
	d := NewDocument(100, 100)
	d.AddLayer(NewRasterLayer("bg", 100, 100))
	vl := NewVectorLayer("shapes", 100, 100)
	s := NewRectangleShape(10, 10, 20, 20)
	vl.AddShape(s)
	vl.SelectShape(s.ID(), false)
	d.AddLayer(vl)

	dup, ok := d.DuplicateLayer(1).(*VectorLayer)
	if !ok {
		t.Fatal("duplicate of a vector layer should be a *VectorLayer")
	}
	if dup.ShapeCount() != 1 {
		t.Fatalf("duplicate ShapeCount() = %d, want 1", dup.ShapeCount())
	}
	if dup.Shapes()[0].ID() == s.ID() {
		t.Error("duplicate shapes should get fresh ids")
	}
	if len(dup.SelectedShapes()) != 0 {
		t.Error("duplicate should start with an empty selection")
	}
	if !vl.IsSelected(s.ID()) {
		t.Error("duplicating must not clear the source selection")
	}
}

func TestMoveLayer(t *testing.T) {
	d := NewDocument(10, 10)
	a := d.AddLayer(NewRasterLayer("a", 10, 10))
	b := d.AddLayer(NewRasterLayer("b", 10, 10))
	c := d.AddLayer(NewRasterLayer("c", 10, 10))
	d.SetActiveLayer(0)

	if err := d.MoveLayer(0, 2); err != nil {
		t.Fatalf("MoveLayer(0, 2): %v", err)
	}
	want := []Layer{b, c, a}
	for i, l := range want {
		if d.Layers()[i] != l {
			t.Fatalf("layer %d = %q, want %q", i, d.Layers()[i].Name(), l.Name())
		}
	}
	if d.ActiveLayer() != a {
		t.Error("the active layer should follow the move")
	}

	if err := d.MoveLayer(9, 0); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("MoveLayer(9, 0) = %v, want ErrLayerNotFound", err)
	}

	// Destination clamps to the stack.
	if err := d.MoveLayer(0, 99); err != nil {
		t.Fatalf("MoveLayer(0, 99): %v", err)
	}
	if d.Layers()[2] != b {
		t.Error("clamped move should land on the top of the stack")
	}
}

func TestMergeDown(t *testing.T) {
	d := NewDocument(100, 100)
	lower := NewRasterLayer("lower", 10, 10)
	lower.FillAll(RGBA{R: 1, A: 1})
	lower.SetOpacity(0.8)
	upper := NewRasterLayer("upper", 10, 10)
	upper.FillAll(RGBA{B: 1, A: 1})
	upper.SetOffset(5, 5)
	d.AddLayer(lower)
	d.AddLayer(upper)
	lowerID := lower.ID()

	if err := d.MergeDown(1); err != nil {
		t.Fatalf("MergeDown(1): %v", err)
	}
	if d.LayerCount() != 1 {
		t.Fatalf("LayerCount() = %d, want 1", d.LayerCount())
	}

	merged, ok := d.Layers()[0].(*RasterLayer)
	if !ok {
		t.Fatal("merge result should be a raster layer")
	}
	if merged.ID() != lowerID || merged.Name() != "lower" {
		t.Error("merge should keep the lower layer's identity")
	}
	if merged.Opacity() != 0.8 {
		t.Error("merge should keep the lower layer's opacity")
	}
	if merged.Width() != 15 || merged.Height() != 15 {
		t.Errorf("merged size = %dx%d, want 15x15", merged.Width(), merged.Height())
	}
	if x, y := merged.Offset(); x != 0 || y != 0 {
		t.Errorf("merged offset = (%d, %d), want (0, 0)", x, y)
	}
	if d.ActiveLayer() != Layer(merged) {
		t.Error("the merged layer should be active")
	}

	probe := func(x, y int, wantR, wantB, wantA uint8) {
		t.Helper()
		r, _, b, a := merged.Pixels().RGBA8At(x, y)
		if r != wantR || b != wantB || a != wantA {
			t.Errorf("pixel (%d,%d) = r%d b%d a%d, want r%d b%d a%d", x, y, r, b, a, wantR, wantB, wantA)
		}
	}
	probe(2, 2, 255, 0, 255)   // lower only
	probe(7, 7, 0, 255, 255)   // upper covers lower
	probe(12, 12, 0, 255, 255) // upper only
	probe(13, 2, 0, 0, 0)      // neither
}

func TestMergeDownUsesUpperBlendAndOpacity(t *testing.T) {
	d := NewDocument(10, 10)
	lower := NewRasterLayer("lower", 10, 10)
	upper := NewRasterLayer("upper", 10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			lower.Pixels().SetRGBA8(x, y, 200, 200, 200, 255)
			upper.Pixels().SetRGBA8(x, y, 128, 128, 128, 255)
		}
	}
	upper.SetBlendMode(BlendMultiply)
	upper.SetOpacity(0.5)
	d.AddLayer(lower)
	d.AddLayer(upper)

	if err := d.MergeDown(1); err != nil {
		t.Fatalf("MergeDown(1): %v", err)
	}

	merged := d.Layers()[0].(*RasterLayer)
	// multiply(128, 200) = 100, composited at half opacity over 200.
	r, g, b, a := merged.Pixels().RGBA8At(5, 5)
	if r != 149 || g != 149 || b != 149 || a != 255 {
		t.Errorf("merged pixel = (%d,%d,%d,%d), want (149,149,149,255)", r, g, b, a)
	}
	if merged.BlendMode() != BlendNormal {
		t.Error("the upper blend mode should be consumed by the merge")
	}
}

func TestMergeDownEdges(t *testing.T) {
	d := NewDocument(10, 10)
	d.AddLayer(NewRasterLayer("only", 10, 10))

	if err := d.MergeDown(0); err != nil {
		t.Errorf("MergeDown(0) = %v, want nil no-op", err)
	}
	if err := d.MergeDown(5); err != nil {
		t.Errorf("MergeDown(out of range) = %v, want nil no-op", err)
	}
	if d.LayerCount() != 1 {
		t.Error("no-op merges should not change the stack")
	}

	locked := d.AddLayer(NewRasterLayer("locked", 10, 10))
	locked.SetLocked(true)
	if err := d.MergeDown(1); !errors.Is(err, ErrLayerLocked) {
		t.Errorf("MergeDown(locked) = %v, want ErrLayerLocked", err)
	}
}

func TestFlattenAll(t *testing.T) {
	d := NewDocument(20, 20)
	base := NewRasterLayer("base", 20, 20)
	base.FillAll(RGBA{R: 1, A: 1})
	hidden := NewRasterLayer("hidden", 20, 20)
	hidden.FillAll(RGBA{G: 1, A: 1})
	hidden.SetVisible(false)
	top := NewRasterLayer("top", 5, 5)
	top.FillAll(RGBA{B: 1, A: 1})
	top.SetOffset(10, 10)
	d.AddLayer(base)
	d.AddLayer(hidden)
	d.AddLayer(top)

	flat := d.FlattenAll()
	if flat == nil {
		t.Fatal("FlattenAll() = nil")
	}
	if d.LayerCount() != 1 || d.Layers()[0] != flat {
		t.Fatal("flatten should leave exactly the flattened layer")
	}
	if flat.Name() != "Background" {
		t.Errorf("flattened name = %q, want Background", flat.Name())
	}
	if flat.Width() != 20 || flat.Height() != 20 {
		t.Errorf("flattened size = %dx%d, want document size", flat.Width(), flat.Height())
	}
	if d.ActiveLayer() != flat {
		t.Error("the flattened layer should be active")
	}

	pixels := flat.(*RasterLayer).Pixels()
	if r, g, _, _ := pixels.RGBA8At(2, 2); r != 255 || g != 0 {
		t.Error("hidden layer leaked into the flattened result")
	}
	if _, _, b, _ := pixels.RGBA8At(12, 12); b != 255 {
		t.Error("offset layer missing from the flattened result")
	}
}

func TestRasterizeLayer(t *testing.T) {
	d := NewDocument(50, 50)
	d.AddLayer(NewRasterLayer("bg", 50, 50))
	vl := NewVectorLayer("shapes", 50, 50)
	vl.AddShape(NewRectangleShape(10, 10, 30, 30))
	vl.SetOpacity(0.9)
	vl.SetOffset(3, 4)
	d.AddLayer(vl)

	out := d.RasterizeLayer(vl.ID())
	if out == nil {
		t.Fatal("RasterizeLayer returned nil for a vector layer")
	}
	rl, ok := out.(*RasterLayer)
	if !ok {
		t.Fatalf("rasterized layer is %T, want *RasterLayer", out)
	}
	if rl.ID() != vl.ID() || rl.Name() != "shapes" {
		t.Error("rasterize should keep the layer identity")
	}
	if rl.Opacity() != 0.9 {
		t.Error("rasterize should keep composite properties")
	}
	if x, y := rl.Offset(); x != 3 || y != 4 {
		t.Error("rasterize should keep the offset")
	}
	if d.Layers()[1] != Layer(rl) {
		t.Error("rasterize should replace the layer in place")
	}
	if _, _, _, a := rl.Pixels().RGBA8At(25, 25); a != 255 {
		t.Error("rasterized content missing the shape fill")
	}

	// Already raster: same object back.
	if again := d.RasterizeLayer(rl.ID()); again != Layer(rl) {
		t.Error("rasterizing a raster layer should return the same object")
	}

	if d.RasterizeLayer("layer-missing") != nil {
		t.Error("rasterizing an unknown id should return nil")
	}
}

func TestRasterizeLockedLayer(t *testing.T) {
	d := NewDocument(50, 50)
	d.AddLayer(NewRasterLayer("bg", 50, 50))
	vl := NewVectorLayer("shapes", 50, 50)
	vl.SetLocked(true)
	d.AddLayer(vl)

	if d.RasterizeLayer(vl.ID()) != nil {
		t.Error("rasterizing a locked layer should return nil")
	}
	if d.Layers()[1] != Layer(vl) {
		t.Error("a locked layer must not be replaced")
	}
}

func TestSetActiveLayer(t *testing.T) {
	d := NewDocument(10, 10)
	a := d.AddLayer(NewRasterLayer("a", 10, 10))
	b := d.AddLayer(NewRasterLayer("b", 10, 10))

	d.SetActiveLayer(0)
	if d.ActiveLayer() != a {
		t.Error("SetActiveLayer(0) did not activate the bottom layer")
	}
	d.SetActiveLayer(99)
	if d.ActiveLayer() != a {
		t.Error("an invalid index should leave the active layer alone")
	}

	d.SetActiveLayerByID(b.ID())
	if d.ActiveLayer() != b {
		t.Error("SetActiveLayerByID did not activate the layer")
	}
	d.SetActiveLayerByID("layer-missing")
	if d.ActiveLayer() != b {
		t.Error("an unknown id should leave the active layer alone")
	}
}

func TestLayerLookups(t *testing.T) {
	d := NewDocument(10, 10)
	a := d.AddLayer(NewRasterLayer("a", 10, 10))
	b := d.AddLayer(NewRasterLayer("b", 10, 10))

	if d.LayerIndex(a.ID()) != 0 || d.LayerIndex(b.ID()) != 1 {
		t.Error("LayerIndex returned wrong positions")
	}
	if d.LayerIndex("layer-missing") != -1 {
		t.Error("LayerIndex(unknown) should be -1")
	}
	if d.LayerByID(a.ID()) != a {
		t.Error("LayerByID did not find the layer")
	}
	if d.LayerByID("layer-missing") != nil {
		t.Error("LayerByID(unknown) should be nil")
	}
}

func TestDocumentCloneDeep(t *testing.T) {
	d := NewDocument(30, 30)
	base := NewRasterLayer("base", 30, 30)
	base.FillAll(RGBA{R: 1, A: 1})
	d.AddLayer(base)
	vl := NewVectorLayer("shapes", 30, 30)
	vl.AddShape(NewRectangleShape(5, 5, 10, 10))
	d.AddLayer(vl)
	d.SetActiveLayer(0)

	snap := d.Clone()
	if snap.LayerCount() != 2 || snap.ActiveIndex() != 0 {
		t.Fatal("clone should copy the stack and active pointer")
	}
	if snap.Layers()[0].ID() != base.ID() {
		t.Error("clone should preserve layer ids")
	}

	base.FillAll(RGBA{B: 1, A: 1})
	d.AddLayer(NewRasterLayer("extra", 10, 10))

	if snap.LayerCount() != 2 {
		t.Error("growing the original changed the clone")
	}
	cloneBase := snap.Layers()[0].(*RasterLayer)
	if r, _, _, _ := cloneBase.Pixels().RGBA8At(3, 3); r != 255 {
		t.Error("clone shares pixel storage with the original")
	}
}

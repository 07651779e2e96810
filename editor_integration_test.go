package easel_test

import (
	"context"
	"testing"

	"github.com/easelkit/easel"
	"github.com/easelkit/easel/filter"
)

// Importing the filter package registers its backend; tests
// re-register explicitly so they hold regardless of what earlier
// tests did to the process-wide registration.

func TestBuiltinFilterEndToEnd(t *testing.T) {
	easel.RegisterFilterBackend(&filter.LocalBackend{})

	ed := easel.NewEditor(4, 4)
	l := easel.NewRasterLayer("Paint", 4, 4)
	l.FillAll(easel.RGBA{R: 10.0 / 255, G: 20.0 / 255, B: 30.0 / 255, A: 1})
	ed.Document().AddLayer(l)

	if err := ed.ApplyFilter(context.Background(), l.ID(), "invert", nil); err != nil {
		t.Fatalf("ApplyFilter() = %v", err)
	}
	if r, g, b, a := l.Pixels().RGBA8At(0, 0); r != 245 || g != 235 || b != 225 || a != 255 {
		t.Errorf("pixel = (%d,%d,%d,%d), want (245,235,225,255)", r, g, b, a)
	}

	if !ed.Undo() {
		t.Fatal("Undo() = false after filter")
	}
	if r, g, b, a := l.Pixels().RGBA8At(0, 0); r != 10 || g != 20 || b != 30 || a != 255 {
		t.Errorf("pixel after undo = (%d,%d,%d,%d), want (10,20,30,255)", r, g, b, a)
	}
}

func TestBuiltinFilterWithParams(t *testing.T) {
	ed := easel.NewEditor(2, 2, easel.WithFilterBackend(&filter.LocalBackend{}))
	l := easel.NewRasterLayer("Paint", 2, 2)
	l.FillAll(easel.RGBA{R: 200.0 / 255, G: 10.0 / 255, B: 130.0 / 255, A: 1})
	ed.Document().AddLayer(l)

	err := ed.ApplyFilter(context.Background(), l.ID(), "posterize",
		easel.FilterParams{"levels": 2.0})
	if err != nil {
		t.Fatalf("ApplyFilter() = %v", err)
	}
	if r, g, b, a := l.Pixels().RGBA8At(1, 1); r != 255 || g != 0 || b != 255 || a != 255 {
		t.Errorf("pixel = (%d,%d,%d,%d), want (255,0,255,255)", r, g, b, a)
	}
}

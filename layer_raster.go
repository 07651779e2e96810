package easel

import (
	"fmt"
	"image"
)

var _ Layer = (*RasterLayer)(nil)

// RasterLayer owns an RGBA pixel buffer. All painting operations
// write into the buffer directly; the layer's offset never moves
// pixel data.
type RasterLayer struct {
	baseLayer
	pixels *Pixmap
}

// NewRasterLayer creates a transparent raster layer of the given
// size.
func NewRasterLayer(name string, width, height int) *RasterLayer {
	return &RasterLayer{
		baseLayer: newBaseLayer(name),
		pixels:    NewPixmap(width, height),
	}
}

// Kind returns LayerKindRaster.
func (l *RasterLayer) Kind() LayerKind { return LayerKindRaster }

// Width returns the pixel buffer width.
func (l *RasterLayer) Width() int { return l.pixels.Width() }

// Height returns the pixel buffer height.
func (l *RasterLayer) Height() int { return l.pixels.Height() }

// Pixels returns the layer's pixel buffer for direct painting.
func (l *RasterLayer) Pixels() *Pixmap { return l.pixels }

// Surface returns the pixel buffer.
func (l *RasterLayer) Surface() *Pixmap { return l.pixels }

// Clone returns a deep copy preserving the id.
func (l *RasterLayer) Clone() Layer {
	dup := *l
	dup.pixels = l.pixels.Clone()
	dup.effects = cloneEffects(l.effects)
	return &dup
}

// FillAll fills the entire buffer with one color. A locked layer
// reports false and keeps its pixels.
func (l *RasterLayer) FillAll(c RGBA) bool {
	if l.locked {
		return false
	}
	l.pixels.FillRect(l.pixels.Bounds(), c)
	return true
}

// ClearAll resets the entire buffer to transparent. A locked layer
// reports false and keeps its pixels.
func (l *RasterLayer) ClearAll() bool {
	if l.locked {
		return false
	}
	l.pixels.Clear(Transparent)
	return true
}

// FillRect fills a region with one color, clipped to the buffer.
// Empty regions are a no-op; a locked layer reports false.
func (l *RasterLayer) FillRect(r image.Rectangle, c RGBA) bool {
	if l.locked {
		return false
	}
	l.pixels.FillRect(r, c)
	return true
}

// ClearRect resets a region to transparent, clipped to the buffer.
// Empty regions are a no-op; a locked layer reports false.
func (l *RasterLayer) ClearRect(r image.Rectangle) bool {
	if l.locked {
		return false
	}
	l.pixels.ClearRect(r)
	return true
}

// FloodFill fills the contiguous region around the seed with one
// color, in layer coordinates. Reports whether any pixel changed;
// locked layers change nothing.
func (l *RasterLayer) FloodFill(x, y int, c RGBA, tolerance uint8) bool {
	if l.locked {
		return false
	}
	return FloodFill(l.pixels, x, y, c, tolerance)
}

// ApplyPixels replaces the buffer contents with raw RGBA bytes in
// row-major order without padding. The data length must match the
// buffer exactly; filters use this to write their results back.
// Locked layers fail with ErrLayerLocked.
func (l *RasterLayer) ApplyPixels(data []uint8) error {
	if l.locked {
		return ErrLayerLocked
	}
	want := l.pixels.Width() * l.pixels.Height() * 4
	if len(data) != want {
		return fmt.Errorf("easel: pixel data length %d does not match layer size %d", len(data), want)
	}
	copy(l.pixels.Data(), data)
	return nil
}

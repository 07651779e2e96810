package filter

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/easelkit/easel"
)

func init() {
	easel.RegisterFilterBackend(&LocalBackend{})
}

// LocalBackend runs registered filters in-process on the CPU. It is
// the backend enabled by blank-importing this package. The zero value
// is ready to use, so tests can pin one without going through the
// engine registry:
//
//	ed := easel.NewEditor(w, h, easel.WithFilterBackend(&filter.LocalBackend{}))
type LocalBackend struct {
	mu     sync.RWMutex
	logger *slog.Logger
}

// Name implements easel.FilterBackend.
func (b *LocalBackend) Name() string { return "builtin" }

// Has implements easel.FilterBackend.
func (b *LocalBackend) Has(filterID string) bool { return IsRegistered(filterID) }

// SetLogger receives the engine logger when the backend is
// registered.
func (b *LocalBackend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	b.logger = l
	b.mu.Unlock()
}

func (b *LocalBackend) log() *slog.Logger {
	b.mu.RLock()
	l := b.logger
	b.mu.RUnlock()
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

// Apply implements easel.FilterBackend. The buffer is straight RGBA,
// row-major, without row padding; the result has identical
// dimensions.
func (b *LocalBackend) Apply(ctx context.Context, filterID string, buf []uint8, width, height int, params easel.FilterParams) ([]uint8, error) {
	f, ok := Lookup(filterID)
	if !ok {
		return nil, fmt.Errorf("filter: %q: %w", filterID, easel.ErrUnknownFilter)
	}
	if len(buf) != width*height*4 {
		return nil, fmt.Errorf("filter: buffer is %d bytes, want %d for %dx%d", len(buf), width*height*4, width, height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := &image.NRGBA{
		Pix:    buf,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	out, err := f.Apply(ctx, src, Params(params))
	if err != nil {
		return nil, fmt.Errorf("filter: %s: %w", filterID, err)
	}
	if out == nil {
		return nil, fmt.Errorf("filter: %s returned no image", filterID)
	}
	if ob := out.Bounds(); ob.Dx() != width || ob.Dy() != height {
		return nil, fmt.Errorf("filter: %s resized %dx%d to %dx%d", filterID, width, height, ob.Dx(), ob.Dy())
	}
	b.log().Debug("filter applied", "id", filterID, "w", width, "h", height)
	return packPix(out), nil
}

// packPix flattens an NRGBA into the tightly packed exchange layout.
func packPix(img *image.NRGBA) []uint8 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if b.Min == (image.Point{}) && img.Stride == w*4 && len(img.Pix) == w*h*4 {
		return img.Pix
	}
	out := make([]uint8, w*h*4)
	for y := range h {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(out[y*w*4:(y+1)*w*4], row[:w*4])
	}
	return out
}

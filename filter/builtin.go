package filter

import (
	"context"
	"image"
	"image/draw"
)

// builtin adapts a plain pixel function to the Filter interface.
// Cancellation is checked once up front; the built-in kernels are
// fast enough that mid-run checks would not buy anything.
type builtin struct {
	info  Info
	apply func(src *image.NRGBA, p Params) (*image.NRGBA, error)
}

func (b *builtin) Info() Info { return b.info }

func (b *builtin) Apply(ctx context.Context, src *image.NRGBA, p Params) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.apply(src, p)
}

// toNRGBA converts any image to a tightly packed zero-origin NRGBA,
// returning the input unchanged when it already is one.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok &&
		n.Rect.Min == (image.Point{}) && n.Stride == n.Rect.Dx()*4 {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

package filter

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"
)

func init() {
	Register(&builtin{
		info: Info{
			ID:       "pixelate",
			Name:     "Pixelate",
			Category: "Stylize",
			Params: []ParamSpec{
				{ID: "size", Name: "Block Size", Type: ParamRange, Min: 2, Max: 64, Step: 1, Default: 8},
			},
		},
		apply: applyPixelate,
	})

	Register(&builtin{
		info: Info{
			ID:       "posterize",
			Name:     "Posterize",
			Category: "Stylize",
			Params: []ParamSpec{
				{ID: "levels", Name: "Levels", Type: ParamRange, Min: 2, Max: 16, Step: 1, Default: 4},
			},
		},
		apply: applyPosterize,
	})

	Register(&builtin{
		info: Info{
			ID:       "threshold",
			Name:     "Threshold",
			Category: "Stylize",
			Params: []ParamSpec{
				{ID: "level", Name: "Level", Type: ParamRange, Min: 0, Max: 255, Step: 1, Default: 128},
			},
		},
		apply: applyThreshold,
	})
}

// applyPixelate shrinks the image by the block size and scales it
// back up, both with nearest-neighbor sampling, so every block
// collapses to a single sampled color.
func applyPixelate(src *image.NRGBA, p Params) (*image.NRGBA, error) {
	size := max(p.Int("size", 8), 1)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 1 || w == 0 || h == 0 {
		return src, nil
	}
	downW := max(w/size, 1)
	downH := max(h/size, 1)
	small := transform.Resize(src, downW, downH, transform.NearestNeighbor)
	return toNRGBA(transform.Resize(small, w, h, transform.NearestNeighbor)), nil
}

// applyPosterize quantizes each color channel to a fixed number of
// evenly spaced levels. Alpha passes through.
func applyPosterize(src *image.NRGBA, p Params) (*image.NRGBA, error) {
	levels := min(max(p.Int("levels", 4), 2), 256)
	steps := float64(levels - 1)
	var lut [256]uint8
	for i := range lut {
		lut[i] = uint8(math.Round(math.Round(float64(i)/255*steps) / steps * 255))
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := out.PixOffset(0, y)
		for range w {
			out.Pix[di+0] = lut[src.Pix[si+0]]
			out.Pix[di+1] = lut[src.Pix[si+1]]
			out.Pix[di+2] = lut[src.Pix[si+2]]
			out.Pix[di+3] = src.Pix[si+3]
			si += 4
			di += 4
		}
	}
	return out, nil
}

// applyThreshold maps each pixel to black or white by luminance,
// keeping the source alpha.
func applyThreshold(src *image.NRGBA, p Params) (*image.NRGBA, error) {
	level := min(max(p.Int("level", 128), 0), 255)

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// segment premultiplies on its RGBA conversion, so judge luminance
	// on an opaque copy and reattach the source alpha below.
	opaque := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := opaque.PixOffset(0, y)
		for range w {
			opaque.Pix[di+0] = src.Pix[si+0]
			opaque.Pix[di+1] = src.Pix[si+1]
			opaque.Pix[di+2] = src.Pix[si+2]
			opaque.Pix[di+3] = 255
			si += 4
			di += 4
		}
	}
	gray := segment.Threshold(opaque, uint8(level))

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	gb := gray.Bounds()
	for y := range h {
		gi := gray.PixOffset(gb.Min.X, gb.Min.Y+y)
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		di := out.PixOffset(0, y)
		for x := range w {
			v := gray.Pix[gi+x]
			out.Pix[di+0] = v
			out.Pix[di+1] = v
			out.Pix[di+2] = v
			out.Pix[di+3] = src.Pix[si+3]
			si += 4
			di += 4
		}
	}
	return out, nil
}

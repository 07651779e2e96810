package filter

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

func init() {
	Register(&builtin{
		info: Info{ID: "grayscale", Name: "Grayscale", Category: "Effect"},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Grayscale(src)), nil
		},
	})

	Register(&builtin{
		info: Info{ID: "invert", Name: "Invert", Category: "Effect"},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Invert(src)), nil
		},
	})

	Register(&builtin{
		info: Info{ID: "sepia", Name: "Sepia", Category: "Effect"},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Sepia(src)), nil
		},
	})

	Register(&builtin{
		info: Info{ID: "sharpen", Name: "Sharpen", Category: "Effect"},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Sharpen(src)), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "unsharp-mask",
			Name:     "Unsharp Mask",
			Category: "Effect",
			Params: []ParamSpec{
				{ID: "radius", Name: "Radius", Type: ParamRange, Min: 0, Max: 20, Step: 0.5, Default: 2.0},
				{ID: "amount", Name: "Amount", Type: ParamRange, Min: 0, Max: 2, Step: 0.05, Default: 0.5},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.UnsharpMask(src, p.Float("radius", 2), p.Float("amount", 0.5))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "edge-detect",
			Name:     "Edge Detect",
			Category: "Effect",
			Params: []ParamSpec{
				{ID: "radius", Name: "Radius", Type: ParamRange, Min: 0, Max: 10, Step: 0.5, Default: 1.0},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.EdgeDetection(src, p.Float("radius", 1))), nil
		},
	})

	Register(&builtin{
		info: Info{ID: "emboss", Name: "Emboss", Category: "Effect"},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Emboss(src)), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "median",
			Name:     "Median",
			Category: "Effect",
			Params: []ParamSpec{
				{ID: "size", Name: "Size", Type: ParamRange, Min: 0, Max: 20, Step: 1, Default: 3},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Median(src, p.Float("size", 3))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "dilate",
			Name:     "Dilate",
			Category: "Effect",
			Params: []ParamSpec{
				{ID: "radius", Name: "Radius", Type: ParamRange, Min: 0, Max: 10, Step: 0.5, Default: 1.0},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Dilate(src, p.Float("radius", 1))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "erode",
			Name:     "Erode",
			Category: "Effect",
			Params: []ParamSpec{
				{ID: "radius", Name: "Radius", Type: ParamRange, Min: 0, Max: 10, Step: 0.5, Default: 1.0},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(effect.Erode(src, p.Float("radius", 1))), nil
		},
	})
}

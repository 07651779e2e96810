package filter

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
)

// Tone and color adjustments. Amounts are relative: 0 is the identity,
// -1 and 1 are the extremes the sliders expose.
func init() {
	Register(&builtin{
		info: Info{
			ID:       "brightness",
			Name:     "Brightness",
			Category: "Adjust",
			Params: []ParamSpec{
				{ID: "amount", Name: "Amount", Type: ParamRange, Min: -1, Max: 1, Step: 0.01, Default: 0.1},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(adjust.Brightness(src, p.Float("amount", 0.1))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "contrast",
			Name:     "Contrast",
			Category: "Adjust",
			Params: []ParamSpec{
				{ID: "amount", Name: "Amount", Type: ParamRange, Min: -1, Max: 1, Step: 0.01, Default: 0.1},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(adjust.Contrast(src, p.Float("amount", 0.1))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "saturation",
			Name:     "Saturation",
			Category: "Adjust",
			Params: []ParamSpec{
				{ID: "amount", Name: "Amount", Type: ParamRange, Min: -1, Max: 1, Step: 0.01, Default: 0.25},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(adjust.Saturation(src, p.Float("amount", 0.25))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "hue-rotate",
			Name:     "Hue Rotate",
			Category: "Adjust",
			Params: []ParamSpec{
				{ID: "degrees", Name: "Degrees", Type: ParamRange, Min: -180, Max: 180, Step: 1, Default: 30},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(adjust.Hue(src, p.Int("degrees", 30))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "gamma",
			Name:     "Gamma",
			Category: "Adjust",
			Params: []ParamSpec{
				{ID: "gamma", Name: "Gamma", Type: ParamRange, Min: 0.1, Max: 5, Step: 0.05, Default: 1.0},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			g := p.Float("gamma", 1)
			if g < 0.1 {
				g = 0.1
			}
			return toNRGBA(adjust.Gamma(src, g)), nil
		},
	})
}

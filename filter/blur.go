package filter

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

func init() {
	Register(&builtin{
		info: Info{
			ID:       "gaussian-blur",
			Name:     "Gaussian Blur",
			Category: "Blur",
			Params: []ParamSpec{
				{ID: "radius", Name: "Radius", Type: ParamRange, Min: 0, Max: 50, Step: 0.5, Default: 4.0},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(blur.Gaussian(src, p.Float("radius", 4))), nil
		},
	})

	Register(&builtin{
		info: Info{
			ID:       "box-blur",
			Name:     "Box Blur",
			Category: "Blur",
			Params: []ParamSpec{
				{ID: "radius", Name: "Radius", Type: ParamRange, Min: 0, Max: 50, Step: 0.5, Default: 4.0},
			},
		},
		apply: func(src *image.NRGBA, p Params) (*image.NRGBA, error) {
			return toNRGBA(blur.Box(src, p.Float("radius", 4))), nil
		},
	})
}

package easel

import (
	"image"

	"golang.org/x/image/draw"
)

// resizePixmap scales src to width×height with the given scaler.
func resizePixmap(src *Pixmap, width, height int, scaler draw.Scaler) *Pixmap {
	if width <= 0 || height <= 0 {
		return NewPixmap(0, 0)
	}
	if width == src.Width() && height == src.Height() {
		return src.Clone()
	}

	dst := NewPixmap(width, height)
	scaler.Scale(dst.NRGBA(), image.Rect(0, 0, width, height), src.NRGBA(), src.NRGBA().Bounds(), draw.Src, nil)
	return dst
}

// Resize returns a copy of the pixmap scaled to the given size using
// a high-quality resampling kernel.
func (p *Pixmap) Resize(width, height int) *Pixmap {
	return resizePixmap(p, width, height, draw.CatmullRom)
}

// downsample reduces a supersampled render to its target size. The
// box-like kernel averages the subsamples without ringing.
func downsample(src *Pixmap, width, height int) *Pixmap {
	return resizePixmap(src, width, height, draw.BiLinear)
}

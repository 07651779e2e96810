package easel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Pixmap represents a rectangular pixel buffer.
//
// The buffer is straight (non-premultiplied) RGBA, 8 bits per channel,
// row-major with no row padding. This is the exchange format on both
// sides of every filter call.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// SetRGBA8 sets a pixel from raw channel bytes without float conversion.
func (p *Pixmap) SetRGBA8(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// RGBA8At returns the raw channel bytes of a pixel. Out-of-bounds
// coordinates read as transparent black.
func (p *Pixmap) RGBA8At(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// FillRect fills a rectangular region with a color. The region is clipped
// to the pixmap; an empty intersection is a no-op.
func (p *Pixmap) FillRect(r image.Rectangle, c RGBA) {
	r = r.Intersect(p.Bounds())
	if r.Empty() {
		return
	}
	cr := uint8(clamp255(c.R * 255))
	cg := uint8(clamp255(c.G * 255))
	cb := uint8(clamp255(c.B * 255))
	ca := uint8(clamp255(c.A * 255))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := (y*p.width + r.Min.X) * 4
		for x := r.Min.X; x < r.Max.X; x++ {
			p.data[i+0] = cr
			p.data[i+1] = cg
			p.data[i+2] = cb
			p.data[i+3] = ca
			i += 4
		}
	}
}

// ClearRect zeroes a rectangular region to transparent black.
func (p *Pixmap) ClearRect(r image.Rectangle) {
	p.FillRect(r, Transparent)
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, len(p.data)),
	}
	copy(out.data, p.data)
	return out
}

// Equal reports whether two pixmaps have identical dimensions and bytes.
func (p *Pixmap) Equal(other *Pixmap) bool {
	if other == nil {
		return false
	}
	return p.width == other.width &&
		p.height == other.height &&
		bytes.Equal(p.data, other.data)
}

// CopyRegion extracts a rectangular region as a new pixmap. The region is
// clipped to the pixmap bounds; nil is returned if the intersection is
// empty.
func (p *Pixmap) CopyRegion(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.Bounds())
	if r.Empty() {
		return nil
	}
	out := NewPixmap(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		srcOff := ((r.Min.Y+y)*p.width + r.Min.X) * 4
		dstOff := y * out.width * 4
		copy(out.data[dstOff:dstOff+out.width*4], p.data[srcOff:srcOff+out.width*4])
	}
	return out
}

// Paste overwrites the region at (x, y) with the source pixels, alpha
// included. The source is clipped against the destination bounds.
func (p *Pixmap) Paste(src *Pixmap, x, y int) {
	if src == nil {
		return
	}
	dstRect := image.Rect(x, y, x+src.width, y+src.height).Intersect(p.Bounds())
	if dstRect.Empty() {
		return
	}
	for dy := dstRect.Min.Y; dy < dstRect.Max.Y; dy++ {
		sy := dy - y
		srcOff := (sy*src.width + (dstRect.Min.X - x)) * 4
		dstOff := (dy*p.width + dstRect.Min.X) * 4
		copy(p.data[dstOff:dstOff+dstRect.Dx()*4], src.data[srcOff:srcOff+dstRect.Dx()*4])
	}
}

// DrawOver composites the source onto the region at (x, y) with straight
// alpha source-over blending.
func (p *Pixmap) DrawOver(src *Pixmap, x, y int) {
	if src == nil {
		return
	}
	dstRect := image.Rect(x, y, x+src.width, y+src.height).Intersect(p.Bounds())
	if dstRect.Empty() {
		return
	}
	for dy := dstRect.Min.Y; dy < dstRect.Max.Y; dy++ {
		for dx := dstRect.Min.X; dx < dstRect.Max.X; dx++ {
			si := ((dy-y)*src.width + (dx - x)) * 4
			sa := src.data[si+3]
			if sa == 0 {
				continue
			}
			di := (dy*p.width + dx) * 4
			if sa == 255 || p.data[di+3] == 0 {
				copy(p.data[di:di+4], src.data[si:si+4])
				continue
			}
			srcA := float64(sa) / 255
			dstA := float64(p.data[di+3]) / 255
			outA := srcA + dstA*(1-srcA)
			if outA == 0 {
				p.data[di+0], p.data[di+1], p.data[di+2], p.data[di+3] = 0, 0, 0, 0
				continue
			}
			for ch := 0; ch < 3; ch++ {
				s := float64(src.data[si+ch])
				d := float64(p.data[di+ch])
				p.data[di+ch] = uint8((s*srcA + d*dstA*(1-srcA)) / outA)
			}
			p.data[di+3] = uint8(outA * 255)
		}
	}
}

// ToImage converts the pixmap to an image.NRGBA copy.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// NRGBA wraps the pixmap's storage in an image.NRGBA without copying.
// Mutating the returned image mutates the pixmap.
func (p *Pixmap) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.data,
		Stride: p.width * 4,
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			srcOff := n.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			dstOff := y * width * 4
			copy(pm.data[dstOff:dstOff+width*4], n.Pix[srcOff:srcOff+width*4])
		}
		return pm
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// EncodePNG writes the pixmap as PNG to w.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return p.EncodePNG(f)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

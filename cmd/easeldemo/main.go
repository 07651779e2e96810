// Command easeldemo builds a layered document with the easel engine
// and writes the composited result as a PNG.
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"math"

	"github.com/easelkit/easel"
	_ "github.com/easelkit/easel/filter"
)

func main() {
	var (
		width  = flag.Int("width", 800, "canvas width")
		height = flag.Int("height", 600, "canvas height")
		output = flag.String("output", "easel.png", "output file")
	)
	flag.Parse()

	ed := easel.NewEditor(*width, *height)

	buildBackground(ed, *width, *height)
	paint := buildPaintLayer(ed, *width, *height)
	buildShapeLayer(ed, *width, *height)
	buildTextLayer(ed)

	// Soften the painted discs through the built-in filter backend.
	if err := ed.ApplyFilter(context.Background(), paint.ID(), "gaussian-blur",
		easel.FilterParams{"radius": 6.0}); err != nil {
		log.Fatalf("Failed to filter: %v", err)
	}

	if err := ed.Composite().SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %d layers)\n",
		*output, *width, *height, ed.Document().LayerCount())
}

// buildBackground fills the bottom layer with a vertical gradient.
func buildBackground(ed *easel.Editor, w, h int) {
	bg := easel.NewRasterLayer("Background", w, h)
	steps := 100
	for i := range steps {
		t := float64(i) / float64(steps)
		c := easel.RGBA{R: 0.1 + t*0.4, G: 0.2 + t*0.3, B: 0.4 + t*0.2, A: 1}
		bg.FillRect(image.Rect(0, h*i/steps, w, h*(i+1)/steps), c)
	}
	ed.Document().AddLayer(bg)
}

// buildPaintLayer paints three overlapping translucent discs.
func buildPaintLayer(ed *easel.Editor, w, h int) *easel.RasterLayer {
	paint := easel.NewRasterLayer("Paint", w, h)
	cx, cy := float64(w)*0.25, float64(h)*0.3
	drawDisc(paint, cx-25, cy, 60, easel.RGBA{R: 1, G: 0.3, B: 0.3, A: 0.8})
	drawDisc(paint, cx+25, cy, 60, easel.RGBA{R: 0.3, G: 1, B: 0.3, A: 0.8})
	drawDisc(paint, cx, cy+50, 60, easel.RGBA{R: 0.3, G: 0.3, B: 1, A: 0.8})
	ed.Document().AddLayer(paint)
	return paint
}

// drawDisc rasterizes a filled circle into a scratch pixmap and
// composites it over the layer, so overlapping discs blend.
func drawDisc(l *easel.RasterLayer, cx, cy, r float64, c easel.RGBA) {
	size := int(2*r) + 2
	disc := easel.NewPixmap(size, size)
	for y := range size {
		for x := range size {
			dx := float64(x) - r
			dy := float64(y) - r
			if dx*dx+dy*dy <= r*r {
				disc.SetPixel(x, y, c)
			}
		}
	}
	l.Pixels().DrawOver(disc, int(cx-r)-1, int(cy-r)-1)
}

// buildShapeLayer adds a vector layer with one of each shape family.
func buildShapeLayer(ed *easel.Editor, w, h int) {
	shapes := easel.NewVectorLayer("Shapes", w, h)

	rect := easel.NewRectangleShape(float64(w)-450, 100, 120, 80)
	rect.CornerRadius = 15
	rs := rect.Style()
	rs.FillColor = easel.RGBA{R: 1, G: 0.8, A: 1}
	rs.Stroke = true
	rs.StrokeColor = easel.White
	rs.StrokeWidth = 4
	shapes.AddShape(rect)

	ell := easel.NewEllipseShape(float64(w)-250, 140, 70, 45)
	ell.Style().FillColor = easel.RGBA{R: 0.3, G: 0.6, B: 1, A: 0.9}
	shapes.AddShape(ell)

	line := easel.NewLineShape(60, float64(h)-160, 300, float64(h)-60)
	ls := line.Style()
	ls.StrokeColor = easel.RGBA{R: 1, G: 0.5, A: 1}
	ls.StrokeWidth = 6
	shapes.AddShape(line)

	star := easel.NewPolygonShape(starPoints(float64(w)-200, float64(h)-120, 5, 60, 30), true)
	star.Style().FillColor = easel.RGBA{R: 1, G: 1, A: 1}
	shapes.AddShape(star)

	ed.Document().AddLayer(shapes)
}

// starPoints builds the vertices of a five-pointed star, alternating
// between the outer and inner radius.
func starPoints(cx, cy float64, points int, outerR, innerR float64) []easel.Point {
	pts := make([]easel.Point, 0, points*2)
	for i := range points * 2 {
		angle := float64(i)*math.Pi/float64(points) - math.Pi/2
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		pts = append(pts, easel.Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)})
	}
	return pts
}

// buildTextLayer puts a title in the top-left corner.
func buildTextLayer(ed *easel.Editor) {
	title := easel.NewTextLayer("Title", "easel")
	title.SetFont(easel.FontBold)
	title.SetFontSize(56)
	title.SetColor(easel.White)
	title.SetOffset(40, 28)
	ed.Document().AddLayer(title)
}

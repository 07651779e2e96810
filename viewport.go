package easel

const (
	// MinZoom is the smallest allowed viewport zoom factor.
	MinZoom = 0.1
	// MaxZoom is the largest allowed viewport zoom factor.
	MaxZoom = 10.0

	// zoomStep is the factor applied by ZoomIn and ZoomOut.
	zoomStep = 1.25
)

// Viewport maps between canvas coordinates and screen coordinates.
// The mapping is screen = canvas*zoom + pan, so
// ScreenToCanvas(CanvasToScreen(p)) == p for any zoom and pan.
type Viewport struct {
	zoom float64
	panX float64
	panY float64
}

// NewViewport creates a viewport at 1:1 zoom with no pan.
func NewViewport() *Viewport {
	return &Viewport{zoom: 1}
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Pan returns the current pan offset in screen pixels.
func (v *Viewport) Pan() (x, y float64) { return v.panX, v.panY }

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.zoom = min(max(z, MinZoom), MaxZoom)
}

// SetPan sets the pan offset in screen pixels.
func (v *Viewport) SetPan(x, y float64) {
	v.panX = x
	v.panY = y
}

// ZoomIn steps the zoom factor up by a fixed ratio.
func (v *Viewport) ZoomIn() { v.SetZoom(v.zoom * zoomStep) }

// ZoomOut steps the zoom factor down by a fixed ratio.
func (v *Viewport) ZoomOut() { v.SetZoom(v.zoom / zoomStep) }

// ZoomAt scales the zoom by factor while keeping the canvas point
// under the given screen position stationary. The pan is solved after
// clamping, so the anchor holds even when the zoom saturates.
func (v *Viewport) ZoomAt(factor, screenX, screenY float64) {
	cx, cy := v.ScreenToCanvas(screenX, screenY)
	v.SetZoom(v.zoom * factor)
	v.panX = screenX - cx*v.zoom
	v.panY = screenY - cy*v.zoom
}

// Matrix returns the canvas-to-screen transform as an affine matrix.
func (v *Viewport) Matrix() Matrix {
	return Translate(v.panX, v.panY).Multiply(Scale(v.zoom, v.zoom))
}

// ScreenToCanvas converts a screen position to canvas coordinates by
// applying the inverse of the viewport transform.
func (v *Viewport) ScreenToCanvas(screenX, screenY float64) (x, y float64) {
	p := v.Matrix().Invert().TransformPoint(Pt(screenX, screenY))
	return p.X, p.Y
}

// CanvasToScreen converts a canvas position to screen coordinates.
func (v *Viewport) CanvasToScreen(canvasX, canvasY float64) (x, y float64) {
	return canvasX*v.zoom + v.panX, canvasY*v.zoom + v.panY
}

// FitToWindow zooms so the whole canvas is visible in a window of the
// given size and centers it. Degenerate sizes reset to 1:1.
func (v *Viewport) FitToWindow(canvasW, canvasH, windowW, windowH int) {
	if canvasW <= 0 || canvasH <= 0 || windowW <= 0 || windowH <= 0 {
		v.zoom = 1
		v.panX, v.panY = 0, 0
		return
	}
	v.SetZoom(min(
		float64(windowW)/float64(canvasW),
		float64(windowH)/float64(canvasH),
	))
	v.panX = (float64(windowW) - float64(canvasW)*v.zoom) / 2
	v.panY = (float64(windowH) - float64(canvasH)*v.zoom) / 2
}

// Package easel provides the document model and editing engine for a
// layered image editor.
//
// # Overview
//
// easel is a pure Go engine for non-destructive image editing. A Document
// is an ordered stack of layers (raster pixel buffers, editable vector
// geometry, or text) composited bottom to top through per-layer opacity
// and blend modes into deterministic RGBA output. Layers carry optional
// non-destructive effects (shadows, glows, bevels, strokes, overlays)
// rendered around their content. A History records pixel and structural
// edits for bounded undo/redo, and a Clipboard moves pixel regions
// between layers.
//
// # Quick Start
//
//	import "github.com/easelkit/easel"
//
//	doc := easel.NewDocument(800, 600)
//	bg := easel.NewRasterLayer("Background", 800, 600)
//	bg.FillAll(easel.RGB(1, 1, 1))
//	doc.AddLayer(bg)
//
//	ink := easel.NewVectorLayer("Ink", 800, 600)
//	ink.AddShape(easel.NewRectangleShape(100, 100, 200, 150))
//	doc.AddLayer(ink)
//
//	out := easel.NewCompositor().Composite(doc)
//	out.SavePNG("out.png")
//
// # Architecture
//
// The package is organized into:
//   - Public API: Document, Layer variants, Shape variants, Compositor,
//     Viewport, History, Clipboard, Editor
//   - Internal: raster (scanline rasterization), blend (per-channel
//     blend-mode math)
//   - filter: built-in pixel filters, registered as a FilterBackend
//
// Tools drive the engine through the public operations and bracket their
// edits with History capture calls; the engine never captures history on
// its own.
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Layer offsets are applied at composite time only
//
// # Alpha Convention
//
// All pixel buffers are straight (non-premultiplied) RGBA, 8 bits per
// channel, row-major with no row padding. The same convention applies on
// both sides of every filter call.
package easel

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)

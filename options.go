package easel

// EditorOption configures an Editor during creation.
// Use functional options to customize Editor behavior.
//
// Example:
//
//	// Default: white backdrop, 50 history entries
//	ed := easel.NewEditor(800, 600)
//
//	// Transparency checkerboard and a deeper undo stack
//	ed := easel.NewEditor(800, 600,
//	    easel.WithCheckerboard(true),
//	    easel.WithHistoryCapacity(200),
//	)
type EditorOption func(*editorOptions)

// editorOptions holds optional configuration for Editor creation.
type editorOptions struct {
	historyCapacity int
	background      RGBA
	checkerboard    bool
	backend         FilterBackend
}

// defaultEditorOptions returns the default editor options.
func defaultEditorOptions() editorOptions {
	return editorOptions{
		historyCapacity: DefaultHistoryCapacity,
		background:      Hex("#ffffff"),
	}
}

// WithHistoryCapacity bounds the undo stack to n entries. Older
// entries are evicted silently once the bound is exceeded.
func WithHistoryCapacity(n int) EditorOption {
	return func(o *editorOptions) {
		o.historyCapacity = n
	}
}

// WithBackground sets the backdrop color drawn under the layer stack
// when compositing. The default is opaque white.
func WithBackground(c RGBA) EditorOption {
	return func(o *editorOptions) {
		o.background = c
	}
}

// WithCheckerboard draws the two-color transparency checkerboard
// instead of the background color.
func WithCheckerboard(on bool) EditorOption {
	return func(o *editorOptions) {
		o.checkerboard = on
	}
}

// WithFilterBackend pins the editor to a specific filter backend
// instead of the process-wide registered one. Use this for dependency
// injection of remote or test backends.
//
// Example:
//
//	ed := easel.NewEditor(800, 600, easel.WithFilterBackend(remote))
func WithFilterBackend(b FilterBackend) EditorOption {
	return func(o *editorOptions) {
		o.backend = b
	}
}

// Package filter provides the built-in CPU filter suite and the local
// filter backend.
//
// Filters transform raster layer pixels. Each filter publishes an Info
// with a parameter schema so frontends can build adjustment dialogs
// without knowing individual filters.
//
// # Enabling the built-in backend
//
// Importing this package registers the local backend with the engine:
//
//	import _ "github.com/easelkit/easel/filter"
//
// After that, Editor.ApplyFilter resolves filter ids against the
// registry here:
//
//	ed := easel.NewEditor(800, 600)
//	err := ed.ApplyFilter(ctx, layerID, "gaussian-blur",
//		easel.FilterParams{"radius": 6.0})
//
// # Custom filters
//
// Additional filters register themselves by id, typically from init:
//
//	func init() {
//	    filter.Register(&Vignette{})
//	}
//
// # Discovering filters
//
// Infos returns the schema of every registered filter, sorted for
// stable menu construction:
//
//	for _, info := range filter.Infos() {
//	    fmt.Println(info.Category, info.Name)
//	}
package filter

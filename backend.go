package easel

import (
	"context"
	"errors"
	"sync"
)

// ErrNoFilterBackend indicates that no filter backend is registered.
// Importing the filter package registers the built-in CPU backend:
//
//	import _ "github.com/easelkit/easel/filter"
var ErrNoFilterBackend = errors.New("easel: no filter backend registered")

// ErrUnknownFilter indicates the backend does not provide the requested
// filter id.
var ErrUnknownFilter = errors.New("easel: unknown filter")

// FilterParams carries filter parameters by name. Values are numbers,
// booleans, or strings depending on the parameter kind.
type FilterParams map[string]any

// FilterBackend executes pixel filters on raw buffers.
//
// The buffer contract is the engine's exchange format: straight RGBA,
// 8 bits per channel, row-major, no row padding. The returned buffer must
// have identical dimensions; filters never resize. Backends may run
// remotely; the context carries cancellation for such calls.
//
// Implementations are provided by filter packages. Users opt in via blank
// import:
//
//	import _ "github.com/easelkit/easel/filter" // enables built-in filters
type FilterBackend interface {
	// Name returns the backend name (e.g., "builtin").
	Name() string

	// Has reports whether the backend provides the given filter id.
	// This is a fast check used to reject unknown filters before any
	// pixel work happens.
	Has(filterID string) bool

	// Apply runs the filter over the buffer and returns the result.
	// The input buffer must not be modified.
	Apply(ctx context.Context, filterID string, buf []uint8, width, height int, params FilterParams) ([]uint8, error)
}

var (
	backendMu sync.RWMutex
	backend   FilterBackend
)

// RegisterFilterBackend registers a filter backend.
//
// Only one backend can be registered. Subsequent calls replace the
// previous one.
//
// Typical usage via init in filter packages:
//
//	func init() {
//	    easel.RegisterFilterBackend(newLocalBackend())
//	}
func RegisterFilterBackend(b FilterBackend) error {
	if b == nil {
		return errors.New("easel: filter backend must not be nil")
	}
	backendMu.Lock()
	backend = b
	backendMu.Unlock()
	propagateLogger(b, Logger())
	Logger().Info("filter backend registered", "name", b.Name())
	return nil
}

// Backend returns the currently registered filter backend, or nil if none.
func Backend() FilterBackend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	return b
}

package filter

import (
	"context"
	"image"
	"math"
)

// ParamType describes how a parameter is presented and what value
// type it carries.
type ParamType string

// Parameter kinds.
const (
	// ParamRange is a numeric slider. Values arrive as float64.
	ParamRange ParamType = "range"
	// ParamSelect is a choice between fixed options. Values arrive as
	// strings.
	ParamSelect ParamType = "select"
	// ParamCheckbox is an on/off toggle. Values arrive as bools.
	ParamCheckbox ParamType = "checkbox"
)

// ParamSpec describes one filter parameter for dialog construction
// and validation. Min, Max and Step apply to range parameters,
// Options to select parameters.
type ParamSpec struct {
	ID      string
	Name    string
	Type    ParamType
	Min     float64
	Max     float64
	Step    float64
	Default any
	Options []string
}

// Info identifies a filter and carries its parameter schema.
type Info struct {
	ID       string
	Name     string
	Category string
	Params   []ParamSpec
}

// Params holds the parameter values for one filter application, keyed
// by ParamSpec id. Values commonly arrive from JSON, so the accessors
// tolerate the usual numeric type mismatches. Missing or mistyped
// values fall back to the given default.
type Params map[string]any

// Float returns the named parameter as a float64.
func (p Params) Float(id string, fallback float64) float64 {
	switch v := p[id].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}

// Int returns the named parameter as an int, rounding float values.
func (p Params) Int(id string, fallback int) int {
	switch v := p[id].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(math.Round(v))
	case float32:
		return int(math.Round(float64(v)))
	}
	return fallback
}

// Bool returns the named parameter as a bool.
func (p Params) Bool(id string, fallback bool) bool {
	if v, ok := p[id].(bool); ok {
		return v
	}
	return fallback
}

// Option returns the named parameter as a string.
func (p Params) Option(id, fallback string) string {
	if v, ok := p[id].(string); ok {
		return v
	}
	return fallback
}

// Filter transforms pixels.
//
// Apply must not modify src and must return an image of identical
// dimensions. Implementations are expected to be pure: the same input
// and parameters produce the same output.
type Filter interface {
	// Info returns the filter's identity and parameter schema.
	Info() Info

	// Apply runs the filter over src and returns the result.
	Apply(ctx context.Context, src *image.NRGBA, params Params) (*image.NRGBA, error)
}

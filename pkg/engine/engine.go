// Package engine keeps the current image, filter and intensity and
// re-renders the output whenever one of them changes.
package engine

import (
	"image"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Fepozopo/instafilter/pkg/filter"
	"github.com/Fepozopo/instafilter/pkg/render"
)

// State is the lifecycle position of an Engine.
type State int

const (
	// Empty means no input image is set.
	Empty State = iota
	// Configured means an image is set but no render has succeeded for the
	// current inputs.
	Configured
	// Rendered means Output holds the render of the current inputs.
	Rendered
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Configured:
		return "configured"
	case Rendered:
		return "rendered"
	}
	return "unknown"
}

const (
	DefaultVariant   = filter.SepiaTone
	DefaultIntensity = 0.5
)

// Materializer converts deferred backend output into a bitmap.
// *render.Context implements it.
type Materializer interface {
	Materialize(out *filter.Output, extent image.Rectangle) (*image.NRGBA, bool)
}

var _ Materializer = (*render.Context)(nil)

// Engine owns the filter inputs and the derived output. Every mutator renders
// synchronously before returning. An Engine is not safe for concurrent use.
type Engine struct {
	backend filter.Backend
	mat     Materializer
	logger  zerolog.Logger

	variant   filter.Variant
	intensity float64
	input     image.Image

	params filter.Assignment
	output *image.NRGBA
	state  State
}

// Option configures an Engine.
type Option func(*Engine)

// WithVariant sets the initial filter.
func WithVariant(v filter.Variant) Option {
	return func(e *Engine) {
		if v.Valid() {
			e.variant = v
		}
	}
}

// WithIntensity sets the initial intensity; it is clamped to [0,1].
func WithIntensity(i float64) Option {
	return func(e *Engine) { e.intensity = filter.Clamp(i) }
}

// WithLogger overrides the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an Engine in the Empty state using SepiaTone at 0.5 unless
// overridden.
func New(backend filter.Backend, mat Materializer, opts ...Option) *Engine {
	e := &Engine{
		backend:   backend,
		mat:       mat,
		logger:    log.Logger,
		variant:   DefaultVariant,
		intensity: DefaultIntensity,
		state:     Empty,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.params = filter.MapIntensity(e.intensity, filter.DescriptorFor(e.variant))
	return e
}

// SetImage replaces the input image and re-renders. A nil image returns the
// engine to Empty.
func (e *Engine) SetImage(img image.Image) {
	e.input = img
	if img == nil {
		e.output = nil
		e.state = Empty
		e.logger.Debug().Msg("input image cleared")
		return
	}
	e.logger.Debug().Str("bounds", img.Bounds().String()).Msg("input image set")
	e.reRender()
}

// SelectFilter replaces the current filter. The output is re-rendered when an
// image is present; otherwise only the selection is recorded.
func (e *Engine) SelectFilter(v filter.Variant) {
	// Out-of-catalog variants are a programming error; DescriptorFor panics on them.
	filter.DescriptorFor(v)
	e.variant = v
	e.logger.Debug().Str("filter", v.String()).Msg("filter selected")
	if e.input == nil {
		e.params = filter.MapIntensity(e.intensity, filter.DescriptorFor(v))
		return
	}
	e.reRender()
}

// SetIntensity clamps value to [0,1], records it and re-renders when an image
// is present.
func (e *Engine) SetIntensity(value float64) {
	e.intensity = filter.Clamp(value)
	e.logger.Debug().Float64("intensity", e.intensity).Msg("intensity set")
	if e.input == nil {
		e.params = filter.MapIntensity(e.intensity, filter.DescriptorFor(e.variant))
		return
	}
	e.reRender()
}

// reRender discards the previous output before asking the backend for a new
// one, so a failed render never leaves stale pixels visible.
func (e *Engine) reRender() {
	e.output = nil
	e.state = Configured
	e.params = filter.MapIntensity(e.intensity, filter.DescriptorFor(e.variant))

	logger := e.logger.With().
		Str("filter", e.variant.String()).
		Str("params", e.params.String()).
		Logger()

	out, ok := e.backend.Apply(e.variant, e.input, e.params)
	if !ok {
		logger.Debug().Msg("backend produced no output")
		return
	}
	bmp, ok := e.mat.Materialize(out, out.Extent)
	if !ok {
		logger.Debug().Msg("output could not be materialized")
		return
	}
	e.output = bmp
	e.state = Rendered
	logger.Debug().Str("extent", bmp.Bounds().String()).Msg("render complete")
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Variant returns the selected filter.
func (e *Engine) Variant() filter.Variant { return e.variant }

// Intensity returns the clamped intensity in effect.
func (e *Engine) Intensity() float64 { return e.intensity }

// Params returns the assignment derived for the current filter and intensity.
func (e *Engine) Params() filter.Assignment { return e.params }

// Image returns the current input image, or nil.
func (e *Engine) Image() image.Image { return e.input }

// Output returns the last successful render for the current inputs. The
// bitmap is shared read-only: callers must not modify it.
func (e *Engine) Output() (*image.NRGBA, bool) {
	if e.output == nil {
		return nil, false
	}
	return e.output, true
}

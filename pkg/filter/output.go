package filter

import "image"

// Output is a backend result that has not been rendered yet.
type Output struct {
	// Extent is the natural bounding region of the filtered image.
	Extent image.Rectangle
	render func() image.Image
}

// NewOutput wraps a deferred render function.
func NewOutput(extent image.Rectangle, render func() image.Image) *Output {
	return &Output{Extent: extent, render: render}
}

// Render runs the deferred filter. It returns nil when the backend could not
// produce pixels.
func (o *Output) Render() image.Image {
	if o == nil || o.render == nil {
		return nil
	}
	return o.render()
}

// Backend applies a catalog filter to a source image.
// ok is false when the filter yields no output for the given input.
type Backend interface {
	Apply(v Variant, src image.Image, params Assignment) (out *Output, ok bool)
}

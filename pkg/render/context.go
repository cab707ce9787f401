// Package render turns deferred filter outputs into concrete bitmaps.
package render

import (
	"image"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

// Context is the shared rendering resource. Create one at start-up, pass it
// to everything that materializes images and Close it on exit. A Context
// holds no per-call state and may be used from several goroutines.
type Context struct {
	scaler draw.Scaler
	logger zerolog.Logger
	closed atomic.Bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger overrides the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithScaler sets the interpolator used by Fit. The default is Catmull-Rom.
func WithScaler(s draw.Scaler) Option {
	return func(c *Context) { c.scaler = s }
}

// NewContext creates a rendering context.
func NewContext(opts ...Option) *Context {
	c := &Context{
		scaler: draw.CatmullRom,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.Debug().Msg("rendering context created")
	return c
}

// Close releases the context. Materialize reports no output afterwards.
func (c *Context) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		c.logger.Debug().Msg("rendering context closed")
	}
	return nil
}

// Materialize renders out and copies the region extent into a new bitmap
// whose bounds start at (0,0). ok is false, with no error, when out is nil,
// extent is empty, the render produced nothing, the rendered image does not
// cover extent, or the context has been closed.
func (c *Context) Materialize(out *filter.Output, extent image.Rectangle) (bmp *image.NRGBA, ok bool) {
	if c.closed.Load() {
		c.logger.Warn().Msg("materialize on closed rendering context")
		return nil, false
	}
	if out == nil || extent.Empty() {
		return nil, false
	}
	img := out.Render()
	if img == nil {
		c.logger.Debug().Msg("filter rendered no image")
		return nil, false
	}
	if !extent.In(img.Bounds()) {
		c.logger.Debug().
			Str("extent", extent.String()).
			Str("bounds", img.Bounds().String()).
			Msg("rendered image does not cover extent")
		return nil, false
	}
	dst := image.NewNRGBA(image.Rect(0, 0, extent.Dx(), extent.Dy()))
	draw.Draw(dst, dst.Bounds(), img, extent.Min, draw.Src)
	return dst, true
}

// Fit returns a copy of img scaled down to fit maxW x maxH while keeping the
// aspect ratio. Images that already fit are copied unscaled.
func (c *Context) Fit(img image.Image, maxW, maxH int) *image.NRGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	tw, th := w, h
	if maxW > 0 && tw > maxW {
		th = th * maxW / tw
		tw = maxW
	}
	if maxH > 0 && th > maxH {
		tw = tw * maxH / th
		th = maxH
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	if tw == w && th == h {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	c.scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

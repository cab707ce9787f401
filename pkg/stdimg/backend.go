// Package stdimg is the pure-Go filter backend. It implements every variant
// of the filter catalog with standard-library image types.
package stdimg

import (
	"image"

	"github.com/rs/zerolog/log"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

// kernel renders one variant from an origin-based copy of the source.
type kernel func(src *image.NRGBA, p filter.Assignment) *image.NRGBA

// param returns the assigned value of p, or 0 when the variant does not declare it.
func param(a filter.Assignment, p filter.Param) float64 {
	v, _ := a.Get(p)
	return v
}

// kernels is the authoritative table of variants this backend can render.
var kernels = map[filter.Variant]kernel{
	filter.Crystallize: func(src *image.NRGBA, p filter.Assignment) *image.NRGBA {
		return Crystallize(src, param(p, filter.Radius))
	},
	filter.Edges: func(src *image.NRGBA, p filter.Assignment) *image.NRGBA {
		return Edges(src, param(p, filter.Intensity))
	},
	filter.GaussianBlur: func(src *image.NRGBA, p filter.Assignment) *image.NRGBA {
		return GaussianBlur(src, param(p, filter.Radius))
	},
	filter.Pixellate: func(src *image.NRGBA, p filter.Assignment) *image.NRGBA {
		return Pixellate(src, param(p, filter.Scale))
	},
	filter.SepiaTone: func(src *image.NRGBA, p filter.Assignment) *image.NRGBA {
		return SepiaTone(src, param(p, filter.Intensity))
	},
	filter.UnsharpMask: func(src *image.NRGBA, p filter.Assignment) *image.NRGBA {
		return UnsharpMask(src, param(p, filter.Radius), param(p, filter.Intensity))
	},
	filter.Vignette: func(src *image.NRGBA, p filter.Assignment) *image.NRGBA {
		return Vignette(src, param(p, filter.Intensity), param(p, filter.Radius))
	},
}

// Backend renders filters in-process.
type Backend struct{}

// NewBackend returns a ready-to-use pure-Go backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Apply returns a deferred render of v over src. It reports no output for a
// nil or empty source and for variants without a kernel.
func (b *Backend) Apply(v filter.Variant, src image.Image, params filter.Assignment) (*filter.Output, bool) {
	if src == nil || src.Bounds().Empty() {
		log.Debug().Str("filter", v.String()).Msg("no source pixels to filter")
		return nil, false
	}
	k, ok := kernels[v]
	if !ok {
		log.Debug().Str("filter", v.String()).Msg("filter not supported by stdimg backend")
		return nil, false
	}
	bounds := src.Bounds()
	extent := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	return filter.NewOutput(extent, func() image.Image {
		log.Debug().Str("filter", v.String()).Str("params", params.String()).Msg("rendering filter")
		return k(ToNRGBA(src), params)
	}), true
}

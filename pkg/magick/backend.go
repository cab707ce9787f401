//go:build magick

// Package magick renders the filter catalog through ImageMagick's MagickWand
// API. Build with -tags magick; requires the ImageMagick 7 development
// libraries.
package magick

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/gographics/imagick.v3/imagick"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

// op applies one variant to a wand holding the source image.
type op func(mw *imagick.MagickWand, p filter.Assignment) error

func param(a filter.Assignment, p filter.Param) float64 {
	v, _ := a.Get(p)
	return v
}

// ops has no entry for Crystallize: ImageMagick has no equivalent and the
// variant reports no output.
var ops = map[filter.Variant]op{
	filter.Edges: func(mw *imagick.MagickWand, p filter.Assignment) error {
		return mw.EdgeImage(param(p, filter.Intensity) * 4)
	},
	filter.GaussianBlur: func(mw *imagick.MagickWand, p filter.Assignment) error {
		r := param(p, filter.Radius)
		return mw.GaussianBlurImage(r, r/3)
	},
	filter.Pixellate: func(mw *imagick.MagickWand, p filter.Assignment) error {
		block := uint(param(p, filter.Scale) + 0.5)
		if block <= 1 {
			return nil
		}
		w, h := mw.GetImageWidth(), mw.GetImageHeight()
		if err := mw.ScaleImage((w+block-1)/block, (h+block-1)/block); err != nil {
			return err
		}
		return mw.SampleImage(w, h)
	},
	filter.SepiaTone: func(mw *imagick.MagickWand, p filter.Assignment) error {
		_, quantum := imagick.GetQuantumRange()
		return mw.SepiaToneImage(param(p, filter.Intensity) * float64(quantum))
	},
	filter.UnsharpMask: func(mw *imagick.MagickWand, p filter.Assignment) error {
		r := param(p, filter.Radius)
		return mw.UnsharpMaskImage(r, r/3, param(p, filter.Intensity), 0)
	},
	filter.Vignette: func(mw *imagick.MagickWand, p filter.Assignment) error {
		r := param(p, filter.Radius)
		w, h := mw.GetImageWidth(), mw.GetImageHeight()
		return mw.VignetteImage(r, r/2*param(p, filter.Intensity), int(w)/8, int(h)/8)
	},
}

var (
	openOnce  sync.Once
	closeOnce sync.Once
)

// Backend renders through MagickWand.
type Backend struct{}

// Open initialises the MagickWand runtime. Call Close before the process exits.
func Open() *Backend {
	openOnce.Do(func() {
		imagick.Initialize()
		log.Debug().Msg("magickwand initialised")
	})
	return &Backend{}
}

// Close terminates the MagickWand runtime.
func (b *Backend) Close() error {
	closeOnce.Do(func() {
		imagick.Terminate()
		log.Debug().Msg("magickwand terminated")
	})
	return nil
}

// Apply returns a deferred render of v over src.
func (b *Backend) Apply(v filter.Variant, src image.Image, params filter.Assignment) (*filter.Output, bool) {
	if src == nil || src.Bounds().Empty() {
		return nil, false
	}
	fn, ok := ops[v]
	if !ok {
		log.Debug().Str("filter", v.String()).Msg("filter not supported by magick backend")
		return nil, false
	}
	bounds := src.Bounds()
	extent := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	return filter.NewOutput(extent, func() image.Image {
		img, err := run(fn, src, params)
		if err != nil {
			log.Error().Err(err).Str("filter", v.String()).Msg("magick render failed")
			return nil
		}
		return img
	}), true
}

func run(fn op, src image.Image, params filter.Assignment) (image.Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("error encoding source %w", err)
	}

	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	if err := mw.ReadImageBlob(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("error loading source %w", err)
	}
	if err := fn(mw, params); err != nil {
		return nil, fmt.Errorf("error applying filter %w", err)
	}
	if err := mw.SetImageFormat("PNG"); err != nil {
		return nil, fmt.Errorf("error setting format %w", err)
	}
	out, err := png.Decode(bytes.NewReader(mw.GetImageBlob()))
	if err != nil {
		return nil, fmt.Errorf("error decoding result %w", err)
	}
	return out, nil
}

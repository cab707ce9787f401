package stdimg

import (
	"image"
	"math"
)

// gaussianKernel1D returns normalized weights covering three sigmas on each
// side and the half-width of the window.
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	radius := int(math.Ceil(3 * sigma))
	kern := make([]float64, radius*2+1)
	var total float64
	denom := 2 * sigma * sigma
	for i := range kern {
		d := float64(i - radius)
		kern[i] = math.Exp(-d * d / denom)
		total += kern[i]
	}
	for i := range kern {
		kern[i] /= total
	}
	return kern, radius
}

// GaussianBlur blurs src with a kernel whose half-width is radius pixels.
// radius<=0 returns a copy.
func GaussianBlur(src *image.NRGBA, radius float64) *image.NRGBA {
	return SeparableGaussianBlur(src, radius/3.0)
}

// SeparableGaussianBlur applies a separable gaussian blur to src and returns a new *image.NRGBA
// with bounds at the origin. Edges are clamped.
func SeparableGaussianBlur(src *image.NRGBA, sigma float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if sigma <= 0 {
		return ToNRGBA(src)
	}
	kern, radius := gaussianKernel1D(sigma)
	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	// horizontal pass
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var acc [4]float64
				for k := -radius; k <= radius; k++ {
					i := src.PixOffset(b.Min.X+clampInt(x+k, 0, w-1), b.Min.Y+y)
					wgt := kern[k+radius]
					for c := 0; c < 4; c++ {
						acc[c] += float64(src.Pix[i+c]) * wgt
					}
				}
				o := tmp.PixOffset(x, y)
				for c := 0; c < 4; c++ {
					tmp.Pix[o+c] = uint8(clampFloatToUint8(math.Round(acc[c])))
				}
			}
		}
	})

	// vertical pass
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var acc [4]float64
				for k := -radius; k <= radius; k++ {
					i := tmp.PixOffset(x, clampInt(y+k, 0, h-1))
					wgt := kern[k+radius]
					for c := 0; c < 4; c++ {
						acc[c] += float64(tmp.Pix[i+c]) * wgt
					}
				}
				o := dst.PixOffset(x, y)
				for c := 0; c < 4; c++ {
					dst.Pix[o+c] = uint8(clampFloatToUint8(math.Round(acc[c])))
				}
			}
		}
	})
	return dst
}

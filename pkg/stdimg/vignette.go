package stdimg

import (
	"image"
	"math"
)

// Vignette darkens src radially around its centre.
// radius is the distance (in pixels) at which the darkening reaches full
// strength; radius<=0 uses half the image diagonal. intensity in [0,1] is
// the darkening applied at and beyond radius.
//
// The mask is a normalized gaussian falloff:
// mask(d) = (1 - exp(-0.5*d^2/sigma^2)) / (1 - exp(-0.5*radius^2/sigma^2)), sigma = radius/2,
// so mask(0)=0 and mask(radius)=1.
func Vignette(src *image.NRGBA, intensity, radius float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	strength := clamp01(intensity)
	base := ToNRGBA(src)
	out := CloneNRGBA(base)
	if strength == 0 {
		return out
	}

	w, h := base.Rect.Dx(), base.Rect.Dy()
	if radius <= 0 {
		radius = math.Hypot(float64(w), float64(h)) / 2.0
	}
	sigma := radius / 2.0
	norm := 1 - math.Exp(-0.5*(radius*radius)/(sigma*sigma))
	cx := float64(w) / 2.0
	cy := float64(h) / 2.0

	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
				mask := 1 - math.Exp(-0.5*(d*d)/(sigma*sigma))
				if norm > 0 {
					mask /= norm
				}
				factor := 1.0 - clamp01(mask)*strength

				i := base.PixOffset(x, y)
				out.Pix[i+0] = uint8(clampFloatToUint8(float64(base.Pix[i+0]) * factor))
				out.Pix[i+1] = uint8(clampFloatToUint8(float64(base.Pix[i+1]) * factor))
				out.Pix[i+2] = uint8(clampFloatToUint8(float64(base.Pix[i+2]) * factor))
			}
		}
	})
	return out
}

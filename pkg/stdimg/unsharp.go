package stdimg

import (
	"image"
)

// UnsharpMask sharpens src by adding back amount times the difference between
// src and a gaussian blur of the given radius. Alpha is left untouched.
func UnsharpMask(src *image.NRGBA, radius, amount float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	base := ToNRGBA(src)
	if radius <= 0 || amount == 0 {
		return base
	}
	blurred := GaussianBlur(base, radius)
	out := CloneNRGBA(base)
	w, h := base.Rect.Dx(), base.Rect.Dy()
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := base.PixOffset(x, y)
				for c := 0; c < 3; c++ {
					s := float64(base.Pix[i+c])
					mask := s - float64(blurred.Pix[i+c])
					out.Pix[i+c] = uint8(clampFloatToUint8(s + amount*mask))
				}
			}
		}
	})
	return out
}

package stdimg

import (
	"image"
)

// SepiaTone maps src through the classic sepia matrix and blends the result
// with the source. intensity is in 0..1 where 0 returns a copy of src and
// 1 is full sepia. Fully transparent pixels are copied unchanged.
func SepiaTone(src *image.NRGBA, intensity float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	p := clamp01(intensity)
	base := ToNRGBA(src)
	out := CloneNRGBA(base)
	if p == 0 {
		return out
	}

	w, h := base.Rect.Dx(), base.Rect.Dy()
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := base.PixOffset(x, y)
				if base.Pix[i+3] == 0 {
					continue
				}
				r := float64(base.Pix[i+0])
				g := float64(base.Pix[i+1])
				bl := float64(base.Pix[i+2])

				sr := clampFloatToUint8(0.393*r + 0.769*g + 0.189*bl)
				sg := clampFloatToUint8(0.349*r + 0.686*g + 0.168*bl)
				sb := clampFloatToUint8(0.272*r + 0.534*g + 0.131*bl)

				out.Pix[i+0] = uint8(clampFloatToUint8(r*(1.0-p) + sr*p))
				out.Pix[i+1] = uint8(clampFloatToUint8(g*(1.0-p) + sg*p))
				out.Pix[i+2] = uint8(clampFloatToUint8(bl*(1.0-p) + sb*p))
			}
		}
	})
	return out
}

package stdimg

import (
	"image"
	"math"
)

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// Edges runs a Sobel detector over the luminance of src and returns an opaque
// grayscale image of gradient magnitude multiplied by intensity.
// Unlike a normalized edge map, flat images stay black and intensity 0 yields
// an all-black image.
func Edges(src *image.NRGBA, intensity float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	gain := math.Max(0, intensity) * 255.0

	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = luminance(samplePixelClamped(src, b.Min.X+x, b.Min.Y+y))
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				sumX, sumY := 0.0, 0.0
				for ky := -1; ky <= 1; ky++ {
					iy := clampInt(y+ky, 0, h-1)
					for kx := -1; kx <= 1; kx++ {
						ix := clampInt(x+kx, 0, w-1)
						l := lum[iy*w+ix]
						sumX += l * sobelX[ky+1][kx+1]
						sumY += l * sobelY[ky+1][kx+1]
					}
				}
				v := uint8(clampFloatToUint8(math.Sqrt(sumX*sumX+sumY*sumY) * gain))
				i := out.PixOffset(x, y)
				out.Pix[i+0] = v
				out.Pix[i+1] = v
				out.Pix[i+2] = v
				out.Pix[i+3] = 255
			}
		}
	})
	return out
}

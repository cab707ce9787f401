package stdimg

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Pixellate replaces square blocks of scale pixels with their average colour.
// scale<=1 returns a copy. Output keeps the dimensions of src.
func Pixellate(src *image.NRGBA, scale float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	block := int(math.Round(scale))
	if block <= 1 {
		return ToNRGBA(src)
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	small := imaging.Resize(src, ceilDiv(w, block), ceilDiv(h, block), imaging.Box)
	return imaging.Resize(small, w, h, imaging.NearestNeighbor)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

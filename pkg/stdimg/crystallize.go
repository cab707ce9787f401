package stdimg

import (
	"image"
	"math"
)

// Crystallize partitions src into polygonal cells of roughly radius pixels.
// Every cell has one seed jittered inside a grid square; a pixel takes the
// colour of the source pixel under its nearest seed. radius<1 returns a copy.
// Seeds are derived from a hash of the grid coordinates, so the result is
// deterministic.
func Crystallize(src *image.NRGBA, radius float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	cell := int(math.Round(radius))
	if cell < 1 {
		return ToNRGBA(src)
	}
	base := ToNRGBA(src)
	w, h := base.Rect.Dx(), base.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			gy := y / cell
			for x := 0; x < w; x++ {
				gx := x / cell
				best := math.MaxInt
				bx, by := x, y
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						sx, sy := crystalSeed(gx+dx, gy+dy, cell)
						ddx, ddy := sx-x, sy-y
						if d := ddx*ddx + ddy*ddy; d < best {
							best, bx, by = d, sx, sy
						}
					}
				}
				c := samplePixelClamped(base, bx, by)
				i := out.PixOffset(x, y)
				out.Pix[i+0] = c.R
				out.Pix[i+1] = c.G
				out.Pix[i+2] = c.B
				out.Pix[i+3] = c.A
			}
		}
	})
	return out
}

// crystalSeed returns the seed position of grid square (gx, gy).
func crystalSeed(gx, gy, cell int) (int, int) {
	jx := int(cellHash(gx, gy, 1) % uint32(cell))
	jy := int(cellHash(gx, gy, 2) % uint32(cell))
	return gx*cell + jx, gy*cell + jy
}

func cellHash(gx, gy, salt int) uint32 {
	h := uint32(gx)*73856093 ^ uint32(gy)*19349663 ^ uint32(salt)*83492791
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h
}

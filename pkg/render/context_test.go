package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

func solid(r image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestMaterialize(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	red := color.NRGBA{R: 255, A: 255}
	src := solid(image.Rect(0, 0, 8, 6), red)
	src.SetNRGBA(5, 4, color.NRGBA{B: 255, A: 255})
	out := filter.NewOutput(src.Bounds(), func() image.Image { return src })

	tests := []struct {
		name   string
		out    *filter.Output
		extent image.Rectangle
		wantOK bool
		size   image.Point
	}{
		{name: "full extent", out: out, extent: out.Extent, wantOK: true, size: image.Pt(8, 6)},
		{name: "sub extent", out: out, extent: image.Rect(4, 3, 8, 6), wantOK: true, size: image.Pt(4, 3)},
		{name: "nil output", out: nil, extent: image.Rect(0, 0, 8, 6)},
		{name: "empty extent", out: out, extent: image.Rectangle{}},
		{name: "extent beyond render", out: out, extent: image.Rect(0, 0, 9, 6)},
		{name: "render yields nothing", out: filter.NewOutput(image.Rect(0, 0, 2, 2), func() image.Image { return nil }), extent: image.Rect(0, 0, 2, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bmp, ok := ctx.Materialize(tc.out, tc.extent)
			if !tc.wantOK {
				assert.False(t, ok)
				assert.Nil(t, bmp)
				return
			}
			require.True(t, ok)
			assert.Equal(t, image.Rectangle{Max: tc.size}, bmp.Bounds())
		})
	}
}

func TestMaterializeTranslatesToOrigin(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := solid(image.Rect(10, 10, 14, 14), color.NRGBA{G: 255, A: 255})
	src.SetNRGBA(10, 10, color.NRGBA{R: 255, A: 255})
	out := filter.NewOutput(src.Bounds(), func() image.Image { return src })

	bmp, ok := ctx.Materialize(out, out.Extent)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 4, 4), bmp.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, bmp.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, bmp.NRGBAAt(3, 3))
}

func TestMaterializeAfterClose(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.Close())
	require.NoError(t, ctx.Close())

	src := solid(image.Rect(0, 0, 2, 2), color.NRGBA{A: 255})
	_, ok := ctx.Materialize(filter.NewOutput(src.Bounds(), func() image.Image { return src }), src.Bounds())
	assert.False(t, ok)
}

func TestMaterializedBitmapIsIndependent(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := solid(image.Rect(0, 0, 2, 2), color.NRGBA{R: 10, A: 255})
	out := filter.NewOutput(src.Bounds(), func() image.Image { return src })
	bmp, ok := ctx.Materialize(out, out.Extent)
	require.True(t, ok)

	src.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 255})
	assert.Equal(t, uint8(10), bmp.NRGBAAt(0, 0).R)
}

func TestFit(t *testing.T) {
	ctx := NewContext()
	defer ctx.Close()

	src := solid(image.Rect(0, 0, 400, 200), color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	small := ctx.Fit(src, 100, 100)
	assert.Equal(t, image.Rect(0, 0, 100, 50), small.Bounds())
	mid := small.NRGBAAt(50, 25)
	assert.InDelta(t, 100, int(mid.R), 1)
	assert.Equal(t, uint8(255), mid.A)

	same := ctx.Fit(src, 1000, 1000)
	assert.Equal(t, image.Rect(0, 0, 400, 200), same.Bounds())

	tall := ctx.Fit(solid(image.Rect(0, 0, 10, 100), color.NRGBA{A: 255}), 50, 20)
	assert.Equal(t, image.Rect(0, 0, 2, 20), tall.Bounds())

	assert.Nil(t, ctx.Fit(nil, 10, 10))
}

package stdimg

import (
	"image"
	"testing"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

func TestBackendCoversCatalog(t *testing.T) {
	b := NewBackend()
	src := makeSplitNRGBA(24, 16)
	for _, v := range filter.Variants() {
		params := filter.MapIntensity(0.5, filter.DescriptorFor(v))
		out, ok := b.Apply(v, src, params)
		if !ok {
			t.Fatalf("%s: expected output", v)
		}
		if out.Extent != image.Rect(0, 0, 24, 16) {
			t.Fatalf("%s: unexpected extent %v", v, out.Extent)
		}
		img := out.Render()
		if img == nil {
			t.Fatalf("%s: render returned nil", v)
		}
		if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 16 {
			t.Fatalf("%s: rendered size %v", v, img.Bounds())
		}
	}
}

func TestBackendNoOutput(t *testing.T) {
	b := NewBackend()
	if _, ok := b.Apply(filter.SepiaTone, nil, filter.Assignment{}); ok {
		t.Fatalf("nil source should yield no output")
	}
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 10))
	if _, ok := b.Apply(filter.GaussianBlur, empty, filter.Assignment{filter.Radius: 4}); ok {
		t.Fatalf("empty source should yield no output")
	}
	if _, ok := b.Apply(filter.Variant(99), makeSplitNRGBA(2, 2), filter.Assignment{}); ok {
		t.Fatalf("unknown variant should yield no output")
	}
}

func TestBackendIsLazyAndDoesNotMutateSource(t *testing.T) {
	b := NewBackend()
	src := makeSolidNRGBA(4, 4, rgba(120, 200, 80, 255))
	before := CloneNRGBA(src)
	out, ok := b.Apply(filter.SepiaTone, src, filter.Assignment{filter.Intensity: 1})
	if !ok {
		t.Fatalf("expected output")
	}
	if !samePixels(before, src) {
		t.Fatalf("Apply must not touch the source")
	}
	rendered := out.Render().(*image.NRGBA)
	if samePixels(before, rendered) {
		t.Fatalf("sepia at full intensity should change the pixels")
	}
	if !samePixels(before, src) {
		t.Fatalf("Render must not touch the source")
	}
}

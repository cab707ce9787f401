package filter

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantIdentifiers(t *testing.T) {
	want := []string{"crystallize", "edges", "gaussianBlur", "pixellate", "sepiaTone", "unsharpMask", "vignette"}
	got := make([]string, 0, len(want))
	for _, v := range Variants() {
		got = append(got, v.String())
	}
	assert.Equal(t, want, got)
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "gaussianBlur", want: GaussianBlur},
		{in: "GAUSSIANBLUR", want: GaussianBlur},
		{in: " Sepia Tone ", want: SepiaTone},
		{in: "unsharp mask", want: UnsharpMask},
		{in: "posterize", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			v, err := ParseVariant(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownVariant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestDescriptorCatalog(t *testing.T) {
	tests := map[Variant][]Param{
		Crystallize:  {Radius},
		Edges:        {Intensity},
		GaussianBlur: {Radius},
		Pixellate:    {Scale},
		SepiaTone:    {Intensity},
		UnsharpMask:  {Intensity, Radius},
		Vignette:     {Intensity, Radius},
	}
	require.Len(t, tests, len(Variants()))

	for v, want := range tests {
		assert.Equal(t, want, DescriptorFor(v).Params(), v.String())
	}
}

func TestDescriptorForInvalidPanics(t *testing.T) {
	assert.Panics(t, func() { DescriptorFor(Variant(42)) })
	assert.Panics(t, func() { DescriptorFor(Variant(-1)) })
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3))
	assert.Equal(t, 1.0, Clamp(7))
	assert.Equal(t, 0.25, Clamp(0.25))
	assert.Equal(t, 0.0, Clamp(math.NaN()))
	assert.Equal(t, 1.0, Clamp(math.Inf(1)))
}

func TestMapIntensityEmitsExactlyDeclaredParams(t *testing.T) {
	for _, v := range Variants() {
		d := DescriptorFor(v)
		for _, i := range []float64{0, 0.1, 0.3, 0.5, 0.77, 1} {
			a := MapIntensity(i, d)
			require.Len(t, a, d.Len(), "%s @ %v", v, i)
			for _, p := range d.Params() {
				got, ok := a.Get(p)
				require.True(t, ok)
				switch p {
				case Intensity:
					assert.InDelta(t, i, got, 1e-9)
				case Radius:
					assert.InDelta(t, i*200, got, 1e-9)
				case Scale:
					assert.InDelta(t, i*10, got, 1e-9)
				}
			}
		}
	}
}

func TestMapIntensityScenarios(t *testing.T) {
	blur := MapIntensity(0.5, DescriptorFor(GaussianBlur))
	assert.Equal(t, Assignment{Radius: 100}, blur)

	pix := MapIntensity(1.0, DescriptorFor(Pixellate))
	assert.Equal(t, Assignment{Scale: 10}, pix)
}

func TestMapIntensityClampsInput(t *testing.T) {
	a := MapIntensity(4, DescriptorFor(Vignette))
	assert.Equal(t, Assignment{Intensity: 1, Radius: 200}, a)

	a = MapIntensity(-1, DescriptorFor(Vignette))
	assert.Equal(t, Assignment{Intensity: 0, Radius: 0}, a)
}

func TestMapIntensityEmptyDescriptor(t *testing.T) {
	a := MapIntensity(0.8, Descriptor{})
	assert.NotNil(t, a)
	assert.Empty(t, a)
	assert.Equal(t, "", a.String())
}

func TestAssignmentString(t *testing.T) {
	a := MapIntensity(0.5, DescriptorFor(UnsharpMask))
	assert.Equal(t, "intensity=0.5 radius=100", a.String())
}

func TestOutputRenderNil(t *testing.T) {
	var o *Output
	assert.Nil(t, o.Render())
	assert.Nil(t, NewOutput(image.Rectangle{}, nil).Render())
}

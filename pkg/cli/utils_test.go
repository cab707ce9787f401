package cli

import (
	"image"
	"testing"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

func TestParseIntensity(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0.7", 0.7, false},
		{" 1 ", 1, false},
		{"70%", 0.7, false},
		{"150 %", 1.5, false},
		{"-0.2", -0.2, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIntensity(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseIntensity(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseIntensity(%q) error: %v", tt.in, err)
		}
		if d := got - tt.want; d > 1e-9 || d < -1e-9 {
			t.Fatalf("parseIntensity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatchVariant(t *testing.T) {
	variants := filter.Variants()
	tests := []struct {
		in      string
		want    filter.Variant
		wantErr bool
	}{
		{"1", filter.Crystallize, false},
		{"7", filter.Vignette, false},
		{"unsharpMask", filter.UnsharpMask, false},
		{"Sepia Tone", filter.SepiaTone, false},
		{"pix", filter.Pixellate, false},
		{"GAUSS", filter.GaussianBlur, false},
		{"0", 0, true},
		{"8", 0, true},
		{"posterize", 0, true},
	}
	for _, tt := range tests {
		got, err := matchVariant(tt.in, variants)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("matchVariant(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("matchVariant(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestMatchVariantAmbiguous(t *testing.T) {
	_, err := matchVariant("s", []filter.Variant{filter.SepiaTone, filter.SepiaTone})
	if err == nil {
		t.Fatalf("expected ambiguity error")
	}
}

func TestDescribeImage(t *testing.T) {
	if got := describeImage(nil); got != "none" {
		t.Fatalf("describeImage(nil) = %q", got)
	}
	if got := describeImage(image.NewNRGBA(image.Rect(2, 3, 12, 8))); got != "Width: 10, Height: 5" {
		t.Fatalf("describeImage = %q", got)
	}
}

// Package filter holds the filter catalog: the closed set of variants, the
// parameters each variant accepts and the mapping from the single intensity
// control to those parameters.
package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Variant identifies one member of the fixed filter catalog.
type Variant int

const (
	Crystallize Variant = iota
	Edges
	GaussianBlur
	Pixellate
	SepiaTone
	UnsharpMask
	Vignette

	numVariants
)

// ErrUnknownVariant is returned by ParseVariant for names outside the catalog.
var ErrUnknownVariant = errors.New("unknown filter")

var variantNames = [numVariants]struct {
	id    string
	title string
}{
	Crystallize:  {"crystallize", "Crystallize"},
	Edges:        {"edges", "Edges"},
	GaussianBlur: {"gaussianBlur", "Gaussian Blur"},
	Pixellate:    {"pixellate", "Pixellate"},
	SepiaTone:    {"sepiaTone", "Sepia Tone"},
	UnsharpMask:  {"unsharpMask", "Unsharp Mask"},
	Vignette:     {"vignette", "Vignette"},
}

// Variants returns the catalog in menu order.
func Variants() []Variant {
	out := make([]Variant, 0, numVariants)
	for v := Variant(0); v < numVariants; v++ {
		out = append(out, v)
	}
	return out
}

// Valid reports whether v is a member of the catalog.
func (v Variant) Valid() bool {
	return v >= 0 && v < numVariants
}

// String returns the backend identifier, e.g. "gaussianBlur".
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v].id
}

// Title returns the human label shown in menus.
func (v Variant) Title() string {
	if !v.Valid() {
		return v.String()
	}
	return variantNames[v].title
}

// ParseVariant resolves an identifier ("sepiaTone") or a title ("Sepia Tone").
// Matching ignores case and surrounding whitespace.
func ParseVariant(s string) (Variant, error) {
	name := strings.TrimSpace(s)
	for v := Variant(0); v < numVariants; v++ {
		n := variantNames[v]
		if strings.EqualFold(name, n.id) || strings.EqualFold(name, n.title) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

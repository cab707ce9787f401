package filter

import "fmt"

// Param names one tunable input a filter may accept.
type Param int

const (
	Intensity Param = iota
	Radius
	Scale

	numParams
)

var paramNames = [numParams]string{
	Intensity: "intensity",
	Radius:    "radius",
	Scale:     "scale",
}

func (p Param) String() string {
	if p < 0 || p >= numParams {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return paramNames[p]
}

// Descriptor is the set of parameters a variant declares.
// The zero value declares nothing.
type Descriptor struct {
	set uint8
}

func describe(params ...Param) Descriptor {
	var d Descriptor
	for _, p := range params {
		d.set |= 1 << uint(p)
	}
	return d
}

// catalog is fixed at construction and never written afterwards.
var catalog = [numVariants]Descriptor{
	Crystallize:  describe(Radius),
	Edges:        describe(Intensity),
	GaussianBlur: describe(Radius),
	Pixellate:    describe(Scale),
	SepiaTone:    describe(Intensity),
	UnsharpMask:  describe(Intensity, Radius),
	Vignette:     describe(Intensity, Radius),
}

// DescriptorFor returns the parameter set of v.
// It panics if v is not a catalog member.
func DescriptorFor(v Variant) Descriptor {
	if !v.Valid() {
		panic(fmt.Sprintf("filter: descriptor requested for %v", v))
	}
	return catalog[v]
}

// Has reports whether p is declared.
func (d Descriptor) Has(p Param) bool {
	if p < 0 || p >= numParams {
		return false
	}
	return d.set&(1<<uint(p)) != 0
}

// Params lists the declared parameters in Param order.
func (d Descriptor) Params() []Param {
	var out []Param
	for p := Param(0); p < numParams; p++ {
		if d.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of declared parameters.
func (d Descriptor) Len() int {
	return len(d.Params())
}

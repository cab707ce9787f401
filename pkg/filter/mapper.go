package filter

import (
	"math"
	"strconv"
	"strings"
)

// Assignment holds concrete parameter values derived from one intensity.
// It is always rebuilt in full; callers must not mutate it.
type Assignment map[Param]float64

// Get returns the value for p and whether p was assigned.
func (a Assignment) Get(p Param) (float64, bool) {
	v, ok := a[p]
	return v, ok
}

// String renders the assignment as "intensity=0.5 radius=100" in Param order.
func (a Assignment) String() string {
	var parts []string
	for p := Param(0); p < numParams; p++ {
		if v, ok := a[p]; ok {
			parts = append(parts, p.String()+"="+strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return strings.Join(parts, " ")
}

// formulas derive each parameter from the normalized intensity.
var formulas = [numParams]func(i float64) float64{
	Intensity: func(i float64) float64 { return i },
	Radius:    func(i float64) float64 { return i * 200 },
	Scale:     func(i float64) float64 { return i * 10 },
}

// Clamp limits v to [0,1]. NaN becomes 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MapIntensity derives a value for every parameter d declares and nothing
// else. A descriptor that declares no parameters yields an empty assignment.
func MapIntensity(intensity float64, d Descriptor) Assignment {
	i := Clamp(intensity)
	out := make(Assignment, d.Len())
	for _, p := range d.Params() {
		out[p] = formulas[p](i)
	}
	return out
}

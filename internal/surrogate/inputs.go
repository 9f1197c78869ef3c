package surrogate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Parameter names accepted in a query dictionary, in training-column
// order (the time column precedes them).
var paramOrder = []string{
	"mass ratio",
	"spin 1x", "spin 1y", "spin 1z",
	"spin 2x", "spin 2y", "spin 2z",
}

// Params locates a query in parameter space: named physical parameters
// mapped to their values.
type Params = map[string]float64

// evalMatrix assembles the rescaled GP query matrix for a set of times
// at a fixed parameter point. Each row is
//
//	[t*TimeFactor, q*ParamFactor, s1x*ParamFactor, ..., s2z*ParamFactor]
//
// Missing or unknown parameter names are an error.
func evalMatrix(times []float64, p Params) (*mat.Dense, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("surrogate: empty times")
	}
	for name := range p {
		if !knownParam(name) {
			return nil, fmt.Errorf("surrogate: unknown parameter %q", name)
		}
	}
	scaled := make([]float64, len(paramOrder))
	for i, name := range paramOrder {
		v, ok := p[name]
		if !ok {
			return nil, fmt.Errorf("surrogate: missing parameter %q", name)
		}
		scaled[i] = v * ParamFactor
	}

	points := mat.NewDense(len(times), 1+len(paramOrder), nil)
	for i, t := range times {
		points.Set(i, 0, t*TimeFactor)
		for j, v := range scaled {
			points.Set(i, j+1, v)
		}
	}
	return points, nil
}

func knownParam(name string) bool {
	for _, known := range paramOrder {
		if name == known {
			return true
		}
	}
	return false
}

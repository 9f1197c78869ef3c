package kernel

import (
	"fmt"
	"math"
)

var (
	rbf *RBF
	_   Kernel = rbf // Check that RBF respects the Kernel interface.
)

// RBF is a squared-exponential kernel acting on a single input dimension.
//
//	k(xa, xb) = exp(-0.5 * ((xa[d] - xb[d]) / lengthscale)^2)
//
// The kernel has unit variance; wrap it in a Scale kernel to set an
// output scale.
type RBF struct {
	name        string
	dim         int
	lengthscale float64
	constraint  Constraint
}

// NewRBF creates an RBF kernel on the given active dimension. The
// lengthscale starts just above the constraint's admissible boundary so
// that a freshly composed kernel is valid before trained state is loaded.
func NewRBF(name string, dim int, c Constraint) *RBF {
	k := &RBF{
		name:        name,
		dim:         dim,
		lengthscale: 1,
		constraint:  c,
	}
	if err := c.Check(k.lengthscale); err != nil {
		switch b := c.(type) {
		case greaterThan:
			k.lengthscale = math.Nextafter(b.bound, math.Inf(1))
		case lessThan:
			k.lengthscale = math.Nextafter(b.bound, math.Inf(-1))
		}
	}
	return k
}

func (k *RBF) Cov(xa, xb []float64) float64 {
	d := (xa[k.dim] - xb[k.dim]) / k.lengthscale
	return math.Exp(-0.5 * d * d)
}

// Lengthscale returns the current lengthscale.
func (k *RBF) Lengthscale() float64 {
	return k.lengthscale
}

func (k *RBF) Params() map[string]float64 {
	return map[string]float64{k.name + ".lengthscale": k.lengthscale}
}

func (k *RBF) SetParam(name string, value float64) error {
	if name != k.name+".lengthscale" {
		return fmt.Errorf("unknown parameter %q", name)
	}
	if err := k.constraint.Check(value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	k.lengthscale = value
	return nil
}

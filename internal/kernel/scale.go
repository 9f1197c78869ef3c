package kernel

import (
	"fmt"
	"math"
	"strings"
)

var _ Kernel = (*Scale)(nil)

// Scale wraps an inner kernel with a multiplicative output scale.
//
//	k(xa, xb) = outputscale * inner(xa, xb)
type Scale struct {
	inner       Kernel
	outputscale float64
	constraint  Constraint
}

// NewScale wraps inner with an output scale bound by c.
func NewScale(inner Kernel, c Constraint) *Scale {
	k := &Scale{
		inner:       inner,
		outputscale: 1,
		constraint:  c,
	}
	if err := c.Check(k.outputscale); err != nil {
		switch b := c.(type) {
		case greaterThan:
			k.outputscale = math.Nextafter(b.bound, math.Inf(1))
		case lessThan:
			k.outputscale = b.bound / 2
		}
	}
	return k
}

func (k *Scale) Cov(xa, xb []float64) float64 {
	return k.outputscale * k.inner.Cov(xa, xb)
}

// Outputscale returns the current output scale.
func (k *Scale) Outputscale() float64 {
	return k.outputscale
}

func (k *Scale) Params() map[string]float64 {
	out := map[string]float64{"outputscale": k.outputscale}
	for name, value := range k.inner.Params() {
		out[name] = value
	}
	return out
}

func (k *Scale) SetParam(name string, value float64) error {
	if name == "outputscale" {
		if err := k.constraint.Check(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		k.outputscale = value
		return nil
	}
	if strings.Contains(name, ".") {
		return k.inner.SetParam(name, value)
	}
	return fmt.Errorf("unknown parameter %q", name)
}

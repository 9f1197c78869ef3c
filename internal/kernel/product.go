package kernel

import "fmt"

var _ Kernel = (*Product)(nil)

// Product multiplies the covariances of its component kernels.
type Product struct {
	parts []Kernel
}

// NewProduct composes component kernels into a product. Nested products
// are flattened so that a chain of multiplications yields a single flat
// component list.
func NewProduct(kernels ...Kernel) *Product {
	parts := make([]Kernel, 0, len(kernels))
	for _, k := range kernels {
		switch k := k.(type) {
		case *Product:
			parts = append(parts, k.parts...)
		default:
			parts = append(parts, k)
		}
	}
	return &Product{parts: parts}
}

func (k *Product) Cov(xa, xb []float64) float64 {
	out := 1.0
	for _, part := range k.parts {
		out *= part.Cov(xa, xb)
	}
	return out
}

func (k *Product) Params() map[string]float64 {
	out := make(map[string]float64)
	for _, part := range k.parts {
		for name, value := range part.Params() {
			out[name] = value
		}
	}
	return out
}

func (k *Product) SetParam(name string, value float64) error {
	for _, part := range k.parts {
		if _, ok := part.Params()[name]; ok {
			return part.SetParam(name, value)
		}
	}
	return fmt.Errorf("unknown parameter %q", name)
}

// Parts returns the flat component list.
func (k *Product) Parts() []Kernel {
	return k.parts
}

package gp

import (
	"fmt"

	"github.com/heron-ml/heron/internal/kernel"
)

// GaussianLikelihood models homoskedastic Gaussian observation noise.
type GaussianLikelihood struct {
	noise      float64
	constraint kernel.Constraint
}

// NewGaussianLikelihood creates a likelihood whose noise variance is
// bound by c.
func NewGaussianLikelihood(c kernel.Constraint) *GaussianLikelihood {
	return &GaussianLikelihood{
		noise:      1e-4,
		constraint: c,
	}
}

// Noise returns the observation-noise variance.
func (l *GaussianLikelihood) Noise() float64 {
	return l.noise
}

// SetNoise sets the observation-noise variance, validating it against
// the likelihood's constraint.
func (l *GaussianLikelihood) SetNoise(v float64) error {
	if v <= 0 {
		return fmt.Errorf("noise must be positive, got %v", v)
	}
	if err := l.constraint.Check(v); err != nil {
		return fmt.Errorf("noise: %w", err)
	}
	l.noise = v
	return nil
}

// Package prior provides prior probability distributions for Bayesian
// parameter inference over the surrogate's physical parameters.
package prior

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Prior is a prior probability distribution over a scalar parameter.
type Prior interface {
	// LogProb returns the log of the probability density at x.
	LogProb(x float64) float64

	// Transform maps a position u in the unit-normalised hyperparameter
	// space to the corresponding value under this prior.
	Transform(u float64) float64
}

var _ Prior = Normal{}

// Normal is a normal prior probability distribution.
type Normal struct {
	dist distuv.Normal
}

// NewNormal creates a normal prior with the given mean and standard
// deviation.
func NewNormal(mean, std float64) Normal {
	return Normal{dist: distuv.Normal{Mu: mean, Sigma: std}}
}

// Mean returns the prior mean.
func (n Normal) Mean() float64 { return n.dist.Mu }

// Std returns the prior standard deviation.
func (n Normal) Std() float64 { return n.dist.Sigma }

func (n Normal) LogProb(x float64) float64 {
	return n.dist.LogProb(x)
}

func (n Normal) Transform(u float64) float64 {
	return n.dist.Quantile(u)
}

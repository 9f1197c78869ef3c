// Copyright 2026 The Heron Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package prior provides prior probability distributions for Bayesian
// inference over the surrogate's physical parameters.
package prior

import (
	"github.com/heron-ml/heron/internal/prior"
)

// Prior is a prior probability distribution over a scalar parameter.
type Prior = prior.Prior

// Normal is a normal prior probability distribution.
type Normal = prior.Normal

// NewNormal creates a normal prior with the given mean and standard
// deviation.
func NewNormal(mean, std float64) Normal {
	return prior.NewNormal(mean, std)
}

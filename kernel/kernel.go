// Copyright 2026 The Heron Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel provides the public API for the covariance functions
// used by heron's Gaussian process models.
//
// The package defines:
//   - Kernel: covariance-function interface with named hyperparameters
//   - RBF: squared-exponential kernel on one input dimension
//   - Product, Scale: kernel composition
//   - Constraint: hyperparameter bounds (GreaterThan, LessThan)
//
// Example:
//
//	k := kernel.NewScale(
//	    kernel.NewProduct(
//	        kernel.NewRBF("time", 0, kernel.GreaterThan(0.1)),
//	        kernel.NewRBF("mass", 1, kernel.GreaterThan(10)),
//	    ),
//	    kernel.LessThan(0.01),
//	)
//	c := k.Cov(xa, xb)
package kernel

import (
	"github.com/heron-ml/heron/internal/kernel"
)

// Kernel is a covariance function over full input rows.
type Kernel = kernel.Kernel

// Constraint bounds the admissible values of a hyperparameter.
type Constraint = kernel.Constraint

// GreaterThan returns a strict lower-bound constraint.
func GreaterThan(bound float64) Constraint {
	return kernel.GreaterThan(bound)
}

// LessThan returns a strict upper-bound constraint.
func LessThan(bound float64) Constraint {
	return kernel.LessThan(bound)
}

// Unconstrained admits any hyperparameter value.
func Unconstrained() Constraint {
	return kernel.Unconstrained()
}

// RBF is a squared-exponential kernel on a single input dimension.
type RBF = kernel.RBF

// NewRBF creates an RBF kernel on the given active dimension, with its
// lengthscale bound by c.
func NewRBF(name string, dim int, c Constraint) *RBF {
	return kernel.NewRBF(name, dim, c)
}

// Product multiplies the covariances of its component kernels.
type Product = kernel.Product

// NewProduct composes component kernels into a flat product.
func NewProduct(kernels ...Kernel) *Product {
	return kernel.NewProduct(kernels...)
}

// Scale wraps an inner kernel with a constrained output scale.
type Scale = kernel.Scale

// NewScale wraps inner with an output scale bound by c.
func NewScale(inner Kernel, c Constraint) *Scale {
	return kernel.NewScale(inner, c)
}

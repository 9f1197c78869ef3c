// Copyright 2026 The Heron Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides the public API for heron's gravitational-wave
// waveform surrogate.
//
// A Model is a pre-trained exact Gaussian process over waveform strain.
// It is built once from a training table and a trained-parameter blob,
// and is immutable afterwards: queries return the predictive mean, its
// uncertainty, or posterior sample paths at arbitrary (time, parameter)
// points.
//
// Example:
//
//	m, err := model.New(model.Config{
//	    DataPath:  "data/gt-M60-F1024.dat",
//	    StatePath: "data/gt-trained.heron",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mean, variance, err := m.Mean(times, model.Params{
//	    "mass ratio": 1.0,
//	    "spin 1x": 0, "spin 1y": 0, "spin 1z": 0,
//	    "spin 2x": 0, "spin 2y": 0, "spin 2z": 0,
//	})
package model

import (
	"github.com/heron-ml/heron/internal/dataset"
	"github.com/heron-ml/heron/internal/surrogate"
)

// Fixed scale factors between physical units and GP training units.
const (
	TimeFactor        = surrogate.TimeFactor
	ParamFactor       = surrogate.ParamFactor
	StrainInputFactor = surrogate.StrainInputFactor
)

// Config locates the surrogate's resource files.
type Config = surrogate.Config

// Params locates a query in parameter space.
type Params = surrogate.Params

// Model is an inference-ready waveform surrogate.
type Model = surrogate.Model

// FrequencyUncertainty is the per-frequency uncertainty of a
// frequency-domain waveform.
type FrequencyUncertainty = surrogate.FrequencyUncertainty

// Table holds scaled GP training data.
type Table = dataset.Table

// New builds a surrogate from the configured resource files.
func New(cfg Config) (*Model, error) {
	return surrogate.New(cfg)
}

// NewFromTable builds a surrogate from an already-loaded training table
// and a flat trained-parameter dictionary.
func NewFromTable(table *Table, params map[string]float64) (*Model, error) {
	return surrogate.NewFromTable(table, params)
}

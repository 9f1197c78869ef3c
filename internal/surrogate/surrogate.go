// Package surrogate implements the GPR gravitational-waveform surrogate
// model: a pre-trained exact Gaussian process over strain, queried at
// arbitrary (time, parameter) points for its predictive mean,
// uncertainty and sample paths.
package surrogate

import (
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/heron-ml/heron/internal/dataset"
	"github.com/heron-ml/heron/internal/gp"
	"github.com/heron-ml/heron/internal/kernel"
	"github.com/heron-ml/heron/internal/state"
)

// Fixed scale factors between physical units and the units the GP was
// trained in. Training inputs are multiplied by TimeFactor/ParamFactor
// and strain targets by StrainInputFactor; query outputs are divided
// back out.
const (
	TimeFactor        = 100
	ParamFactor       = 100
	StrainInputFactor = 1e21
)

// Posterior results memoized per query point.
const cacheSize = 32

// Config locates the surrogate's resource files.
type Config struct {
	// DataPath is the plain-text numeric training table.
	DataPath string
	// StatePath is the serialized trained-parameter blob.
	StatePath string
	// Seed seeds the sample-path generator. Zero means time-seeded.
	Seed uint64
}

// Model is an inference-ready waveform surrogate. The trained GP is
// immutable after construction and every query is an independent read
// against it; the only mutable state is the sample-path generator,
// which Reseed and Distribution share.
type Model struct {
	gp    *gp.ExactGP
	cache *lru.Cache[string, *gp.Posterior]
	rng   *rand.Rand
}

// waveformKernel composes the surrogate's covariance structure: a scale
// kernel wrapping the product of per-dimension squared-exponential
// kernels over time, mass ratio and the six spin components, each with
// a hardcoded lengthscale bound.
func waveformKernel() kernel.Kernel {
	timeKernel := kernel.NewRBF("time", 0, kernel.GreaterThan(0.1))
	massKernel := kernel.NewRBF("mass", 1, kernel.GreaterThan(10))
	parts := []kernel.Kernel{timeKernel, massKernel}
	for i, name := range []string{"spin1x", "spin1y", "spin1z", "spin2x", "spin2y", "spin2z"} {
		parts = append(parts, kernel.NewRBF(name, 2+i, kernel.GreaterThan(7)))
	}
	return kernel.NewScale(kernel.NewProduct(parts...), kernel.LessThan(0.01))
}

// New builds the surrogate: it composes the fixed kernel, loads the
// training table and the trained-parameter blob, and prepares the GP
// for inference.
func New(cfg Config) (*Model, error) {
	table, err := dataset.Load(cfg.DataPath, ParamFactor, StrainInputFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	params, _, err := state.Read(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load trained parameters: %w", err)
	}
	m, err := NewFromTable(table, params)
	if err != nil {
		return nil, err
	}
	m.Reseed(cfg.Seed)
	return m, nil
}

// NewFromTable builds the surrogate from an already-loaded training
// table and a flat trained-parameter dictionary.
func NewFromTable(table *dataset.Table, params map[string]float64) (*Model, error) {
	_, d := table.Inputs.Dims()
	if want := 1 + len(paramOrder); d != want {
		return nil, fmt.Errorf("surrogate: training table has %d input columns, want %d", d, want)
	}

	kern := waveformKernel()
	lik := gp.NewGaussianLikelihood(kernel.LessThan(10))
	model, err := gp.NewExactGP(table.Inputs, table.Strain, kern, lik)
	if err != nil {
		return nil, err
	}

	for name, value := range params {
		switch {
		case name == "likelihood.noise":
			if err := lik.SetNoise(value); err != nil {
				return nil, err
			}
		case strings.HasPrefix(name, "kernel."):
			if err := kern.SetParam(strings.TrimPrefix(name, "kernel."), value); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("surrogate: unknown trained parameter %q", name)
		}
	}

	if err := model.Prepare(); err != nil {
		return nil, fmt.Errorf("failed to prepare model: %w", err)
	}

	cache, err := lru.New[string, *gp.Posterior](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Model{
		gp:    model,
		cache: cache,
		rng:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}, nil
}

// Reseed resets the sample-path generator. A zero seed falls back to
// the current time.
func (m *Model) Reseed(seed uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m.rng = rand.New(rand.NewSource(seed))
}

// posterior evaluates (or recalls) the unscaled predictive distribution
// at the query point.
func (m *Model) posterior(times []float64, p Params) (*gp.Posterior, error) {
	points, err := evalMatrix(times, p)
	if err != nil {
		return nil, err
	}
	key := queryKey(points)
	if post, ok := m.cache.Get(key); ok {
		return post, nil
	}
	post, err := m.gp.Posterior(points)
	if err != nil {
		return nil, err
	}
	m.cache.Add(key, post)
	return post, nil
}

// Mean returns the mean waveform and its variance at the query point,
// in physical strain units.
func (m *Model) Mean(times []float64, p Params) (mean, variance []float64, err error) {
	post, err := m.posterior(times, p)
	if err != nil {
		return nil, nil, err
	}
	mean, variance = rescale(post)
	return mean, variance, nil
}

// rescale converts a posterior from GP training units back to physical
// strain units.
func rescale(post *gp.Posterior) (mean, variance []float64) {
	mean = make([]float64, post.Mean.Len())
	for i := range mean {
		mean[i] = post.Mean.AtVec(i) / StrainInputFactor
	}
	variance = post.Variance()
	for i := range variance {
		variance[i] /= StrainInputFactor * StrainInputFactor
	}
	return mean, variance
}

// MeanCov returns the mean waveform, its variance and the full
// predictive covariance matrix, in physical strain units.
func (m *Model) MeanCov(times []float64, p Params) (mean, variance []float64, cov *mat.SymDense, err error) {
	post, err := m.posterior(times, p)
	if err != nil {
		return nil, nil, nil, err
	}
	mean, variance = rescale(post)
	n := post.Cov.SymmetricDim()
	cov = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov.SetSym(i, j, post.Cov.At(i, j)/(StrainInputFactor*StrainInputFactor))
		}
	}
	return mean, variance, cov, nil
}

// Distribution draws n sample waveforms from the posterior predictive
// distribution, observation noise included. n = 0 returns an empty
// sample set; each returned path has one strain value per query time.
func (m *Model) Distribution(times []float64, p Params, n int) ([][]float64, error) {
	points, err := evalMatrix(times, p)
	if err != nil {
		return nil, err
	}
	samples, err := m.gp.Sample(points, n, m.rng)
	if err != nil {
		return nil, err
	}
	for _, path := range samples {
		for i := range path {
			path[i] /= StrainInputFactor
		}
	}
	return samples, nil
}

// TimeDomainWaveform returns the mean strain and its variance over the
// given times.
func (m *Model) TimeDomainWaveform(p Params, times []float64) (mean, variance []float64, err error) {
	return m.Mean(times, p)
}

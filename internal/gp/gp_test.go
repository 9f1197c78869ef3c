package gp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/heron-ml/heron/internal/kernel"
)

// testGP builds a 1-D GP over five points of y = x with a short
// lengthscale and small observation noise.
func testGP(t *testing.T) *ExactGP {
	t.Helper()

	x := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	y := []float64{0, 1, 2, 3, 4}

	k := kernel.NewRBF("x", 0, kernel.Unconstrained())
	require.NoError(t, k.SetParam("x.lengthscale", 1.0))

	lik := NewGaussianLikelihood(kernel.Unconstrained())
	require.NoError(t, lik.SetNoise(1e-6))

	g, err := NewExactGP(x, y, k, lik)
	require.NoError(t, err)
	require.NoError(t, g.Prepare())
	return g
}

func TestNewExactGPValidation(t *testing.T) {
	k := kernel.NewRBF("x", 0, kernel.Unconstrained())
	lik := NewGaussianLikelihood(kernel.Unconstrained())

	_, err := NewExactGP(mat.NewDense(2, 1, []float64{0, 1}), []float64{0}, k, lik)
	assert.Error(t, err)
}

func TestPosteriorNotPrepared(t *testing.T) {
	k := kernel.NewRBF("x", 0, kernel.Unconstrained())
	lik := NewGaussianLikelihood(kernel.Unconstrained())
	g, err := NewExactGP(mat.NewDense(2, 1, []float64{0, 1}), []float64{0, 1}, k, lik)
	require.NoError(t, err)

	_, err = g.Posterior(mat.NewDense(1, 1, []float64{0.5}))
	assert.ErrorIs(t, err, ErrNotPrepared)
}

// TestPosteriorInterpolates checks that with tiny noise the posterior
// mean passes through the training targets and the variance collapses
// there.
func TestPosteriorInterpolates(t *testing.T) {
	g := testGP(t)

	post, err := g.Posterior(mat.NewDense(2, 1, []float64{1, 3}))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, post.Mean.AtVec(0), 1e-3)
	assert.InDelta(t, 3.0, post.Mean.AtVec(1), 1e-3)

	for i, v := range post.Variance() {
		assert.Less(t, v, 1e-3, "variance at training point %d", i)
	}
}

// TestPosteriorPriorFarAway checks that far from the data the posterior
// reverts to the zero prior mean and unit prior variance.
func TestPosteriorPriorFarAway(t *testing.T) {
	g := testGP(t)

	post, err := g.Posterior(mat.NewDense(1, 1, []float64{1000}))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, post.Mean.AtVec(0), 1e-6)
	assert.InDelta(t, 1.0, post.Variance()[0], 1e-6)
}

func TestPosteriorDeterministic(t *testing.T) {
	g := testGP(t)
	points := mat.NewDense(3, 1, []float64{0.5, 1.5, 2.5})

	a, err := g.Posterior(points)
	require.NoError(t, err)
	b, err := g.Posterior(points)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, a.Mean.AtVec(i), b.Mean.AtVec(i))
		for j := 0; j < 3; j++ {
			assert.Equal(t, a.Cov.At(i, j), b.Cov.At(i, j))
		}
	}
}

func TestPosteriorDimensionMismatch(t *testing.T) {
	g := testGP(t)
	_, err := g.Posterior(mat.NewDense(1, 2, []float64{0.5, 0.5}))
	assert.Error(t, err)
}

func TestSampleCounts(t *testing.T) {
	g := testGP(t)
	points := mat.NewDense(4, 1, []float64{0.5, 1.5, 2.5, 3.5})
	src := rand.NewSource(7)

	samples, err := g.Sample(points, 0, src)
	require.NoError(t, err)
	assert.Empty(t, samples)

	samples, err = g.Sample(points, 5, src)
	require.NoError(t, err)
	require.Len(t, samples, 5)
	for _, path := range samples {
		assert.Len(t, path, 4)
	}

	_, err = g.Sample(points, -1, src)
	assert.Error(t, err)
}

// TestSampleNearMean checks that sample paths scatter around the
// posterior mean at an interpolated point.
func TestSampleNearMean(t *testing.T) {
	g := testGP(t)
	points := mat.NewDense(1, 1, []float64{2})

	samples, err := g.Sample(points, 200, rand.NewSource(42))
	require.NoError(t, err)

	sum := 0.0
	for _, path := range samples {
		sum += path[0]
	}
	// The posterior at a training point is 2 with near-zero variance.
	assert.InDelta(t, 2.0, sum/200, 0.05)
}

func TestFactorizeJitter(t *testing.T) {
	// A rank-deficient matrix (duplicated rows) needs jitter to
	// factorize.
	k := mat.NewSymDense(2, []float64{1, 1, 1, 1})
	chol, err := factorize(k)
	require.NoError(t, err)
	assert.NotNil(t, chol)
}

func TestLikelihoodConstraint(t *testing.T) {
	lik := NewGaussianLikelihood(kernel.LessThan(10))

	require.NoError(t, lik.SetNoise(2.5))
	assert.Equal(t, 2.5, lik.Noise())

	assert.Error(t, lik.SetNoise(11))
	assert.Error(t, lik.SetNoise(-1))
	assert.Error(t, lik.SetNoise(0))
}

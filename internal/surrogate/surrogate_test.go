package surrogate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/heron-ml/heron/internal/dataset"
	"github.com/heron-ml/heron/internal/state"
)

// Physical training points: five times at fixed parameters, strain of
// typical detector magnitude.
var (
	testTimes  = []float64{-0.02, -0.01, 0.0, 0.01, 0.02}
	testStrain = []float64{1.5e-22, 3.0e-22, 5.0e-22, 2.5e-22, -1.0e-22}
)

func testRows() [][]float64 {
	rows := make([][]float64, len(testTimes))
	for i, t := range testTimes {
		// [time, mass ratio, six spins, strain, unused]
		rows[i] = []float64{t, 1.0, 0, 0, 0, 0, 0, 0, testStrain[i], 0}
	}
	return rows
}

func trainedParams() map[string]float64 {
	return map[string]float64{
		"likelihood.noise":          1e-6,
		"kernel.outputscale":        0.005,
		"kernel.time.lengthscale":   0.5,
		"kernel.mass.lengthscale":   11.0,
		"kernel.spin1x.lengthscale": 8.0,
		"kernel.spin1y.lengthscale": 8.0,
		"kernel.spin1z.lengthscale": 8.0,
		"kernel.spin2x.lengthscale": 8.0,
		"kernel.spin2y.lengthscale": 8.0,
		"kernel.spin2z.lengthscale": 8.0,
	}
}

func testModel(t *testing.T) *Model {
	t.Helper()
	table, err := dataset.FromRows(testRows(), ParamFactor, StrainInputFactor)
	require.NoError(t, err)
	m, err := NewFromTable(table, trainedParams())
	require.NoError(t, err)
	m.Reseed(42)
	return m
}

func queryParams() Params {
	return Params{
		"mass ratio": 1.0,
		"spin 1x":    0,
		"spin 1y":    0,
		"spin 1z":    0,
		"spin 2x":    0,
		"spin 2y":    0,
		"spin 2z":    0,
	}
}

// TestNewFromFiles checks that construction from the on-disk resource
// pair does not fail.
func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "model.heron")
	require.NoError(t, state.Write(statePath, trainedParams(), "WaveformSurrogate", nil))

	dataPath := filepath.Join(dir, "table.dat")
	var sb strings.Builder
	sb.WriteString("# time q s1x s1y s1z s2x s2y s2z strain unused\n")
	for _, row := range testRows() {
		for i, v := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		sb.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(dataPath, []byte(sb.String()), 0o644))

	m, err := New(Config{
		DataPath:  dataPath,
		StatePath: statePath,
		Seed:      7,
	})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNewMissingResources(t *testing.T) {
	_, err := New(Config{DataPath: "nope.dat", StatePath: "nope.heron"})
	assert.Error(t, err)
}

func TestNewRejectsBadState(t *testing.T) {
	table, err := dataset.FromRows(testRows(), ParamFactor, StrainInputFactor)
	require.NoError(t, err)

	// A lengthscale below its hardcoded bound must be rejected.
	params := trainedParams()
	params["kernel.time.lengthscale"] = 0.05
	_, err = NewFromTable(table, params)
	assert.Error(t, err)

	// So must a parameter the composite kernel does not know.
	params = trainedParams()
	params["kernel.bogus.lengthscale"] = 1.0
	_, err = NewFromTable(table, params)
	assert.Error(t, err)
}

// TestMeanDeterministic checks that repeated identical queries return
// identical results.
func TestMeanDeterministic(t *testing.T) {
	m := testModel(t)
	times := []float64{-0.015, 0.0, 0.015}

	meanA, varA, err := m.Mean(times, queryParams())
	require.NoError(t, err)
	meanB, varB, err := m.Mean(times, queryParams())
	require.NoError(t, err)

	assert.Equal(t, meanA, meanB)
	assert.Equal(t, varA, varB)
}

// TestScalingConsistency checks the rescaling chain end to end: at a
// training point the model must reproduce the physical strain, i.e. the
// scaled training target divided by StrainInputFactor.
func TestScalingConsistency(t *testing.T) {
	m := testModel(t)

	mean, variance, err := m.Mean(testTimes, queryParams())
	require.NoError(t, err)

	for i, want := range testStrain {
		assert.InDelta(t, want, mean[i], 1e-23, "strain at training time %d", i)
		assert.Less(t, variance[i], 1e-46, "variance at training time %d", i)
	}
}

func TestMeanCov(t *testing.T) {
	m := testModel(t)
	times := []float64{-0.01, 0.0, 0.01}

	mean, variance, cov, err := m.MeanCov(times, queryParams())
	require.NoError(t, err)
	require.Len(t, mean, 3)
	require.Equal(t, 3, cov.SymmetricDim())

	// The covariance diagonal is the variance.
	for i := range variance {
		assert.InDelta(t, variance[i], cov.At(i, i), 1e-50)
	}
	// Symmetric by construction.
	assert.Equal(t, cov.At(0, 2), cov.At(2, 0))

	// Identical to the covariance-free query.
	meanOnly, varOnly, err := m.Mean(times, queryParams())
	require.NoError(t, err)
	assert.Equal(t, meanOnly, mean)
	assert.Equal(t, varOnly, variance)
}

func TestDistributionCounts(t *testing.T) {
	m := testModel(t)
	times := []float64{-0.01, 0.0, 0.01, 0.02}

	samples, err := m.Distribution(times, queryParams(), 0)
	require.NoError(t, err)
	assert.Empty(t, samples)

	samples, err = m.Distribution(times, queryParams(), 7)
	require.NoError(t, err)
	require.Len(t, samples, 7)
	for _, path := range samples {
		assert.Len(t, path, len(times))
	}
}

// TestDistributionNearMean checks that sample paths concentrate around
// the predictive mean at a training point.
func TestDistributionNearMean(t *testing.T) {
	m := testModel(t)
	times := []float64{0.0}

	samples, err := m.Distribution(times, queryParams(), 200)
	require.NoError(t, err)

	sum := 0.0
	for _, path := range samples {
		sum += path[0]
	}
	// Training strain at t=0 is 5.0e-22.
	assert.InDelta(t, 5.0e-22, sum/200, 5e-23)
}

func TestMalformedQuery(t *testing.T) {
	m := testModel(t)
	times := []float64{0.0}

	p := queryParams()
	delete(p, "spin 2z")
	_, _, err := m.Mean(times, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spin 2z")

	p = queryParams()
	p["inclination"] = 0.5
	_, _, err = m.Mean(times, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inclination")

	_, _, err = m.Mean(nil, queryParams())
	assert.Error(t, err)
}

func TestTimeDomainWaveform(t *testing.T) {
	m := testModel(t)
	times := []float64{-0.02, 0.0, 0.02}

	tdMean, tdVar, err := m.TimeDomainWaveform(queryParams(), times)
	require.NoError(t, err)
	mean, variance, err := m.Mean(times, queryParams())
	require.NoError(t, err)

	assert.Equal(t, mean, tdMean)
	assert.Equal(t, variance, tdVar)
}

func TestPosteriorCache(t *testing.T) {
	m := testModel(t)
	times := []float64{-0.01, 0.01}

	a, err := m.posterior(times, queryParams())
	require.NoError(t, err)
	b, err := m.posterior(times, queryParams())
	require.NoError(t, err)

	// Second lookup is served from the cache.
	assert.Same(t, a, b)
}

func TestQueryKey(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	c := mat.NewDense(2, 2, []float64{1, 2, 3, 5})

	assert.Equal(t, queryKey(a), queryKey(b))
	assert.NotEqual(t, queryKey(a), queryKey(c))
}

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load(filepath.Join("testdata", "table.dat"), 100, 1e21)
	require.NoError(t, err)

	n, d := table.Inputs.Dims()
	assert.Equal(t, 5, n)
	assert.Equal(t, 8, d)
	require.Len(t, table.Strain, 5)

	// First row: time -0.02 scaled by 100, mass ratio 1.0 scaled by 100.
	assert.InDelta(t, -2.0, table.Inputs.At(0, 0), 1e-12)
	assert.InDelta(t, 100.0, table.Inputs.At(0, 1), 1e-12)

	// Strain 1.5e-22 scaled by 1e21 is 0.15; the unused trailing column
	// is dropped.
	assert.InDelta(t, 0.15, table.Strain[0], 1e-12)
	assert.InDelta(t, -0.1, table.Strain[4], 1e-12)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.dat"), 100, 1e21)
	assert.Error(t, err)
}

func TestLoadRaggedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.dat")
	require.NoError(t, os.WriteFile(path, []byte("1 2 3 4\n1 2 3\n"), 0o644))

	_, err := Load(path, 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadNonNumeric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dat")
	require.NoError(t, os.WriteFile(path, []byte("1 2 oops 4\n"), 0o644))

	_, err := Load(path, 1, 1)
	assert.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dat")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n\n"), 0o644))

	_, err := Load(path, 1, 1)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestFromRows(t *testing.T) {
	rows := [][]float64{
		{0.0, 1.0, 2.0, 0.5, 0.0},
		{0.1, 1.0, 2.0, 0.7, 0.0},
	}
	table, err := FromRows(rows, 10, 2)
	require.NoError(t, err)

	n, d := table.Inputs.Dims()
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, d)
	assert.InDelta(t, 1.0, table.Inputs.At(1, 0), 1e-12) // 0.1 * 10
	assert.InDelta(t, 1.4, table.Strain[1], 1e-12)       // 0.7 * 2

	_, err = FromRows([][]float64{{1, 2, 3}, {1, 2}}, 1, 1)
	assert.Error(t, err)

	_, err = FromRows(nil, 1, 1)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

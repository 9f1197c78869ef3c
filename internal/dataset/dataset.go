// Package dataset loads the plain-text numeric training table consumed
// by the waveform surrogate.
//
// The table is whitespace separated, one training point per line, with
// '#' comment lines. The last two columns are the strain target and an
// unused trailing column; every preceding column is a model input
// (time, mass ratio, six spin components).
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyTable is returned when the table contains no data rows.
var ErrEmptyTable = errors.New("dataset: empty table")

// Table holds GP-ready training data: inputs already multiplied by the
// input scale factor and strain targets by the strain scale factor.
type Table struct {
	Inputs *mat.Dense // n×d scaled input rows
	Strain []float64  // n scaled strain targets
}

// Load reads a training table from path, scaling input columns by
// inputFactor and the strain column by strainFactor.
func Load(path string, inputFactor, strainFactor float64) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training table: %w", err)
	}
	defer file.Close()

	var (
		rows  [][]float64
		width int
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if width == 0 {
			if len(fields) < 3 {
				return nil, fmt.Errorf("dataset: line %d: need at least 3 columns, got %d", line, len(fields))
			}
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf("dataset: line %d: expected %d columns, got %d", line, width, len(fields))
		}
		row := make([]float64, width)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: line %d: column %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read training table: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	return fromRows(rows, width, inputFactor, strainFactor), nil
}

// FromRows builds a scaled table from in-memory rows laid out like the
// on-disk table. All rows must have the same width.
func FromRows(rows [][]float64, inputFactor, strainFactor float64) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	width := len(rows[0])
	if width < 3 {
		return nil, fmt.Errorf("dataset: need at least 3 columns, got %d", width)
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("dataset: row %d: expected %d columns, got %d", i, width, len(row))
		}
	}
	return fromRows(rows, width, inputFactor, strainFactor), nil
}

func fromRows(rows [][]float64, width int, inputFactor, strainFactor float64) *Table {
	n := len(rows)
	d := width - 2
	inputs := mat.NewDense(n, d, nil)
	strain := make([]float64, n)
	for i, row := range rows {
		for j := 0; j < d; j++ {
			inputs.Set(i, j, row[j]*inputFactor)
		}
		strain[i] = row[d] * strainFactor
	}
	return &Table{Inputs: inputs, Strain: strain}
}

// Package dataset loads the data the command line trainer learns from.
package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/pointlander/datum/iris"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// Iris returns Fisher's iris measurements as a 150×4 matrix, along with the label of each row.
func Iris() (*tensor.Dense, []string, error) {
	data, err := iris.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to load iris")
	}
	if len(data.Fisher) == 0 {
		return nil, nil, errors.New("iris data set is empty")
	}
	cols := len(data.Fisher[0].Measures)
	backing := make([]float32, 0, len(data.Fisher)*cols)
	labels := make([]string, 0, len(data.Fisher))
	for _, flower := range data.Fisher {
		for _, v := range flower.Measures {
			backing = append(backing, float32(v))
		}
		labels = append(labels, flower.Label)
	}
	return tensor.New(tensor.WithShape(len(data.Fisher), cols), tensor.WithBacking(backing)), labels, nil
}

// LoadCSV reads a matrix of numbers. Every record must have the same number of fields.
// A first line that does not parse as numbers is treated as a header and skipped.
func LoadCSV(r io.Reader) (*tensor.Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var backing []float32
	var cols, rows int
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		parsed, err := parseRecord(record)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if cols == 0 {
			cols = len(parsed)
		}
		backing = append(backing, parsed...)
		rows++
	}
	if rows == 0 {
		return nil, errors.New("no data")
	}
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing)), nil
}

func parseRecord(record []string) ([]float32, error) {
	retVal := make([]float32, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, err
		}
		retVal[i] = float32(v)
	}
	return retVal, nil
}

// MinMax scales every column of the matrix a into [0, 1], in place. Constant columns become 0.
func MinMax(a *tensor.Dense) error {
	mat, err := native.MatrixF32(a)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(mat) == 0 {
		return nil
	}
	for j := range mat[0] {
		lo, hi := math32.Inf(1), math32.Inf(-1)
		for i := range mat {
			lo = math32.Min(lo, mat[i][j])
			hi = math32.Max(hi, mat[i][j])
		}
		span := hi - lo
		for i := range mat {
			if span == 0 {
				mat[i][j] = 0
				continue
			}
			mat[i][j] = (mat[i][j] - lo) / span
		}
	}
	return nil
}

// Binarize sets every entry of a to 1 if it is greater than threshold, and to 0 otherwise.
func Binarize(a *tensor.Dense, threshold float32) {
	data := a.Data().([]float32)
	for i, v := range data {
		if v > threshold {
			data[i] = 1
		} else {
			data[i] = 0
		}
	}
}

// Package dataset provides the labeled tabular dataset container used by
// the splitting and evaluation packages, together with CSV load/save.
//
// A Dataset is an ordered sequence of records: a fixed-width float64
// feature matrix plus one label per record drawn from a finite set of
// classes. Partitions produced by the modelselection package are index
// views over a Dataset; Select materializes such a view as a copy.
package dataset

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/modeleval/pkg/errors"
)

// Dataset holds an n×d feature matrix and n labels.
// FeatureNames and LabelName are carried through CSV round-trips.
type Dataset struct {
	X            *mat.Dense
	Y            *mat.VecDense
	FeatureNames []string
	LabelName    string
}

// New creates a Dataset after validating shapes and values.
//
// Errors:
//   - ErrEmptyData: X or Y has no rows
//   - DimensionError: row counts of X and Y differ, or featureNames
//     length differs from the number of columns
//   - NumericalInstabilityError: X or Y contains NaN or Inf
func New(X *mat.Dense, y *mat.VecDense, featureNames []string, labelName string) (*Dataset, error) {
	if X == nil || y == nil {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 || y.Len() == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if y.Len() != rows {
		return nil, errors.NewDimensionError("dataset.New", rows, y.Len(), 0)
	}
	if featureNames != nil && len(featureNames) != cols {
		return nil, errors.NewDimensionError("dataset.New", cols, len(featureNames), 1)
	}
	if err := errors.CheckMatrix("dataset.New", X, rows, cols, 0); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability("dataset.New", y.RawVector().Data, 0); err != nil {
		return nil, err
	}
	return &Dataset{X: X, Y: y, FeatureNames: featureNames, LabelName: labelName}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	r, _ := d.X.Dims()
	return r
}

// NumFeatures returns the feature dimensionality.
func (d *Dataset) NumFeatures() int {
	_, c := d.X.Dims()
	return c
}

// Classes returns the sorted distinct label values.
func (d *Dataset) Classes() []float64 {
	seen := make(map[float64]struct{})
	for i := 0; i < d.Y.Len(); i++ {
		seen[d.Y.AtVec(i)] = struct{}{}
	}
	classes := make([]float64, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Float64s(classes)
	return classes
}

// ClassRatio returns the fraction of records whose label equals positive.
func (d *Dataset) ClassRatio(positive float64) float64 {
	n := d.Y.Len()
	count := 0
	for i := 0; i < n; i++ {
		if d.Y.AtVec(i) == positive {
			count++
		}
	}
	return float64(count) / float64(n)
}

// ClassCounts returns the number of records per label value.
func (d *Dataset) ClassCounts() map[float64]int {
	counts := make(map[float64]int)
	for i := 0; i < d.Y.Len(); i++ {
		counts[d.Y.AtVec(i)]++
	}
	return counts
}

// Select materializes the records at the given indices as a new Dataset.
// The returned Dataset owns copies of the selected rows; mutating it does
// not affect the receiver. Indices may repeat (bootstrap resamples rely
// on this) and are taken in the order given.
//
// Errors:
//   - ErrEmptyData: indices is empty
//   - ValidationError: an index is out of range
func (d *Dataset) Select(indices []int) (*Dataset, error) {
	if len(indices) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	rows, cols := d.X.Dims()
	for _, idx := range indices {
		if idx < 0 || idx >= rows {
			return nil, errors.NewValidationError("indices", "index out of range", idx)
		}
	}

	subX := mat.NewDense(len(indices), cols, nil)
	subY := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		subX.SetRow(i, d.X.RawRowView(idx))
		subY.SetVec(i, d.Y.AtVec(idx))
	}
	return &Dataset{X: subX, Y: subY, FeatureNames: d.FeatureNames, LabelName: d.LabelName}, nil
}

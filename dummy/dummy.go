// Package dummy provides baseline classifiers that ignore the input
// features, in the spirit of scikit-learn's DummyClassifier. They serve
// as sanity baselines for imbalanced-class studies and as the in-repo
// concrete implementation of the model capability interfaces.
package dummy

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/modeleval/core/model"
	"github.com/YuminosukeSato/modeleval/pkg/errors"
)

// Strategies supported by DummyClassifier.
const (
	// StrategyMostFrequent always predicts the majority class.
	StrategyMostFrequent = "most_frequent"
	// StrategyStratified draws predictions from the empirical class
	// distribution observed during Fit, using the configured seed.
	StrategyStratified = "stratified"
	// StrategyConstant always predicts the configured constant label.
	StrategyConstant = "constant"
)

// DummyClassifier predicts without looking at the features.
type DummyClassifier struct {
	model.BaseEstimator

	strategy string
	constant float64
	seed     int64

	classes  []float64 // sorted distinct labels seen during Fit
	priors   []float64 // empirical class frequencies, same order
	majority float64
}

// DummyClassifierOption is a functional option for DummyClassifier.
type DummyClassifierOption func(*DummyClassifier)

// WithStrategy sets the prediction strategy (default: most_frequent).
func WithStrategy(strategy string) DummyClassifierOption {
	return func(d *DummyClassifier) {
		d.strategy = strategy
	}
}

// WithConstant sets the label predicted by the constant strategy.
func WithConstant(label float64) DummyClassifierOption {
	return func(d *DummyClassifier) {
		d.constant = label
	}
}

// WithSeed sets the seed used by the stratified strategy.
func WithSeed(seed int64) DummyClassifierOption {
	return func(d *DummyClassifier) {
		d.seed = seed
	}
}

// NewDummyClassifier creates a DummyClassifier with the given options.
func NewDummyClassifier(opts ...DummyClassifierOption) *DummyClassifier {
	d := &DummyClassifier{
		strategy: StrategyMostFrequent,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fit learns the class distribution of y. X is accepted for interface
// compatibility and shape checking only.
//
// Errors:
//   - ValueError: unknown strategy, or constant label not present in y
//   - DimensionError: y is not n×1 or row counts differ
//   - ErrEmptyData: empty input
func (d *DummyClassifier) Fit(X, y mat.Matrix) error {
	switch d.strategy {
	case StrategyMostFrequent, StrategyStratified, StrategyConstant:
	default:
		return errors.NewValueError("DummyClassifier.Fit", "unknown strategy: "+d.strategy)
	}

	if X == nil || y == nil {
		return errors.WithStack(errors.ErrEmptyData)
	}
	xRows, _ := X.Dims()
	yRows, yCols := y.Dims()
	if xRows == 0 || yRows == 0 {
		return errors.WithStack(errors.ErrEmptyData)
	}
	if yCols != 1 {
		return errors.NewDimensionError("DummyClassifier.Fit", 1, yCols, 1)
	}
	if yRows != xRows {
		return errors.NewDimensionError("DummyClassifier.Fit", xRows, yRows, 0)
	}

	counts := make(map[float64]int)
	for i := 0; i < yRows; i++ {
		counts[y.At(i, 0)]++
	}

	d.classes = make([]float64, 0, len(counts))
	for label := range counts {
		d.classes = append(d.classes, label)
	}
	sort.Float64s(d.classes)

	d.priors = make([]float64, len(d.classes))
	bestCount := -1
	for i, label := range d.classes {
		d.priors[i] = float64(counts[label]) / float64(yRows)
		// Ties resolve to the smallest label because classes are sorted
		if counts[label] > bestCount {
			bestCount = counts[label]
			d.majority = label
		}
	}

	if d.strategy == StrategyConstant {
		found := false
		for _, label := range d.classes {
			if label == d.constant {
				found = true
				break
			}
		}
		if !found {
			return errors.NewValueError("DummyClassifier.Fit", "constant label not present in training labels")
		}
	}

	d.SetFitted()
	return nil
}

// Predict returns one label per input row. The stratified strategy
// re-seeds its generator on every call, so repeated calls with the same
// input and seed produce identical predictions.
func (d *DummyClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("DummyClassifier", "Predict")
	}
	if X == nil {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	n, _ := X.Dims()
	if n == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	out := mat.NewDense(n, 1, nil)
	switch d.strategy {
	case StrategyConstant:
		for i := 0; i < n; i++ {
			out.Set(i, 0, d.constant)
		}
	case StrategyStratified:
		r := rand.New(rand.NewPCG(uint64(d.seed), uint64(d.seed)))
		for i := 0; i < n; i++ {
			out.Set(i, 0, d.sampleClass(r))
		}
	default: // most_frequent
		for i := 0; i < n; i++ {
			out.Set(i, 0, d.majority)
		}
	}
	return out, nil
}

// sampleClass draws one label from the empirical class distribution.
func (d *DummyClassifier) sampleClass(r *rand.Rand) float64 {
	u := r.Float64()
	cum := 0.0
	for i, p := range d.priors {
		cum += p
		if u < cum {
			return d.classes[i]
		}
	}
	return d.classes[len(d.classes)-1]
}

// PredictProba returns per-class probability estimates: the empirical
// priors for the stratified strategy, a one-hot distribution otherwise.
func (d *DummyClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !d.IsFitted() {
		return nil, errors.NewNotFittedError("DummyClassifier", "PredictProba")
	}
	if X == nil {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	n, _ := X.Dims()
	if n == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	out := mat.NewDense(n, len(d.classes), nil)
	switch d.strategy {
	case StrategyStratified:
		for i := 0; i < n; i++ {
			for j, p := range d.priors {
				out.Set(i, j, p)
			}
		}
	default:
		target := d.majority
		if d.strategy == StrategyConstant {
			target = d.constant
		}
		for i := 0; i < n; i++ {
			for j, label := range d.classes {
				if label == target {
					out.Set(i, j, 1)
				}
			}
		}
	}
	return out, nil
}

// Classes returns the sorted class labels seen during Fit.
func (d *DummyClassifier) Classes() []float64 {
	return d.classes
}

// Package evaluation quantifies the sampling uncertainty of a scoring
// metric computed on a fixed, already-fitted model and a fixed held-out
// sample, via bootstrap resampling with percentile confidence intervals.
//
// Each resample draws |eval| indices with replacement using its own PCG
// stream seeded from baseSeed+i. The per-iteration seed mapping is an
// explicit correctness requirement: reusing one seed would make every
// resample identical. Because iteration i depends only on its own seed,
// the score sequence is identical whether iterations run sequentially or
// across the worker pool.
package evaluation

import (
	"math/rand/v2"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/modeleval/core/model"
	"github.com/YuminosukeSato/modeleval/core/parallel"
	"github.com/YuminosukeSato/modeleval/dataset"
	"github.com/YuminosukeSato/modeleval/pkg/errors"
	"github.com/YuminosukeSato/modeleval/pkg/log"
)

// MetricFunc scores a prediction against ground truth. Implementations
// must accept two equal-length label vectors and return a scalar in a
// fixed known range; degenerate cases (e.g. zero predicted positives)
// must yield a defined score, not an error. The metrics package satisfies
// this contract.
type MetricFunc func(yTrue, yPred *mat.VecDense) (float64, error)

// Below this many resamples the worker pool costs more than it saves.
const parallelThreshold = 16

// BootstrapScores resamples data with replacement nResamples times,
// scoring the predictor on each resample with metric. Iteration i uses a
// PCG stream seeded from baseSeed+i, so two calls with identical inputs
// and baseSeed yield identical score sequences, element for element.
//
// The predictor is treated as an opaque, externally-owned collaborator:
// it is never mutated here, and a panicking predictor is converted into
// an error rather than taking the process down.
//
// Errors:
//   - ValidationError: nResamples < 1
//   - ErrEmptyData: data is nil or empty
//   - DimensionError: the predictor returned a wrong-shaped prediction
//   - NumericalInstabilityError: a resample produced a NaN or Inf score
func BootstrapScores(predictor model.Predictor, data *dataset.Dataset, metric MetricFunc, nResamples int, baseSeed int64) ([]float64, error) {
	if nResamples < 1 {
		return nil, errors.NewValidationError("n_resamples", "must be at least 1", nResamples)
	}
	if predictor == nil || metric == nil {
		return nil, errors.NewValueError("BootstrapScores", "predictor and metric must be non-nil")
	}
	if data == nil || data.Len() == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	scores := make([]float64, nResamples)
	errs := make([]error, nResamples)

	parallel.ParallelizeWithThreshold(nResamples, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			scores[i], errs[i] = bootstrapOnce(predictor, data, metric, baseSeed+int64(i), i)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

// bootstrapOnce runs a single resample iteration with its own RNG stream.
func bootstrapOnce(predictor model.Predictor, data *dataset.Dataset, metric MetricFunc, seed int64, iteration int) (float64, error) {
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	n := data.Len()

	indices := make([]int, n)
	for j := range indices {
		indices[j] = r.IntN(n)
	}

	sub, err := data.Select(indices)
	if err != nil {
		return 0, err
	}

	var preds mat.Matrix
	err = errors.SafeExecute("predict", func() error {
		var perr error
		preds, perr = predictor.Predict(sub.X)
		return perr
	})
	if err != nil {
		return 0, errors.Wrapf(err, "bootstrap iteration %d", iteration)
	}

	rows, cols := preds.Dims()
	if rows != n || cols != 1 {
		return 0, errors.NewDimensionError("BootstrapScores", n, rows, 0)
	}
	predVec := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		predVec.SetVec(j, preds.At(j, 0))
	}

	score, err := metric(sub.Y, predVec)
	if err != nil {
		return 0, errors.Wrapf(err, "bootstrap iteration %d", iteration)
	}
	if err := errors.CheckScalar("bootstrap_score", score, iteration); err != nil {
		return 0, err
	}
	return score, nil
}

// Interval is a percentile bootstrap confidence interval together with
// the mean of the underlying score distribution. Immutable once produced.
type Interval struct {
	Mean            float64
	Lower           float64
	Upper           float64
	ConfidenceLevel float64
}

// ConfidenceInterval derives a percentile interval from the empirical
// score distribution: the ((1-level)/2)-th and (level+(1-level)/2)-th
// percentiles, linearly interpolated between order statistics
// (h = (n-1)p, the numpy default convention). The interval is
// non-decreasing in confidenceLevel. This is a statistical approximation
// over the observed scores, not an exact bound.
//
// Errors:
//   - ErrEmptyData: scores is empty
//   - ValidationError: confidenceLevel outside (0, 1)
//   - NumericalInstabilityError: scores contain NaN or Inf
func ConfidenceInterval(scores []float64, confidenceLevel float64) (Interval, error) {
	if len(scores) == 0 {
		return Interval{}, errors.WithStack(errors.ErrEmptyData)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return Interval{}, errors.NewValidationError("confidence_level", "must be in (0, 1)", confidenceLevel)
	}
	if err := errors.CheckNumericalStability("confidence_interval", scores, 0); err != nil {
		return Interval{}, err
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	alpha := 1 - confidenceLevel
	return Interval{
		Mean:            stat.Mean(scores, nil),
		Lower:           percentile(sorted, alpha/2),
		Upper:           percentile(sorted, confidenceLevel+alpha/2),
		ConfidenceLevel: confidenceLevel,
	}, nil
}

// percentile computes the p-th quantile of sorted values by linear
// interpolation between order statistics: h = (n-1)p.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// ClampInterval clips the interval bounds to [min, max] for metrics with
// a known valid range, e.g. [0, 1] for F1, precision, and recall.
func ClampInterval(iv Interval, min, max float64) Interval {
	iv.Lower = errors.ClipValue(iv.Lower, min, max)
	iv.Upper = errors.ClipValue(iv.Upper, min, max)
	iv.Mean = errors.ClipValue(iv.Mean, min, max)
	return iv
}

// Options configures Evaluate.
type Options struct {
	// NResamples is the number of bootstrap resamples (default 1000).
	NResamples int
	// BaseSeed seeds iteration i with BaseSeed+i (default 0).
	BaseSeed int64
	// ConfidenceLevel of the interval in (0, 1) (default 0.95).
	ConfidenceLevel float64
	// MetricName is used for logging only.
	MetricName string
	// Bounded clamps the interval to [0, 1].
	Bounded bool
}

// Report is the externally consumed result of a bootstrap evaluation.
type Report struct {
	Scores     []float64
	Interval   Interval
	MetricName string
}

// Evaluate runs BootstrapScores followed by ConfidenceInterval and logs
// the outcome. It is the one-call form of the estimator for callers that
// don't need the raw score sequence handling themselves.
func Evaluate(predictor model.Predictor, data *dataset.Dataset, metric MetricFunc, opts Options) (*Report, error) {
	if opts.NResamples == 0 {
		opts.NResamples = 1000
	}
	if opts.ConfidenceLevel == 0 {
		opts.ConfidenceLevel = 0.95
	}

	started := time.Now()
	scores, err := BootstrapScores(predictor, data, metric, opts.NResamples, opts.BaseSeed)
	if err != nil {
		return nil, err
	}
	iv, err := ConfidenceInterval(scores, opts.ConfidenceLevel)
	if err != nil {
		return nil, err
	}
	if opts.Bounded {
		iv = ClampInterval(iv, 0, 1)
	}

	log.GetLogger().Info("bootstrap evaluation complete",
		log.ComponentKey, "evaluation",
		log.OperationKey, "bootstrap",
		log.SamplesKey, data.Len(),
		log.ResamplesKey, opts.NResamples,
		log.ConfidenceKey, opts.ConfidenceLevel,
		log.MetricNameKey, opts.MetricName,
		log.MetricValueKey, iv.Mean,
		"lower", iv.Lower,
		"upper", iv.Upper,
		log.SeedKey, opts.BaseSeed,
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)

	return &Report{Scores: scores, Interval: iv, MetricName: opts.MetricName}, nil
}

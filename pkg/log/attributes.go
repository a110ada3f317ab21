// Package log defines standard attribute keys for model evaluation operations.
//
// Using these keys consistently enables structured log analysis and filtering
// across splitting, metric computation, and bootstrap estimation. The keys
// follow a hierarchical naming convention (e.g. "data.samples", "eval.resamples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model being evaluated.
	// Examples: "DummyClassifier", "LogisticRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "split", "kfold", "bootstrap", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "modelselection", "evaluation", "metrics"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of distinct label classes.
	ClassesKey = "data.classes"

	// ClassRatioKey is the fraction of records belonging to the positive class.
	ClassRatioKey = "data.class_ratio"
)

// Splitting and Cross-Validation
const (
	// TestFractionKey is the requested held-out fraction for a one-shot split.
	TestFractionKey = "split.fraction"

	// FoldsKey is the number of folds in K-fold generation.
	FoldsKey = "cv.folds"

	// SeedKey is the explicit random seed used by a randomized operation.
	SeedKey = "random.seed"
)

// Bootstrap Evaluation
const (
	// ResamplesKey is the number of bootstrap resamples.
	ResamplesKey = "eval.resamples"

	// ConfidenceKey is the confidence level of the interval.
	ConfidenceKey = "eval.confidence"

	// MetricNameKey names the metric being estimated.
	// Examples: "f1", "precision", "recall", "accuracy"
	MetricNameKey = "metric.name"

	// MetricValueKey carries a computed metric value.
	MetricValueKey = "metric.value"
)

// Performance
const (
	// DurationMsKey is the wall-clock duration of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

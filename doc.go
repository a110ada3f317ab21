// Package modeleval provides model evaluation utilities for Go,
// designed for backend services that need reproducible offline metrics.
//
// modeleval offers a scikit-learn-like API for stratified data splitting
// and bootstrap uncertainty estimation, so that evaluation pipelines
// written in Go behave the same way on every run with the same seed.
//
// # Features
//
// - Stratified Splitting: train/test splits and k-fold generation that preserve class proportions
// - Bootstrap Intervals: percentile confidence intervals for any scoring metric
// - Deterministic: every randomized operation takes an explicit seed
// - Parallel Resampling: bootstrap iterations run across CPU cores with bit-identical results
// - Robust Error Handling: structured error types with stack traces
//
// # Installation
//
// Install modeleval using go get:
//
//	go get github.com/YuminosukeSato/modeleval
//
// # Quick Start
//
// Here's a complete split-fit-evaluate pipeline:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/modeleval/dataset"
//	    "github.com/YuminosukeSato/modeleval/dummy"
//	    "github.com/YuminosukeSato/modeleval/evaluation"
//	    "github.com/YuminosukeSato/modeleval/metrics"
//	    "github.com/YuminosukeSato/modeleval/modelselection"
//	)
//
//	func main() {
//	    data, err := dataset.LoadCSV("churn.csv", "label")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    train, test, err := modelselection.TrainTestSplitDataset(data, 0.2, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := dummy.NewDummyClassifier()
//	    if err := clf.Fit(train.X, train.Y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    report, err := evaluation.Evaluate(clf, test, metrics.F1Score, evaluation.Options{
//	        MetricName: "f1",
//	        Bounded:    true,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("f1 = %.3f [%.3f, %.3f]\n",
//	        report.Interval.Mean, report.Interval.Lower, report.Interval.Upper)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: CSV-backed tabular data with labels
//   - modelselection: stratified train/test splits, KFold, StratifiedKFold
//   - metrics: binary classification metrics (accuracy, precision, recall, F1)
//   - evaluation: bootstrap resampling and percentile confidence intervals
//   - dummy: baseline classifiers for sanity-checking pipelines
//   - core/model: estimator interfaces and fitted-state tracking
//   - core/parallel: chunked CPU-parallel execution helper
//   - pkg/errors: structured error types and metric warnings
//   - pkg/log: structured logging built on zerolog
//
// # Error Handling
//
// All errors carry stack traces and can be inspected with errors.As:
//
//	_, _, err := modelselection.TrainTestSplit(y, 1.5, 0)
//	var verr *errors.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.ParamName) // "test_fraction"
//	}
//
// For more information, visit: https://github.com/YuminosukeSato/modeleval
package modeleval

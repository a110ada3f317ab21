// Package modelselection provides stratified dataset partitioning: a
// one-shot train/test split and (stratified) K-fold generation for
// cross-validation.
//
// Every randomized operation takes an explicit seed and is deterministic
// for a fixed seed; there is no process-wide random state. Stratified
// variants preserve each partition's class proportions relative to the
// full dataset, within the rounding of per-class group sizes.
package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/modeleval/dataset"
	"github.com/YuminosukeSato/modeleval/pkg/errors"
	"github.com/YuminosukeSato/modeleval/pkg/log"
)

// Fold represents a single train/validation split in cross-validation.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// Splitter defines the interface for cross-validation fold generators.
type Splitter interface {
	Split(y *mat.VecDense) ([]Fold, error)
	NSplits() int
}

// classIndices groups record indices by label value. Classes are returned
// in sorted order so callers that consume a shared RNG stay deterministic.
func classIndices(y *mat.VecDense) ([]float64, map[float64][]int) {
	groups := make(map[float64][]int)
	for i := 0; i < y.Len(); i++ {
		label := y.AtVec(i)
		groups[label] = append(groups[label], i)
	}
	classes := make([]float64, 0, len(groups))
	for label := range groups {
		classes = append(classes, label)
	}
	sort.Float64s(classes)
	return classes, groups
}

// TrainTestSplit partitions the indices of y into disjoint train and test
// sets whose class proportions match y's, within rounding of each class
// group's size.
//
// For each class, round(testFraction * groupSize) indices are drawn into
// the test set from a seeded shuffle of that class's indices; the rest go
// to train. The union of the two partitions is the full index set. Both
// slices are returned in ascending order. Deterministic for a fixed seed.
//
// Errors:
//   - ValidationError: testFraction outside (0, 1)
//   - ErrEmptyData: y has no elements
func TrainTestSplit(y *mat.VecDense, testFraction float64, seed int64) (trainIdx, testIdx []int, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewValidationError("test_fraction", "must be in (0, 1)", testFraction)
	}
	if y == nil || y.Len() == 0 {
		return nil, nil, errors.WithStack(errors.ErrEmptyData)
	}

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	classes, groups := classIndices(y)

	for _, label := range classes {
		indices := groups[label]
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		nTest := int(math.Round(testFraction * float64(len(indices))))
		testIdx = append(testIdx, indices[:nTest]...)
		trainIdx = append(trainIdx, indices[nTest:]...)
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx, nil
}

// TrainTestSplitDataset is TrainTestSplit applied to a whole Dataset.
// It materializes the two partitions as copies and logs the split shape.
func TrainTestSplitDataset(d *dataset.Dataset, testFraction float64, seed int64) (train, test *dataset.Dataset, err error) {
	if d == nil || d.Len() == 0 {
		return nil, nil, errors.WithStack(errors.ErrEmptyData)
	}

	trainIdx, testIdx, err := TrainTestSplit(d.Y, testFraction, seed)
	if err != nil {
		return nil, nil, err
	}

	train, err = d.Select(trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = d.Select(testIdx)
	if err != nil {
		return nil, nil, err
	}

	log.GetLogger().Info("stratified train/test split",
		log.ComponentKey, "modelselection",
		log.OperationKey, "split",
		log.SamplesKey, d.Len(),
		log.TestFractionKey, testFraction,
		log.SeedKey, seed,
		"train_samples", train.Len(),
		"test_samples", test.Len(),
	)
	return train, test, nil
}

// KFold implements an (optionally shuffled) k-fold splitter without
// stratification. Kept for balanced datasets and regression-style use;
// classification workflows normally want StratifiedKFold.
type KFold struct {
	nSplits int
	shuffle bool
	seed    int64
}

// NewKFold creates a k-fold splitter.
//
// Errors:
//   - ValidationError: nSplits < 2
func NewKFold(nSplits int, shuffle bool, seed int64) (*KFold, error) {
	if nSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be at least 2", nSplits)
	}
	return &KFold{nSplits: nSplits, shuffle: shuffle, seed: seed}, nil
}

// NSplits returns the number of folds.
func (kf *KFold) NSplits() int { return kf.nSplits }

// Split generates the k folds over the indices of y. Fold sizes differ by
// at most one; when the sample count is not divisible by k, the first
// (count mod k) folds receive the extra member.
//
// Errors:
//   - ErrEmptyData: y has no elements
//   - InsufficientClassError: fewer samples than folds
func (kf *KFold) Split(y *mat.VecDense) ([]Fold, error) {
	if y == nil || y.Len() == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	n := y.Len()
	if n < kf.nSplits {
		return nil, errors.NewInsufficientClassError("KFold.Split", math.NaN(), n, kf.nSplits)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.seed), uint64(kf.seed)))
		r.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.nSplits)
	foldSize := n / kf.nSplits
	remainder := n % kf.nSplits

	current := 0
	for i := 0; i < kf.nSplits; i++ {
		size := foldSize
		if i < remainder {
			size++
		}
		folds[i].TestIndices = append([]int(nil), indices[current:current+size]...)
		current += size
	}

	fillTrainSets(folds, n)
	return folds, nil
}

// StratifiedKFold implements stratified k-fold cross-validation: each
// class's shuffled indices are cut into k nearly-equal contiguous groups
// and fold i's validation set is the union of group i across classes.
type StratifiedKFold struct {
	nSplits int
	seed    int64
}

// NewStratifiedKFold creates a stratified k-fold splitter.
//
// Errors:
//   - ValidationError: nSplits < 2
func NewStratifiedKFold(nSplits int, seed int64) (*StratifiedKFold, error) {
	if nSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be at least 2", nSplits)
	}
	return &StratifiedKFold{nSplits: nSplits, seed: seed}, nil
}

// NSplits returns the number of folds.
func (skf *StratifiedKFold) NSplits() int { return skf.nSplits }

// Split generates the k stratified folds over the indices of y.
//
// Within each class the group sizes differ by at most one; when a class
// count is not divisible by k, the first (count mod k) folds receive the
// extra member. This remainder policy is part of the contract: fold sizes
// are reproducible for a fixed seed. Every index appears in exactly one
// validation fold and in the training set of all other folds.
//
// Errors:
//   - ErrEmptyData: y has no elements
//   - InsufficientClassError: a class has fewer than k members
func (skf *StratifiedKFold) Split(y *mat.VecDense) ([]Fold, error) {
	if y == nil || y.Len() == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	n := y.Len()

	classes, groups := classIndices(y)
	for _, label := range classes {
		if len(groups[label]) < skf.nSplits {
			return nil, errors.NewInsufficientClassError("StratifiedKFold.Split",
				label, len(groups[label]), skf.nSplits)
		}
	}

	r := rand.New(rand.NewPCG(uint64(skf.seed), uint64(skf.seed)))
	folds := make([]Fold, skf.nSplits)

	// Distribute each class across folds
	for _, label := range classes {
		indices := groups[label]
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		nClass := len(indices)
		groupSize := nClass / skf.nSplits
		remainder := nClass % skf.nSplits

		current := 0
		for i := 0; i < skf.nSplits; i++ {
			size := groupSize
			if i < remainder {
				size++
			}
			folds[i].TestIndices = append(folds[i].TestIndices, indices[current:current+size]...)
			current += size
		}
	}

	fillTrainSets(folds, n)

	log.GetLogger().Debug("stratified k-fold generated",
		log.ComponentKey, "modelselection",
		log.OperationKey, "kfold",
		log.SamplesKey, n,
		log.FoldsKey, skf.nSplits,
		log.SeedKey, skf.seed,
		log.ClassesKey, len(classes),
	)
	return folds, nil
}

// fillTrainSets completes each fold with the complement of its validation
// set and sorts both index slices.
func fillTrainSets(folds []Fold, n int) {
	for i := range folds {
		inTest := make(map[int]bool, len(folds[i].TestIndices))
		for _, idx := range folds[i].TestIndices {
			inTest[idx] = true
		}
		train := make([]int, 0, n-len(folds[i].TestIndices))
		for j := 0; j < n; j++ {
			if !inTest[j] {
				train = append(train, j)
			}
		}
		folds[i].TrainIndices = train
		sort.Ints(folds[i].TestIndices)
	}
}

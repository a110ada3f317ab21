package modelselection

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/modeleval/dataset"
	"github.com/YuminosukeSato/modeleval/pkg/errors"
)

func labelsVec(labels []float64) *mat.VecDense {
	return mat.NewVecDense(len(labels), labels)
}

func countLabel(y *mat.VecDense, indices []int, label float64) int {
	count := 0
	for _, idx := range indices {
		if y.AtVec(idx) == label {
			count++
		}
	}
	return count
}

func TestTrainTestSplit_Stratification(t *testing.T) {
	// 7 of class 0, 3 of class 1 (ratio 0.3), test fraction 0.2:
	// expect round(0.2*7)=1 and round(0.2*3)=1 per class in test.
	y := labelsVec([]float64{0, 0, 0, 0, 0, 0, 0, 1, 1, 1})

	trainIdx, testIdx, err := TrainTestSplit(y, 0.2, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	if len(testIdx) != 2 {
		t.Errorf("test size = %d, want 2", len(testIdx))
	}
	if len(trainIdx) != 8 {
		t.Errorf("train size = %d, want 8", len(trainIdx))
	}
	if got := countLabel(y, testIdx, 1); got != 1 {
		t.Errorf("class 1 in test = %d, want 1", got)
	}
	if got := countLabel(y, trainIdx, 1); got != 2 {
		t.Errorf("class 1 in train = %d, want 2", got)
	}

	// Disjoint, union is the full index set
	seen := make(map[int]int)
	for _, idx := range trainIdx {
		seen[idx]++
	}
	for _, idx := range testIdx {
		seen[idx]++
	}
	if len(seen) != y.Len() {
		t.Errorf("union covers %d indices, want %d", len(seen), y.Len())
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("index %d appears %d times across partitions", idx, n)
		}
	}
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	y := labelsVec([]float64{0, 1, 0, 1, 0, 1, 0, 0, 0, 1, 1, 0})

	train1, test1, err := TrainTestSplit(y, 0.25, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}
	train2, test2, err := TrainTestSplit(y, 0.25, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit() error = %v", err)
	}

	if len(train1) != len(train2) || len(test1) != len(test2) {
		t.Fatalf("sizes differ between identical calls")
	}
	for i := range train1 {
		if train1[i] != train2[i] {
			t.Errorf("train[%d] = %d vs %d for same seed", i, train1[i], train2[i])
		}
	}
	for i := range test1 {
		if test1[i] != test2[i] {
			t.Errorf("test[%d] = %d vs %d for same seed", i, test1[i], test2[i])
		}
	}
}

func TestTrainTestSplit_Errors(t *testing.T) {
	tests := []struct {
		name     string
		labels   []float64
		fraction float64
	}{
		{name: "fraction zero", labels: []float64{0, 1}, fraction: 0},
		{name: "fraction one", labels: []float64{0, 1}, fraction: 1},
		{name: "fraction negative", labels: []float64{0, 1}, fraction: -0.5},
		{name: "fraction above one", labels: []float64{0, 1}, fraction: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := TrainTestSplit(labelsVec(tt.labels), tt.fraction, 1)
			if err == nil {
				t.Fatal("TrainTestSplit() expected error, got nil")
			}
			var verr *errors.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}

	t.Run("nil labels", func(t *testing.T) {
		_, _, err := TrainTestSplit(nil, 0.2, 1)
		if !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("error = %v, want ErrEmptyData", err)
		}
	})
}

func TestTrainTestSplitDataset(t *testing.T) {
	X := mat.NewDense(10, 2, []float64{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
	})
	y := labelsVec([]float64{0, 0, 0, 0, 0, 0, 0, 1, 1, 1})
	d, err := dataset.New(X, y, []string{"a", "b"}, "target")
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}

	train, test, err := TrainTestSplitDataset(d, 0.2, 42)
	if err != nil {
		t.Fatalf("TrainTestSplitDataset() error = %v", err)
	}
	if train.Len()+test.Len() != d.Len() {
		t.Errorf("partition sizes %d+%d != %d", train.Len(), test.Len(), d.Len())
	}
	if test.Len() != 2 {
		t.Errorf("test.Len() = %d, want 2", test.Len())
	}
	if train.NumFeatures() != 2 || test.NumFeatures() != 2 {
		t.Errorf("feature dimensionality not preserved")
	}
}

func TestStratifiedKFold_PartitionProperties(t *testing.T) {
	// 8 of class 0, 4 of class 1, k=4: every fold gets 2 zeros and 1 one.
	y := labelsVec([]float64{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1})

	skf, err := NewStratifiedKFold(4, 99)
	if err != nil {
		t.Fatalf("NewStratifiedKFold() error = %v", err)
	}
	folds, err := skf.Split(y)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(folds) != 4 {
		t.Fatalf("len(folds) = %d, want 4", len(folds))
	}

	validationSeen := make(map[int]int)
	for i, fold := range folds {
		if len(fold.TestIndices) != 3 {
			t.Errorf("fold %d validation size = %d, want 3", i, len(fold.TestIndices))
		}
		if got := countLabel(y, fold.TestIndices, 1); got != 1 {
			t.Errorf("fold %d has %d positives in validation, want 1", i, got)
		}
		if len(fold.TrainIndices)+len(fold.TestIndices) != y.Len() {
			t.Errorf("fold %d sizes %d+%d != %d", i, len(fold.TrainIndices), len(fold.TestIndices), y.Len())
		}

		// Train must be the exact complement of validation
		inTest := make(map[int]bool)
		for _, idx := range fold.TestIndices {
			inTest[idx] = true
			validationSeen[idx]++
		}
		for _, idx := range fold.TrainIndices {
			if inTest[idx] {
				t.Errorf("fold %d: index %d in both train and validation", i, idx)
			}
		}
	}

	// Every index appears in validation exactly once across folds
	if len(validationSeen) != y.Len() {
		t.Errorf("validation union covers %d indices, want %d", len(validationSeen), y.Len())
	}
	for idx, n := range validationSeen {
		if n != 1 {
			t.Errorf("index %d appears in %d validation folds, want 1", idx, n)
		}
	}
}

func TestStratifiedKFold_RemainderToEarlierFolds(t *testing.T) {
	// 7 of class 0 across k=3: group sizes must be 3, 2, 2.
	y := labelsVec([]float64{0, 0, 0, 0, 0, 0, 0, 1, 1, 1})

	skf, err := NewStratifiedKFold(3, 5)
	if err != nil {
		t.Fatalf("NewStratifiedKFold() error = %v", err)
	}
	folds, err := skf.Split(y)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	wantZeros := []int{3, 2, 2}
	for i, fold := range folds {
		if got := countLabel(y, fold.TestIndices, 0); got != wantZeros[i] {
			t.Errorf("fold %d zeros in validation = %d, want %d", i, got, wantZeros[i])
		}
		if got := countLabel(y, fold.TestIndices, 1); got != 1 {
			t.Errorf("fold %d ones in validation = %d, want 1", i, got)
		}
	}
}

func TestStratifiedKFold_Deterministic(t *testing.T) {
	y := labelsVec([]float64{0, 1, 0, 1, 0, 1, 0, 0, 0, 1, 1, 0})

	skf, _ := NewStratifiedKFold(3, 11)
	folds1, err := skf.Split(y)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	folds2, err := skf.Split(y)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	for i := range folds1 {
		if len(folds1[i].TestIndices) != len(folds2[i].TestIndices) {
			t.Fatalf("fold %d validation sizes differ", i)
		}
		for j := range folds1[i].TestIndices {
			if folds1[i].TestIndices[j] != folds2[i].TestIndices[j] {
				t.Errorf("fold %d validation[%d] differs between identical calls", i, j)
			}
		}
	}
}

func TestStratifiedKFold_Errors(t *testing.T) {
	t.Run("k below 2", func(t *testing.T) {
		_, err := NewStratifiedKFold(1, 0)
		var verr *errors.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("class smaller than k", func(t *testing.T) {
		y := labelsVec([]float64{0, 0, 0, 0, 1, 1}) // class 1 has 2 < 3 members
		skf, _ := NewStratifiedKFold(3, 0)
		_, err := skf.Split(y)
		var ierr *errors.InsufficientClassError
		if !errors.As(err, &ierr) {
			t.Fatalf("error = %v, want InsufficientClassError", err)
		}
		if ierr.Class != 1 || ierr.Count != 2 || ierr.Required != 3 {
			t.Errorf("InsufficientClassError = %+v, want class 1 count 2 required 3", ierr)
		}
	})

	t.Run("nil labels", func(t *testing.T) {
		skf, _ := NewStratifiedKFold(2, 0)
		_, err := skf.Split(nil)
		if !errors.Is(err, errors.ErrEmptyData) {
			t.Errorf("error = %v, want ErrEmptyData", err)
		}
	})
}

func TestStratifiedKFold_RatioApproximatesGlobal(t *testing.T) {
	// 30 samples, ratio 0.3
	labels := make([]float64, 30)
	for i := 21; i < 30; i++ {
		labels[i] = 1
	}
	y := labelsVec(labels)

	skf, _ := NewStratifiedKFold(3, 123)
	folds, err := skf.Split(y)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	for i, fold := range folds {
		ratio := float64(countLabel(y, fold.TestIndices, 1)) / float64(len(fold.TestIndices))
		if math.Abs(ratio-0.3) > 1e-9 {
			t.Errorf("fold %d validation ratio = %v, want 0.3", i, ratio)
		}
	}
}

func TestKFold_Split(t *testing.T) {
	y := labelsVec(make([]float64, 10))

	kf, err := NewKFold(3, true, 42)
	if err != nil {
		t.Fatalf("NewKFold() error = %v", err)
	}
	folds, err := kf.Split(y)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	wantSizes := []int{4, 3, 3} // remainder goes to the first fold
	seen := make(map[int]int)
	for i, fold := range folds {
		if len(fold.TestIndices) != wantSizes[i] {
			t.Errorf("fold %d size = %d, want %d", i, len(fold.TestIndices), wantSizes[i])
		}
		for _, idx := range fold.TestIndices {
			seen[idx]++
		}
	}
	if len(seen) != 10 {
		t.Errorf("validation union covers %d indices, want 10", len(seen))
	}
}

func TestKFold_Errors(t *testing.T) {
	if _, err := NewKFold(1, false, 0); err == nil {
		t.Error("NewKFold(1) expected error, got nil")
	}

	kf, _ := NewKFold(5, false, 0)
	y := labelsVec(make([]float64, 3))
	if _, err := kf.Split(y); err == nil {
		t.Error("Split() with fewer samples than folds expected error, got nil")
	}
}

package errors

import (
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "NotFittedError",
			err:  NewNotFittedError("DummyClassifier", "Predict"),
			want: "this model is not fitted yet",
		},
		{
			name: "DimensionError rows",
			err:  NewDimensionError("TrainTestSplit", 10, 8, 0),
			want: "dimension mismatch on axis 0 (rows). Expected 10, got 8",
		},
		{
			name: "DimensionError features",
			err:  NewDimensionError("Predict", 3, 2, 1),
			want: "dimension mismatch on axis 1 (features)",
		},
		{
			name: "ValidationError",
			err:  NewValidationError("test_fraction", "must be in (0, 1)", 1.5),
			want: "validation failed for parameter 'test_fraction'",
		},
		{
			name: "ValueError",
			err:  NewValueError("F1Score", "empty vector"),
			want: "modeleval: F1Score: empty vector",
		},
		{
			name: "InsufficientClassError",
			err:  NewInsufficientClassError("StratifiedKFold.Split", 1, 2, 5),
			want: "class 1 has only 2 member(s), need at least 5",
		},
		{
			name: "NumericalInstabilityError",
			err:  NewNumericalInstabilityError("bootstrap_score", []float64{1.5}, 3),
			want: "numerical instability detected in bootstrap_score at iteration 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), tt.want) {
				t.Errorf("Error() = %q, want substring %q", tt.err.Error(), tt.want)
			}
		})
	}
}

func TestErrorsAs_ExtractsStructuredType(t *testing.T) {
	err := Wrap(NewInsufficientClassError("Split", 1, 2, 3), "generating folds")

	var ierr *InsufficientClassError
	if !As(err, &ierr) {
		t.Fatalf("As() failed for wrapped InsufficientClassError: %v", err)
	}
	if ierr.Count != 2 || ierr.Required != 3 {
		t.Errorf("extracted = %+v, want Count 2 Required 3", ierr)
	}
}

func TestErrorsIs_Sentinel(t *testing.T) {
	err := Wrap(ErrEmptyData, "loading dataset")
	if !Is(err, ErrEmptyData) {
		t.Errorf("Is() = false for wrapped ErrEmptyData")
	}
}

func TestWarn_CustomHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(error) {})

	warning := NewUndefinedMetricWarning("precision", "no predicted positives", 0)
	Warn(warning)

	var got *UndefinedMetricWarning
	if !As(captured, &got) {
		t.Fatalf("captured = %v, want UndefinedMetricWarning", captured)
	}
	if got.Metric != "precision" {
		t.Errorf("Metric = %q, want %q", got.Metric, "precision")
	}
}

func TestWarn_ZerologFuncTakesPriority(t *testing.T) {
	handlerCalled := false
	zerologCalled := false
	SetWarningHandler(func(error) { handlerCalled = true })
	SetZerologWarnFunc(func(error) { zerologCalled = true })
	defer func() {
		SetZerologWarnFunc(nil)
		SetWarningHandler(func(error) {})
	}()

	Warn(New("test warning"))

	if !zerologCalled {
		t.Error("zerolog warn func not called")
	}
	if handlerCalled {
		t.Error("fallback handler called despite zerolog func being set")
	}
}

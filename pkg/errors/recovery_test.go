package errors

import (
	"math"
	"strings"
	"testing"
)

func TestRecover_ConvertsPanicToError(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "risky operation")
		panic("boom")
	}

	err := fn()
	if err == nil {
		t.Fatal("expected error from recovered panic, got nil")
	}
	var perr *PanicError
	if !As(err, &perr) {
		t.Fatalf("error = %v, want PanicError", err)
	}
	if perr.Operation != "risky operation" {
		t.Errorf("Operation = %q, want %q", perr.Operation, "risky operation")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, want substring %q", err.Error(), "boom")
	}
}

func TestRecover_NoPanic(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "calm operation")
		return nil
	}
	if err := fn(); err != nil {
		t.Errorf("error = %v, want nil", err)
	}
}

func TestSafeExecute(t *testing.T) {
	t.Run("passes through nil", func(t *testing.T) {
		if err := SafeExecute("op", func() error { return nil }); err != nil {
			t.Errorf("error = %v, want nil", err)
		}
	})

	t.Run("passes through returned error", func(t *testing.T) {
		want := New("model failure")
		err := SafeExecute("op", func() error { return want })
		if !Is(err, want) {
			t.Errorf("error = %v, want %v", err, want)
		}
	})

	t.Run("recovers panic", func(t *testing.T) {
		err := SafeExecute("predict", func() error { panic("predictor exploded") })
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "predict") {
			t.Errorf("Error() = %q, want operation name included", err.Error())
		}
	})
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("score", 0.5, 0); err != nil {
		t.Errorf("CheckScalar(0.5) = %v, want nil", err)
	}
	if err := CheckScalar("score", math.NaN(), 1); err == nil {
		t.Error("CheckScalar(NaN) = nil, want error")
	}
	if err := CheckScalar("score", math.Inf(1), 2); err == nil {
		t.Error("CheckScalar(+Inf) = nil, want error")
	}
}

func TestSafeDivideAndClip(t *testing.T) {
	if got := SafeDivide(1, 0); got != 0 {
		t.Errorf("SafeDivide(1, 0) = %v, want 0", got)
	}
	if got := SafeDivide(6, 3); got != 2 {
		t.Errorf("SafeDivide(6, 3) = %v, want 2", got)
	}
	if got := ClipValue(1.2, 0, 1); got != 1 {
		t.Errorf("ClipValue(1.2, 0, 1) = %v, want 1", got)
	}
	if got := ClipValue(-0.2, 0, 1); got != 0 {
		t.Errorf("ClipValue(-0.2, 0, 1) = %v, want 0", got)
	}
	if got := ClipValue(0.4, 0, 1); got != 0.4 {
		t.Errorf("ClipValue(0.4, 0, 1) = %v, want 0.4", got)
	}
}

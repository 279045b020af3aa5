package scopestack

import (
	"errors"
	"testing"
)

// expectOrderPanic runs fn and asserts it panics with an *OrderError wrapping want.
func expectOrderPanic(t *testing.T, want error, fn func()) *OrderError {
	t.Helper()
	var recovered any
	func() {
		defer func() {
			recovered = recover()
		}()
		fn()
	}()
	if recovered == nil {
		t.Fatalf("expected panic wrapping %v, got none", want)
	}
	orderErr, ok := AsOrderError(recovered)
	if !ok {
		t.Fatalf("expected *OrderError panic, got %T: %v", recovered, recovered)
	}
	if !errors.Is(orderErr, want) {
		t.Fatalf("expected panic wrapping %v, got %v", want, orderErr)
	}
	return orderErr
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

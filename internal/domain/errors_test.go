package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"validation", NewValidationError("type", "must be movie or character"), KindValidation},
		{"store", NewStoreError("insert", errors.New("connection refused")), KindStore},
		{"wrapped store", fmt.Errorf("add favorite: %w", NewStoreError("list", errors.New("eof"))), KindStore},
		{"upstream", &UpstreamError{Resource: "films", Status: 500, Err: errors.New("bad gateway")}, KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewStoreError(t *testing.T) {
	if NewStoreError("insert", nil) != nil {
		t.Error("NewStoreError(nil) should be nil")
	}

	inner := NewStoreError("insert", context.DeadlineExceeded)
	outer := NewStoreError("list", inner)
	if outer != inner {
		t.Errorf("NewStoreError() rewrapped an existing StoreError: %v", outer)
	}
	if !errors.Is(outer, context.DeadlineExceeded) {
		t.Error("StoreError should unwrap to the cause")
	}
}

func TestUpstreamError_Timeout(t *testing.T) {
	timeout := &UpstreamError{Resource: "people", Err: fmt.Errorf("get page: %w", context.DeadlineExceeded)}
	if !timeout.Timeout() {
		t.Error("Timeout() = false, want true")
	}

	status := &UpstreamError{Resource: "people", Status: 503, Err: errors.New("unavailable")}
	if status.Timeout() {
		t.Error("Timeout() = true, want false")
	}
	if got, want := status.Error(), "catalog people: status 503: unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

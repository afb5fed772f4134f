package services_test

import (
	"errors"
	"fmt"
	"testing"

	"moviesphere/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := fmt.Errorf("stat failed")
	err := services.Wrap(services.ErrModelNotFound, "analysis", "validate", "actor model", base)
	if !errors.Is(err, services.ErrModelNotFound) {
		t.Fatalf("marker not preserved: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause not preserved: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker: %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{services.Wrap(services.ErrModelNotFound, "a", "b", "", nil), true},
		{services.Wrap(services.ErrFrameSource, "a", "b", "", nil), true},
		{services.Wrap(services.ErrInvalidArgument, "a", "b", "", nil), true},
		{services.Wrap(services.ErrExternalTool, "a", "b", "", nil), false},
		{services.Wrap(services.ErrTransient, "a", "b", "", nil), false},
	}
	for _, tc := range cases {
		if got := services.IsFatal(tc.err); got != tc.want {
			t.Errorf("IsFatal(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

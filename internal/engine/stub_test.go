//go:build !whisper

package engine

import (
	"context"
	"errors"
	"testing"
)

func TestStubLoadFailsUnavailable(t *testing.T) {
	eng := New()
	_, err := eng.Load(context.Background(), Spec{Model: "small.en", Device: "cpu", ComputeType: "int8"})
	if err == nil {
		t.Fatalf("expected stub load to fail")
	}
	if !IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if IsUnavailable(errors.New("other")) {
		t.Fatalf("IsUnavailable matched a plain error")
	}
	if Built() {
		t.Fatalf("stub build should report Built()=false")
	}
}

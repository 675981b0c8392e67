//go:build !whisper

package engine

// This file provides a no-CGO stub for the whisper engine. It is compiled
// when the 'whisper' build tag is NOT set, keeping default builds and CI
// CGO-free. The real adapter lives in adapter_whisper.go (tagged 'whisper').

import "context"

// whisperBuilt indicates whether real whisper support was compiled in.
var whisperBuilt = false

// stubEngine satisfies Engine but refuses to load models, so binaries built
// without the tag report a clear in-band error instead of mocking inference.
type stubEngine struct{}

// New returns the stub engine.
func New() Engine { return stubEngine{} }

func (stubEngine) Load(ctx context.Context, spec Spec) (Model, error) {
	return nil, ErrUnavailable("whisper support not built (missing 'whisper' build tag)")
}

// Package engine abstracts the speech-to-text runtime used by the worker.
// The real implementation binds whisper.cpp and is only compiled with the
// 'whisper' build tag; default builds get a stub that fails fast.
package engine

import "context"

// Spec identifies the model to load.
type Spec struct {
	// Model name (e.g. "small.en") or a direct path to a ggml model file.
	Model string
	// Device to run on (e.g. "cpu").
	Device string
	// Compute precision (e.g. "int8").
	ComputeType string
	// Optional model storage directory. Empty means the engine default.
	CacheDir string
}

// TranscribeOptions configures a single transcription call.
type TranscribeOptions struct {
	Language string
	BeamSize int
	// Decoding policy. The worker pins all three off.
	ConditionOnPrevText bool
	Timestamps          bool
	VADFilter           bool
}

// Segment is one piece of recognized text, in utterance order.
type Segment struct {
	Text string
}

// SegmentReader is a finite, forward-only, single-pass stream of segments.
// Next returns io.EOF after the last segment.
type SegmentReader interface {
	Next() (Segment, error)
}

// Model is a loaded speech model. Transcribe may be called repeatedly;
// Close releases native resources.
type Model interface {
	Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (SegmentReader, error)
	Close() error
}

// Engine loads models. Load is slow and fallible; callers cache the result.
type Engine interface {
	Load(ctx context.Context, spec Spec) (Model, error)
}

//go:build whisper

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	wav "github.com/go-audio/wav"

	"whisperd/internal/common/fsutil"
)

// whisperBuilt indicates this binary was compiled with real whisper support.
var whisperBuilt = true

// whisperEngine loads ggml models via the whisper.cpp Go bindings.
type whisperEngine struct{}

// New returns the whisper.cpp-backed engine.
func New() Engine { return whisperEngine{} }

func (whisperEngine) Load(ctx context.Context, spec Spec) (Model, error) {
	path, err := resolveModelPath(spec)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(spec.Device) != "cpu" {
		return nil, fmt.Errorf("unsupported device: %s (whisper.cpp bindings run on cpu)", spec.Device)
	}
	// Compute precision is baked into the ggml file; the requested
	// compute_type only participates in cache identity.
	m, err := whisper.New(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", spec.Model, err)
	}
	return &whisperModel{model: m}, nil
}

// resolveModelPath maps a model name to a ggml file. A name that is already a
// path to an existing file wins; otherwise ggml-<name>.bin is looked up in
// the cache dir (engine default ~/.cache/whisper when unset).
func resolveModelPath(spec Spec) (string, error) {
	name := strings.TrimSpace(spec.Model)
	if fsutil.PathExists(name) {
		return name, nil
	}
	dir := strings.TrimSpace(spec.CacheDir)
	if dir == "" {
		dir = "~/.cache/whisper"
	}
	dir, err := fsutil.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "ggml-"+name+".bin")
	if !fsutil.PathExists(p) {
		return "", fmt.Errorf("unknown model %q: %s not found", name, p)
	}
	return p, nil
}

type whisperModel struct {
	model whisper.Model
}

func (m *whisperModel) Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (SegmentReader, error) {
	samples, err := decodeWAV(audioPath)
	if err != nil {
		return nil, err
	}
	wctx, err := m.model.NewContext()
	if err != nil {
		return nil, err
	}
	if err := wctx.SetLanguage(opts.Language); err != nil {
		return nil, fmt.Errorf("language %q: %w", opts.Language, err)
	}
	if opts.BeamSize > 0 {
		wctx.SetBeamSize(opts.BeamSize)
	}
	wctx.SetTokenTimestamps(opts.Timestamps)
	// No VAD or prior-text conditioning in the bindings; both default off,
	// matching the pinned policy.
	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return segmentReader{ctx: wctx}, nil
}

func (m *whisperModel) Close() error {
	if m.model != nil {
		err := m.model.Close()
		m.model = nil
		return err
	}
	return nil
}

// segmentReader adapts the context's NextSegment iteration, which already
// yields io.EOF after the last segment.
type segmentReader struct {
	ctx whisper.Context
}

func (r segmentReader) Next() (Segment, error) {
	seg, err := r.ctx.NextSegment()
	if err != nil {
		return Segment{}, err
	}
	return Segment{Text: seg.Text}, nil
}

// decodeWAV reads a mono 16 kHz WAV file into float32 samples as expected by
// whisper.cpp.
func decodeWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode audio %s: %w", path, err)
	}
	if dec.SampleRate != whisper.SampleRate {
		return nil, fmt.Errorf("unsupported sample rate %d (want %d)", dec.SampleRate, whisper.SampleRate)
	}
	if dec.NumChans != 1 {
		return nil, fmt.Errorf("unsupported channel count %d (want mono)", dec.NumChans)
	}
	return buf.AsFloat32Buffer().Data, nil
}

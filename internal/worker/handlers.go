package worker

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"whisperd/internal/engine"
	"whisperd/pkg/types"
)

// orDefault trims v and falls back to def when nothing remains.
func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

func (w *Worker) handleTranscribe(ctx context.Context, req types.Request) (any, error) {
	audioPath := strings.TrimSpace(req.AudioPath)
	if audioPath == "" {
		return nil, errMissingAudioPath()
	}
	model := orDefault(req.Model, w.defaults.Model)
	device := orDefault(req.Device, w.defaults.Device)
	computeType := orDefault(req.ComputeType, w.defaults.ComputeType)
	language := orDefault(req.Language, w.defaults.Language)
	beamSize := w.defaults.BeamSize
	if req.BeamSize != nil {
		// Truncate toward zero; non-numeric values are rejected at decode.
		beamSize = int(*req.BeamSize)
	}

	start := time.Now()
	m, err := w.cache.GetModel(ctx, model, device, computeType)
	if err != nil {
		return nil, err
	}
	segs, err := m.Transcribe(ctx, audioPath, engine.TranscribeOptions{
		Language:            language,
		BeamSize:            beamSize,
		ConditionOnPrevText: false,
		Timestamps:          false,
		VADFilter:           false,
	})
	if err != nil {
		return nil, err
	}
	text, err := joinSegments(segs)
	if err != nil {
		return nil, err
	}
	return types.TranscribeResponse{
		ID:          req.ID,
		OK:          true,
		Text:        text,
		InferenceMS: time.Since(start).Milliseconds(),
	}, nil
}

func (w *Worker) handlePreload(ctx context.Context, req types.Request) (any, error) {
	model := orDefault(req.Model, w.defaults.Model)
	device := orDefault(req.Device, w.defaults.Device)
	computeType := orDefault(req.ComputeType, w.defaults.ComputeType)

	start := time.Now()
	if _, err := w.cache.GetModel(ctx, model, device, computeType); err != nil {
		return nil, err
	}
	return types.PreloadResponse{
		ID:          req.ID,
		OK:          true,
		Model:       model,
		Device:      device,
		ComputeType: computeType,
		LoadMS:      time.Since(start).Milliseconds(),
	}, nil
}

// joinSegments drains the single-pass reader, trimming each segment,
// dropping empties, and joining the rest with single spaces.
func joinSegments(r engine.SegmentReader) (string, error) {
	var pieces []string
	for {
		seg, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if t := strings.TrimSpace(seg.Text); t != "" {
			pieces = append(pieces, t)
		}
	}
	return strings.TrimSpace(strings.Join(pieces, " ")), nil
}

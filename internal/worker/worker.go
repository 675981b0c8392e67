// Package worker implements the stdio protocol loop: newline-delimited JSON
// requests in, exactly one JSON response line per well-formed request out.
// No per-request failure may terminate the loop; it ends only at EOF.
package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"whisperd/internal/runtime"
	"whisperd/pkg/types"
)

// Defaults are substituted for absent or blank-after-trim request fields.
type Defaults struct {
	Model       string
	Device      string
	ComputeType string
	Language    string
	BeamSize    int
}

// BuiltinDefaults returns the protocol's documented defaults.
func BuiltinDefaults() Defaults {
	return Defaults{
		Model:       "small.en",
		Device:      "cpu",
		ComputeType: "int8",
		Language:    "en",
		BeamSize:    1,
	}
}

// Worker drives the protocol loop over one input/output stream pair.
type Worker struct {
	cache    *runtime.Cache
	in       io.Reader
	out      io.Writer
	log      zerolog.Logger
	defaults Defaults
}

// New wires a worker. The cache is owned by the caller and shared with the
// status API; the worker is its only mutator.
func New(cache *runtime.Cache, in io.Reader, out io.Writer, log zerolog.Logger, d Defaults) *Worker {
	return &Worker{cache: cache, in: in, out: out, log: log, defaults: d}
}

// Run processes input lines until EOF. Empty lines are skipped without a
// response; every other line yields exactly one response line, flushed
// immediately. Lines have no length limit. Returns nil on EOF, or the error
// that broke the streams.
func (w *Worker) Run(ctx context.Context) error {
	r := bufio.NewReaderSize(w.in, 64*1024)
	for {
		raw, err := r.ReadBytes('\n')
		line := bytes.TrimSpace(raw)
		if len(line) > 0 {
			id, resp := w.process(ctx, line)
			if werr := w.write(id, resp); werr != nil {
				return fmt.Errorf("write response: %w", werr)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// process turns one non-empty input line into a response value plus the id
// it belongs to. All failure modes, including handler panics, end up as a
// FailureResponse here.
func (w *Worker) process(ctx context.Context, line []byte) (string, any) {
	start := time.Now()
	var req types.Request
	if err := json.Unmarshal(line, &req); err != nil {
		id := ""
		msg := "invalid json: " + err.Error()
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// The envelope parsed; keep the id and name the offending field.
			id = req.ID
			msg = err.Error()
		}
		w.observe("invalid", "error", start)
		w.log.Warn().Str("id", id).Msg(msg)
		return id, types.FailureResponse{ID: id, OK: false, Error: msg}
	}

	op := strings.ToLower(strings.TrimSpace(req.Op))
	label := "unknown"
	if op == "transcribe" || op == "preload" {
		label = op
	}
	resp, err := w.dispatch(ctx, op, req)
	if err != nil {
		w.observe(label, "error", start)
		w.log.Warn().Str("op", op).Str("id", req.ID).Err(err).Msg("request failed")
		return req.ID, types.FailureResponse{ID: req.ID, OK: false, Error: err.Error()}
	}
	w.observe(label, "ok", start)
	w.log.Debug().Str("op", op).Str("id", req.ID).Dur("elapsed", time.Since(start)).Msg("request ok")
	return req.ID, resp
}

// dispatch routes to the matched handler and contains panics so the loop
// survives anything a handler or the engine throws.
func (w *Worker) dispatch(ctx context.Context, op string, req types.Request) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	switch op {
	case "transcribe":
		return w.handleTranscribe(ctx, req)
	case "preload":
		return w.handlePreload(ctx, req)
	default:
		return nil, errUnsupportedOp(op)
	}
}

// write serializes one response as a single ASCII JSON line. The single
// unbuffered Write doubles as the flush the host relies on.
func (w *Worker) write(id string, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		b, _ = json.Marshal(types.FailureResponse{ID: id, OK: false, Error: "encode response: " + err.Error()})
	}
	_, werr := w.out.Write(append(escapeNonASCII(b), '\n'))
	return werr
}

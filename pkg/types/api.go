package types

// Request is one line of the stdio protocol. Fields beyond id/op are
// operation-specific; absent fields take the worker defaults.
type Request struct {
	// Opaque correlation token echoed back on the response. Not required unique.
	// example: req-42
	ID string `json:"id"`
	// Operation name: "transcribe" or "preload". Case-insensitive, trimmed.
	// example: transcribe
	Op string `json:"op"`
	// Path to the audio file to transcribe (transcribe only, required).
	// example: /tmp/utterance.wav
	AudioPath string `json:"audio_path,omitempty"`
	// Model name, e.g. small.en. Blank falls back to the worker default.
	// example: small.en
	Model string `json:"model,omitempty"`
	// Device to run on. Blank falls back to the worker default.
	// example: cpu
	Device string `json:"device,omitempty"`
	// Compute precision. Blank falls back to the worker default.
	// example: int8
	ComputeType string `json:"compute_type,omitempty"`
	// Transcription language (transcribe only).
	// example: en
	Language string `json:"language,omitempty"`
	// Decoder beam size (transcribe only). Nil means the worker default.
	// Accepts any JSON number; fractional values are truncated.
	// example: 1
	BeamSize *float64 `json:"beam_size,omitempty"`
}

// FailureResponse is emitted for any request that did not succeed.
type FailureResponse struct {
	ID string `json:"id"`
	OK bool   `json:"ok"`
	// Human-readable description of the failure.
	// example: missing audio_path
	Error string `json:"error"`
}

// TranscribeResponse is the success payload for op=transcribe.
type TranscribeResponse struct {
	ID string `json:"id"`
	OK bool   `json:"ok"`
	// Joined transcript text; may be empty if no segment had content.
	// example: hello world
	Text string `json:"text"`
	// Wall-clock milliseconds spent obtaining the model and running inference.
	// example: 1874
	InferenceMS int64 `json:"inference_ms"`
}

// PreloadResponse is the success payload for op=preload. The model fields are
// the resolved values after default substitution.
type PreloadResponse struct {
	ID          string `json:"id"`
	OK          bool   `json:"ok"`
	Model       string `json:"model"`
	Device      string `json:"device"`
	ComputeType string `json:"compute_type"`
	// Wall-clock milliseconds spent in the cache lookup (0-ish on a hit).
	// example: 3200
	LoadMS int64 `json:"load_ms"`
}

// ModelsResponse wraps the list of locally available model files for GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// LoadedModel identifies the cache's current entry.
type LoadedModel struct {
	Model       string `json:"model"`
	Device      string `json:"device"`
	ComputeType string `json:"compute_type"`
}

// StatusResponse is returned by GET /status on the debug server.
type StatusResponse struct {
	// Overall worker state: "empty" before the first load, else "ready".
	// example: ready
	State string `json:"state"`
	// Current cache entry, nil when nothing is loaded.
	Current *LoadedModel `json:"current,omitempty"`
	// Total successful model loads since startup.
	// example: 2
	LoadsTotal uint64 `json:"loads_total"`
	// Total cache hits (get with an unchanged key).
	// example: 17
	HitsTotal uint64 `json:"hits_total"`
	// Uptime of the worker in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Worker time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix"`
}

package types

// Model represents a speech model file present in the local model cache dir.
type Model struct {
	// Stable identifier: the file name.
	// example: ggml-small.en.bin
	ID string `json:"id"`
	// Human-friendly name.
	// example: ggml-small.en.bin
	Name string `json:"name"`
	// Absolute path to the model file on disk.
	// example: /home/user/.cache/whisperd/ggml-small.en.bin
	Path string `json:"path"`
	// File size in bytes.
	// example: 487614201
	SizeBytes int64 `json:"size_bytes"`
}

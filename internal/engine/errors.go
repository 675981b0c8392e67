package engine

// Built reports whether real whisper.cpp support was compiled in.
func Built() bool { return whisperBuilt }

// unavailableError signals a missing runtime dependency (e.g., whisper.cpp
// support not compiled in) as opposed to a per-request failure.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}

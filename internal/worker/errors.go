package worker

// validationError reports a missing or blank required request field. No
// engine call is made for these.
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

func errMissingAudioPath() error { return validationError{msg: "missing audio_path"} }

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// unsupportedOpError reports an op outside the supported set.
type unsupportedOpError struct{ op string }

func (e unsupportedOpError) Error() string { return "unsupported op: " + e.op }

func errUnsupportedOp(op string) error { return unsupportedOpError{op: op} }

// IsUnsupportedOp reports whether err is a dispatch failure.
func IsUnsupportedOp(err error) bool {
	_, ok := err.(unsupportedOpError)
	return ok
}

package engine

// engineUnavailableError signals that the inference runtime is not present
// in this build (missing 'llama' build tag) or the model is not loaded.
type engineUnavailableError struct{ msg string }

func (e engineUnavailableError) Error() string { return e.msg }

// ErrEngineUnavailable constructs an engineUnavailableError.
func ErrEngineUnavailable(msg string) error { return engineUnavailableError{msg: msg} }

// IsEngineUnavailable reports whether err indicates a missing/failed runtime.
func IsEngineUnavailable(err error) bool {
	_, ok := err.(engineUnavailableError)
	return ok
}

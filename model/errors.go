package model

// Error represents an error related with models and their predictions
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotReady is returned when loading a model definition whose
	// status is not finished.
	ErrNotReady = Error("model is not ready")
	// ErrMalformed is returned when a model definition cannot be turned
	// into a model.
	ErrMalformed = Error("malformed model definition")
	// ErrMissingNumeric is returned when predicting for an input without
	// a value for a numeric field used by a model that does not support
	// missing numerics.
	ErrMissingNumeric = Error("missing value for numeric field")
)

// FinishedCode is the status code of a finished model definition
const FinishedCode = 5

package fieldcodec

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNoField indicates no input field was selected for transformation.
	ErrNoField = errors.New("no field selected")

	// ErrFieldNotFound indicates the selected field is absent from the input schema.
	ErrFieldNotFound = errors.New("field not found")

	// ErrDuplicateField indicates a schema already holds a field with the same name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrInvalidMode indicates the mode is neither encode nor decode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrUnknownScheme indicates the scheme has no registered codec.
	ErrUnknownScheme = errors.New("unknown scheme")

	// ErrMalformedInput indicates the input is not valid for the selected scheme.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidText indicates decoded bytes are not valid UTF-8 text.
	ErrInvalidText = errors.New("decoded value is not valid utf-8")

	// ErrDownstreamRejected indicates the sink refused a completed record.
	ErrDownstreamRejected = errors.New("downstream rejected record")

	// ErrInvalidState indicates an operation was called out of lifecycle order.
	ErrInvalidState = errors.New("invalid pipeline state")

	// ErrRecordShape indicates a record does not match the negotiated schema.
	ErrRecordShape = errors.New("record does not match schema")
)

// ConfigError represents a pipeline configuration error.
// It wraps a sentinel error with context about the field and scheme involved.
// Configuration errors are terminal: no records are processed after one.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrNoField, ErrUnknownScheme, etc.)
	Field  string // Field name that triggered the error
	Scheme string // Scheme or mode value that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Scheme != "" {
		return fmt.Sprintf("%s for %q (field %s)", e.Err.Error(), e.Scheme, e.Field)
	}
	if e.Scheme != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Scheme)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CodecError represents a failure to encode or decode a single value.
// It is raised per record and never replaced by the untransformed value.
type CodecError struct {
	Err    error  // Underlying sentinel error (ErrMalformedInput, ErrInvalidText)
	Scheme Scheme // Scheme that rejected the input
	Mode   Mode   // Direction of the failed operation
	Field  string // Field name, when raised from a pipeline
	Cause  error  // Original error from the codec
}

func (e *CodecError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Scheme, e.Mode)
	if e.Field != "" {
		msg += " field " + e.Field
	}
	msg += ": " + e.Err.Error()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError.
func newConfigError(sentinel error, scheme, field string) error {
	return &ConfigError{
		Err:    sentinel,
		Scheme: scheme,
		Field:  field,
	}
}

// newCodecError creates a CodecError for a rejected value.
func newCodecError(sentinel error, scheme Scheme, mode Mode, cause error) *CodecError {
	return &CodecError{
		Err:    sentinel,
		Scheme: scheme,
		Mode:   mode,
		Cause:  cause,
	}
}

// stateError reports an operation attempted in the wrong lifecycle state.
func stateError(op string, s State) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidState, op, s)
}

package llm

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrOllamaUnavailable indicates no Ollama server is listening at the
	// configured endpoint.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the task's deadline expired before a response
	// arrived.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the model's text could not be parsed into
	// the structure the caller asked for.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates every attempt at a call failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// isConnectionError reports whether err stems from a failed network dial.
// errors.As unwraps through url.Error, so transport failures surfaced by
// http.Client are recognized.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// errorCode classifies an error for observer events.
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}

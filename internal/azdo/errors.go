package azdo

import "fmt"

// CallError describes a single failed remote call. It carries the operation,
// the display name of the node being created, and whatever the remote side
// returned, so callers can reconstruct "what failed while creating what".
type CallError struct {
	Op         string // e.g. "create suite", "add test points"
	Node       string // display name of the entity being created
	StatusCode int    // 0 when the call never reached the server
	Message    string // remote error message when available
	Err        error  // transport or decoding error when available
}

func (e *CallError) Error() string {
	msg := fmt.Sprintf("%s %q failed", e.Op, e.Node)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CallError) Unwrap() error { return e.Err }

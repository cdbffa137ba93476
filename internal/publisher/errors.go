package publisher

import (
	"errors"
	"fmt"
)

// ErrUnsupportedRoot indicates the input tree's root kind cannot start a
// publish run. Only plans and work items are valid roots.
var ErrUnsupportedRoot = errors.New("unsupported root node kind")

// StructuralError indicates the remote tracker did not return a resource
// the run needs to proceed. No call failed; the response was just missing
// something, so this is kept distinct from a call failure.
type StructuralError struct {
	Node    string
	Missing string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("cannot continue under %q: remote response did not include %s", e.Node, e.Missing)
}

// OrphanedItemError indicates a work item was created remotely but the
// follow-up call that links it into its container failed. The item exists
// on the tracker and is not cleaned up automatically.
type OrphanedItemError struct {
	Node     string
	RemoteID int
	Err      error
}

func (e *OrphanedItemError) Error() string {
	return fmt.Sprintf("work item %q was created (id %d) but could not be linked: %v", e.Node, e.RemoteID, e.Err)
}

func (e *OrphanedItemError) Unwrap() error { return e.Err }

package publisher

import (
	"fmt"
	"io"

	"github.com/planpush/planpush/internal/domain"
)

// NodeEvent reports one node of the tree finishing, successfully or as an
// orphan. Depth is the node's distance from the root, for indented display.
type NodeEvent struct {
	Kind     domain.NodeKind
	Title    string
	RemoteID int
	Status   domain.CreateStatus
	Depth    int
}

// Observer receives per-node progress events during a publish run.
type Observer interface {
	OnNodeComplete(event NodeEvent)
}

// LogObserver writes node events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnNodeComplete(event NodeEvent) {
	fmt.Fprintf(o.w, "published kind=%s title=%q remote_id=%d status=%s\n",
		event.Kind, event.Title, event.RemoteID, event.Status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnNodeComplete(NodeEvent) {}

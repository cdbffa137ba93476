package azdo

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single remote tracker call.
type CallEvent struct {
	Op         string
	Node       string
	StatusCode int
	LatencyMs  int64
	Success    bool
}

// Observer receives events about remote calls for logging and progress
// reporting.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes remote call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = fmt.Sprintf("err:%d", event.StatusCode)
	}
	fmt.Fprintf(o.w, "[%s] azdo_call op=%q node=%q latency_ms=%d status=%s\n",
		ts, event.Op, event.Node, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

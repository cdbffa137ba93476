package llm

import (
	"fmt"
	"io"
	"time"
)

// LLMCallEvent describes one completed generation call: which drafting or
// help task ran it, how many attempts it took, and how it ended.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives call events for logging.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes call events to an io.Writer, one line per call.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	outcome := "ok"
	if !event.Success {
		outcome = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] llm_call task=%s model=%s attempts=%d latency_ms=%d outcome=%s\n",
		time.Now().UTC().Format(time.RFC3339), event.Task, event.Model,
		event.Attempts, event.LatencyMs, outcome)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

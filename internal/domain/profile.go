package domain

import "time"

// Profile is a stored connection to one remote organization/project pair.
// The token may be empty when the user supplies it via environment instead.
type Profile struct {
	ID           string
	Name         string
	Organization string
	Project      string
	Token        string
	AreaPath     string
	Iteration    string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TypeMapping maps a friendly work-item type alias ("bug", "story") to the
// remote tracker's type name, optionally carrying default fields applied to
// every item created through the alias.
type TypeMapping struct {
	ID            string
	Alias         string
	RemoteType    string
	DefaultFields []Field
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublishOutcome classifies how a publish run ended.
type PublishOutcome string

const (
	PublishSucceeded PublishOutcome = "succeeded"
	PublishFailed    PublishOutcome = "failed"
)

// PublishRecord is one row of local publish history.
type PublishRecord struct {
	ID           string
	ProfileName  string
	RootTitle    string
	RootKind     NodeKind
	NodeCount    int
	CreatedCount int
	Outcome      PublishOutcome
	ErrorText    string
	StartedAt    time.Time
	FinishedAt   time.Time
}

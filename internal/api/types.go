package api

import (
	stdcontext "context"
	"errors"
	"time"
)

var (
	// ErrInvalidPID reports a path segment that is not a numeric process
	// identifier.
	ErrInvalidPID = errors.New("invalid process identifier")
)

// TrialReport describes the observable state of one supervised trial.
type TrialReport struct {
	PID         int       `json:"pid"`
	Alive       bool      `json:"alive"`
	GeneratedAt time.Time `json:"generated_at"`
}

// KillResult captures the outcome of a termination request.
type KillResult struct {
	PID      int       `json:"pid"`
	KilledAt time.Time `json:"killed_at"`
}

// Controller exposes trial lifecycle operations to the HTTP surface. All
// operations are keyed by PID alone so a keeper that restarts can still
// answer for trials launched before the restart.
type Controller interface {
	Alive(ctx stdcontext.Context, pid int) (TrialReport, error)
	Kill(ctx stdcontext.Context, pid int) (KillResult, error)
}

package cli

import (
	stdcontext "context"
	"time"

	"github.com/tunekit/trialkeeper/internal/api"
	"github.com/tunekit/trialkeeper/internal/metrics"
	"github.com/tunekit/trialkeeper/internal/supervisor"
)

// trialController adapts the supervisor to the HTTP control surface.
type trialController struct{}

// NewControlAPI returns the controller backing the serve command.
func NewControlAPI() api.Controller {
	return &trialController{}
}

func (trialController) Alive(ctx stdcontext.Context, pid int) (api.TrialReport, error) {
	alive, err := supervisor.IsAlive(ctx, pid)
	if err != nil {
		return api.TrialReport{}, err
	}
	return api.TrialReport{PID: pid, Alive: alive, GeneratedAt: time.Now().UTC()}, nil
}

func (trialController) Kill(ctx stdcontext.Context, pid int) (api.KillResult, error) {
	if err := supervisor.Kill(ctx, pid); err != nil {
		return api.KillResult{}, err
	}
	metrics.ObserveKill()
	return api.KillResult{PID: pid, KilledAt: time.Now().UTC()}, nil
}

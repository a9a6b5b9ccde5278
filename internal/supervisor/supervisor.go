// Package supervisor spawns trial launcher scripts and manages them by
// numeric process identifier alone.
//
// No in-memory handle outlives Spawn: liveness checks and termination go
// through external OS facilities keyed by PID, so a keeper that restarts
// can keep supervising trials it did not itself start. Full process-group
// termination is only guaranteed on Linux; on other hosts delivery to
// grandchildren is best effort.
package supervisor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/tunekit/trialkeeper/internal/platform"
)

// Spawn starts the invocation under the strategy's interpreter with the
// given working directory and environment overrides ("KEY=VALUE" form).
// The child is placed in its own process group where the host supports it
// and is reaped in the background; only the PID is returned. The child is
// deliberately not bound to any context: it must be able to outlive the
// keeper that started it.
func Spawn(strat platform.Strategy, invocation, dir string, env []string) (int, error) {
	name, args := strat.SpawnCommand(invocation)
	if name == "" {
		return 0, fmt.Errorf("spawn: empty invocation")
	}

	cmd := exec.Command(name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = append(os.Environ(), env...)
	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("spawn trial: %w", err)
	}
	pid := cmd.Process.Pid

	// Reap the child so it never lingers as a zombie while this process
	// lives. Outcome reporting happens through the trial state file, not
	// through this wait.
	go func() { _ = cmd.Wait() }()

	return pid, nil
}

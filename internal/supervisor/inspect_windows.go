//go:build windows

package supervisor

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// IsAlive queries tasklist for the PID. tasklist exits zero either way, so
// the output is parsed defensively: only an explicit "no tasks" marker
// counts as dead.
func IsAlive(ctx context.Context, pid int) (bool, error) {
	cmd := exec.CommandContext(ctx, "tasklist", "/FI", fmt.Sprintf("PID eq %d", pid), "/NH")
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return !strings.Contains(strings.ToLower(string(out)), "no tasks"), nil
}

// Kill terminates the process tree rooted at pid. taskkill failures are
// folded into success because an already-gone PID is the common case.
func Kill(ctx context.Context, pid int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, "taskkill", "/PID", strconv.Itoa(pid), "/T", "/F")
	_ = cmd.Run()
	return nil
}

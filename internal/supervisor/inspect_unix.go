//go:build !windows

package supervisor

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"syscall"
)

// IsAlive reports whether the process identified by pid is still running.
// The check goes through ps rather than a retained handle so it works for
// processes this keeper did not spawn. A missing process is a normal
// false, never an error.
func IsAlive(ctx context.Context, pid int) (bool, error) {
	cmd := exec.CommandContext(ctx, "ps", "-p", strconv.Itoa(pid))
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ps exits non-zero when the PID has no live process.
		return false, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, err
}

// Kill delivers SIGKILL to the process group rooted at pid. A PID that no
// longer exists is an idempotent no-op.
func Kill(ctx context.Context, pid int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		// ESRCH for the group only says no process group has this ID;
		// the PID may still name a live process that is not a group
		// leader. Only ESRCH on the direct kill means it is gone.
		if err := syscall.Kill(pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
			return err
		}
	}
	return nil
}

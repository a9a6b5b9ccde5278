//go:build windows

package prober

import (
	"context"
	"os/exec"
)

func countCommand(ctx context.Context, dir string) *exec.Cmd {
	return exec.CommandContext(ctx, "cmd", "/c", "dir", "/s", "/b", "/a-d", dir)
}

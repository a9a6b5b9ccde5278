package supervisor

import (
	"context"
	"os"
	"path/filepath"
	stdruntime "runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tunekit/trialkeeper/internal/platform"
)

func TestSpawnIsAliveKill(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("supervisor tests skipped on windows")
	}

	strat, err := platform.Select(platform.Posix)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	pid, err := Spawn(strat, "sleep 30", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("spawn returned pid %d", pid)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	alive, err := IsAlive(ctx, pid)
	if err != nil {
		t.Fatalf("isAlive: %v", err)
	}
	if !alive {
		t.Fatalf("freshly spawned process %d reported dead", pid)
	}

	if err := Kill(ctx, pid); err != nil {
		t.Fatalf("kill: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		alive, err = IsAlive(ctx, pid)
		if err != nil {
			t.Fatalf("isAlive after kill: %v", err)
		}
		if !alive {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("process %d still alive after kill", pid)
		}
		time.Sleep(50 * time.Millisecond)
	}

	// Killing an already-dead identifier stays a no-op.
	if err := Kill(ctx, pid); err != nil {
		t.Fatalf("kill on dead pid: %v", err)
	}
}

func TestIsAliveOnDeadPID(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("supervisor tests skipped on windows")
	}

	strat, err := platform.Select(platform.Posix)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	pid, err := Spawn(strat, "true", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deadline := time.Now().Add(3 * time.Second)
	for {
		alive, err := IsAlive(ctx, pid)
		if err != nil {
			t.Fatalf("isAlive: %v", err)
		}
		if !alive {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("short-lived process %d never observed dead", pid)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestKillNonLeaderByPID(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("supervisor tests skipped on windows")
	}

	strat, err := platform.Select(platform.Posix)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	// The shell is the group leader; the backgrounded sleep shares its
	// group, so the sleep's PID names no process group of its own.
	dir := t.TempDir()
	leader, err := Spawn(strat, "sleep 30 & echo $! > child.pid; wait", dir, nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	defer func() {
		if err := Kill(ctx, leader); err != nil {
			t.Errorf("cleanup kill leader: %v", err)
		}
	}()

	pidFile := filepath.Join(dir, "child.pid")
	var child int
	deadline := time.Now().Add(3 * time.Second)
	for {
		data, err := os.ReadFile(pidFile)
		if err == nil {
			child, err = strconv.Atoi(strings.TrimSpace(string(data)))
			if err != nil {
				t.Fatalf("parse child pid %q: %v", data, err)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("child pid file never appeared: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	alive, err := IsAlive(ctx, child)
	if err != nil {
		t.Fatalf("isAlive: %v", err)
	}
	if !alive {
		t.Fatalf("backgrounded child %d reported dead before kill", child)
	}

	if err := Kill(ctx, child); err != nil {
		t.Fatalf("kill non-leader pid: %v", err)
	}

	deadline = time.Now().Add(3 * time.Second)
	for {
		alive, err = IsAlive(ctx, child)
		if err != nil {
			t.Fatalf("isAlive after kill: %v", err)
		}
		if !alive {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("non-leader child %d still alive after kill", child)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestSpawnEnvOverrides(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("supervisor tests skipped on windows")
	}

	strat, err := platform.Select(platform.Posix)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	dir := t.TempDir()
	pid, err := Spawn(strat, "echo -n $TRIAL_MARK > mark", dir, []string{"TRIAL_MARK=present"})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("spawn returned pid %d", pid)
	}

	waitForFileContent(t, dir+"/mark", "present")
}

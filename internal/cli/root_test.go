package cli

import (
	"bytes"
	stdcontext "context"
	"os"
	"path/filepath"
	stdruntime "runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tunekit/trialkeeper/internal/supervisor"
)

func TestRootRegistersSubcommands(t *testing.T) {
	root := NewRootCmd()
	want := map[string]bool{
		"launch":   false,
		"alive":    false,
		"kill":     false,
		"files":    false,
		"dispatch": false,
		"serve":    false,
	}
	for _, sub := range root.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trial.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestDispatchCommand(t *testing.T) {
	path := writeManifest(t, `
trial:
  command: echo hi
  platform: posix
dispatcher:
  multiPhase: true
  tuner:
    className: EvolutionTuner
`)

	out, err := runCommand(t, "-f", path, "dispatch")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !strings.Contains(out, "--tuner_class_name EvolutionTuner") {
		t.Fatalf("dispatch output = %q", out)
	}
	if !strings.Contains(out, "--multi_phase") {
		t.Fatalf("dispatch output missing multi_phase: %q", out)
	}
}

func TestDispatchCommandRejectsConflict(t *testing.T) {
	path := writeManifest(t, `
trial:
  command: echo hi
dispatcher:
  tuner:
    className: TPETuner
  advisor:
    className: BOHB
`)

	if _, err := runCommand(t, "-f", path, "dispatch"); err == nil {
		t.Fatal("expected invalid configuration error")
	}
}

func TestFilesCommand(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("files command test uses the unix enumeration")
	}

	dir := t.TempDir()
	for _, name := range []string{"a", "b"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	out, err := runCommand(t, "files", dir)
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("files output = %q, want 2", out)
	}
}

func TestLaunchAliveKillRoundTrip(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("round-trip test exercises the posix dialect")
	}

	workdir := filepath.Join(t.TempDir(), "run")
	path := writeManifest(t, `
trial:
  command: sleep 30
  workdir: `+workdir+`
  platform: posix
`)

	out, err := runCommand(t, "-f", path, "launch")
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	pid := extractPID(t, out)

	aliveOut, err := runCommand(t, "alive", strconv.Itoa(pid))
	if err != nil {
		t.Fatalf("alive: %v", err)
	}
	if strings.TrimSpace(lastLine(aliveOut)) != "true" {
		t.Fatalf("alive output = %q, want true", aliveOut)
	}

	if _, err := runCommand(t, "kill", strconv.Itoa(pid)); err != nil {
		t.Fatalf("kill: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		alive, err := supervisor.IsAlive(stdcontext.Background(), pid)
		if err != nil {
			t.Fatalf("isAlive: %v", err)
		}
		if !alive {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("trial %d still alive after kill", pid)
		}
		time.Sleep(50 * time.Millisecond)
	}

	// Killing again stays a no-op.
	if _, err := runCommand(t, "kill", strconv.Itoa(pid)); err != nil {
		t.Fatalf("second kill: %v", err)
	}
}

func extractPID(t *testing.T, out string) int {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "pid=") {
			continue
		}
		fields := strings.Fields(line)
		raw := strings.TrimPrefix(fields[0], "pid=")
		pid, err := strconv.Atoi(raw)
		if err != nil {
			t.Fatalf("parse pid from %q: %v", line, err)
		}
		return pid
	}
	t.Fatalf("no pid line in output:\n%s", out)
	return 0
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	return lines[len(lines)-1]
}

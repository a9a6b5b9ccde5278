// Package launcher materializes trial launcher scripts and starts them.
//
// The rendered script is the durability boundary: it records the user
// command's exit code and completion time to a state file itself, so the
// outcome stays observable even if the keeper restarts while the trial is
// running.
package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tunekit/trialkeeper/internal/platform"
	"github.com/tunekit/trialkeeper/internal/supervisor"
)

// Name of the metadata subdirectory inside a trial working directory.
// External monitors resolve state and metrics paths against it.
const metaDirName = ".trial"

// Spec describes one trial launch attempt. It is constructed per attempt
// and never mutated afterwards.
type Spec struct {
	// WorkingDirectory is the absolute directory the trial runs in.
	WorkingDirectory string
	// Command is the user-supplied shell command.
	Command string
	// Env overrides are applied in order; a later duplicate key wins.
	Env []platform.EnvVar
	// Platform selects the script dialect and spawn semantics.
	Platform platform.Tag
}

// Artifacts are the well-known paths produced for a trial. They persist
// after the child exits; cleanup is owned by the caller.
type Artifacts struct {
	WorkingDirectory string
	ScriptPath       string
	StderrPath       string
	MetricsPath      string
	StatePath        string

	strategy platform.Strategy
}

// Invocation returns the command line that starts the rendered script.
func (a *Artifacts) Invocation() string {
	return a.strategy.Invocation(a.ScriptPath)
}

// State is the decoded trial outcome record.
type State struct {
	ExitCode    int
	CompletedAt int64 // epoch milliseconds
}

// ReadState parses the state file. It fails while the trial is still
// running, since the script writes the file only after the command exits.
func (a *Artifacts) ReadState() (State, error) {
	data, err := os.ReadFile(a.StatePath)
	if err != nil {
		return State{}, fmt.Errorf("read trial state: %w", err)
	}
	var st State
	if _, err := fmt.Sscanf(string(data), "%d %d", &st.ExitCode, &st.CompletedAt); err != nil {
		return State{}, fmt.Errorf("parse trial state %q: %w", string(data), err)
	}
	return st, nil
}

// Materialize scaffolds the trial working directory and writes the
// launcher script. Ordering is load-bearing: the directory tree and the
// empty metrics sink must exist before the script is written, and the
// script must be executable before anything spawns it.
func Materialize(ctx context.Context, spec Spec) (*Artifacts, error) {
	if spec.WorkingDirectory == "" {
		return nil, fmt.Errorf("materialize: working directory is required")
	}
	if spec.Command == "" {
		return nil, fmt.Errorf("materialize: command is required")
	}
	strat, err := platform.Select(spec.Platform)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metaDir := filepath.Join(spec.WorkingDirectory, metaDirName)
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create trial directories: %w", err)
	}

	a := &Artifacts{
		WorkingDirectory: spec.WorkingDirectory,
		ScriptPath:       filepath.Join(spec.WorkingDirectory, strat.ScriptName()),
		StderrPath:       filepath.Join(spec.WorkingDirectory, "stderr"),
		MetricsPath:      filepath.Join(metaDir, "metrics"),
		StatePath:        filepath.Join(metaDir, "state"),
		strategy:         strat,
	}

	// Pre-create the metrics sink empty so the trial runtime can append
	// records from its very first instant.
	sink, err := os.OpenFile(a.MetricsPath, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create metrics sink: %w", err)
	}
	if err := sink.Close(); err != nil {
		return nil, fmt.Errorf("close metrics sink: %w", err)
	}

	script := strat.RenderScript(platform.Script{
		WorkDir:    spec.WorkingDirectory,
		Command:    spec.Command,
		Env:        spec.Env,
		StderrPath: a.StderrPath,
		StatePath:  a.StatePath,
	})
	if err := os.WriteFile(a.ScriptPath, []byte(script), 0o755); err != nil {
		return nil, fmt.Errorf("write launcher script: %w", err)
	}
	return a, nil
}

// Launch materializes the spec and spawns the script, returning the
// artifacts and the child PID. The PID is the only handle callers need to
// retain.
func Launch(ctx context.Context, spec Spec) (*Artifacts, int, error) {
	artifacts, err := Materialize(ctx, spec)
	if err != nil {
		return nil, 0, err
	}
	pid, err := supervisor.Spawn(artifacts.strategy, artifacts.Invocation(), spec.WorkingDirectory, envStrings(spec.Env))
	if err != nil {
		return nil, 0, err
	}
	return artifacts, pid, nil
}

func envStrings(env []platform.EnvVar) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for _, ev := range env {
		out = append(out, ev.Key+"="+ev.Value)
	}
	return out
}

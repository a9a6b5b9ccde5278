// Package platform isolates the differences between the POSIX shell family
// and the Windows PowerShell interpreter behind a single Strategy value.
// Callers select a strategy once at the boundary; the rest of the launch
// pipeline stays platform-agnostic.
package platform

import (
	"fmt"
	"runtime"
)

// Tag names a supported trial platform.
type Tag string

const (
	// Posix covers Linux and macOS hosts where trials run under bash.
	Posix Tag = "posix"
	// PowerShell covers Windows hosts where trials run under powershell.
	PowerShell Tag = "powershell"
)

// EnvVar is a single environment override. Order matters: later entries
// shadow earlier ones with the same key once the script exports them.
type EnvVar struct {
	Key   string `yaml:"name"`
	Value string `yaml:"value"`
}

// Script carries everything a strategy needs to render a launcher script.
type Script struct {
	WorkDir    string
	Command    string
	Env        []EnvVar
	StderrPath string
	StatePath  string
}

// Strategy renders and invokes trial launcher scripts for one platform tag.
type Strategy interface {
	Tag() Tag
	// ScriptName is the launcher file name inside the trial working directory.
	ScriptName() string
	// RenderScript produces the launcher body. The rendered script changes
	// into the working directory, exports the overrides in order, runs the
	// command with stderr redirected, and then records
	// "<exit-code> <epoch-millis>" to the state file no matter how the
	// command fared.
	RenderScript(s Script) string
	// Invocation is the command line handed to the supervisor to start the
	// rendered script.
	Invocation(scriptPath string) string
	// SpawnCommand shapes an invocation into the executable and argument
	// vector accepted by the host's process-creation primitive.
	SpawnCommand(invocation string) (string, []string)
	// EncodeClassArgs serializes a structured dispatcher payload into one
	// shell-safe token. The encoding depth is platform dependent and the
	// dispatcher decoder relies on it; see the posix implementation.
	EncodeClassArgs(v any) (string, error)
}

// Select returns the strategy for the given tag.
func Select(tag Tag) (Strategy, error) {
	switch tag {
	case Posix:
		return posixStrategy{}, nil
	case PowerShell:
		return powerShellStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown platform tag %q", ErrPlatformUnsupported, tag)
	}
}

// Default returns the tag matching the host operating system.
func Default() Tag {
	if runtime.GOOS == "windows" {
		return PowerShell
	}
	return Posix
}

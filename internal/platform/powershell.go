package platform

import (
	"encoding/json"
	"fmt"
	"strings"
)

type powerShellStrategy struct{}

func (powerShellStrategy) Tag() Tag { return PowerShell }

func (powerShellStrategy) ScriptName() string { return "run.ps1" }

func (powerShellStrategy) RenderScript(s Script) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cd '%s'\n", s.WorkDir)
	for _, ev := range s.Env {
		fmt.Fprintf(&b, "$env:%s = \"%s\"\n", ev.Key, ev.Value)
	}
	fmt.Fprintf(&b, "cmd.exe /c %s 2>\"%s\"\n", s.Command, s.StderrPath)
	b.WriteString("$NOW = [int64](([datetime]::UtcNow) - (Get-Date \"1/1/1970\")).TotalMilliseconds\n")
	fmt.Fprintf(&b, "Write \"$LASTEXITCODE $NOW\" | Out-File \"%s\" -NoNewline -Encoding utf8\n", s.StatePath)
	return b.String()
}

// Invocation keeps the interpreter-neutral "bash" spelling; SpawnCommand
// substitutes the native interpreter at spawn time.
func (powerShellStrategy) Invocation(scriptPath string) string {
	return fmt.Sprintf("bash %s", scriptPath)
}

// SpawnCommand swaps the POSIX interpreter name for powershell and splits
// the invocation into argv tokens, since the Windows process-creation
// primitive wants an executable plus arguments rather than one string.
func (powerShellStrategy) SpawnCommand(invocation string) (string, []string) {
	fields := strings.Fields(invocation)
	if len(fields) == 0 {
		return "powershell", nil
	}
	if fields[0] == "bash" {
		fields[0] = "powershell"
	}
	return fields[0], fields[1:]
}

// EncodeClassArgs encodes once: powershell hands argument tokens to the
// child verbatim, so no extra escaping layer survives to be stripped.
func (powerShellStrategy) EncodeClassArgs(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode class args: %w", err)
	}
	return string(out), nil
}

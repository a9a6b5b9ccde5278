package platform

import (
	"encoding/json"
	"fmt"
	"strings"
)

type posixStrategy struct{}

func (posixStrategy) Tag() Tag { return Posix }

func (posixStrategy) ScriptName() string { return "run.sh" }

func (posixStrategy) RenderScript(s Script) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	fmt.Fprintf(&b, "cd '%s'\n", s.WorkDir)
	for _, ev := range s.Env {
		fmt.Fprintf(&b, "export %s='%s'\n", ev.Key, ev.Value)
	}
	// The subshell contains a plain `exit` in the user command so the
	// state line below runs no matter how the command finishes, and the
	// command text is parsed only once, keeping embedded quoting intact.
	fmt.Fprintf(&b, "( %s ) 2>'%s'\n", s.Command, s.StderrPath)
	// date +%N is a GNU extension; derive milliseconds from seconds so
	// the script also runs under BSD date.
	fmt.Fprintf(&b, "echo $? $(($(date +%%s) * 1000)) >'%s'\n", s.StatePath)
	return b.String()
}

func (posixStrategy) Invocation(scriptPath string) string {
	return fmt.Sprintf("bash '%s'", scriptPath)
}

// SpawnCommand passes the invocation through a shell as one opaque string;
// POSIX process creation has no single-string primitive of its own.
func (posixStrategy) SpawnCommand(invocation string) (string, []string) {
	return "/bin/bash", []string{"-c", invocation}
}

// EncodeClassArgs JSON-encodes the payload twice. The outer encoding is
// stripped by shell-level quote processing before the dispatcher sees the
// token, and the dispatcher's decoder expects exactly one remaining level
// of escaping. Do not collapse this to a single encoding.
func (posixStrategy) EncodeClassArgs(v any) (string, error) {
	inner, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode class args: %w", err)
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		return "", fmt.Errorf("encode class args: %w", err)
	}
	return string(outer), nil
}

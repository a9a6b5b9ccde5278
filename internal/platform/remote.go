package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPlatformUnsupported reports an operating system name this subsystem
// cannot build paths or scripts for.
var ErrPlatformUnsupported = errors.New("platform unsupported")

// RemoteScriptPath joins path elements for a remote host identified by its
// reported OS name. The separator follows the remote convention, not the
// local one, because the result is consumed by the remote shell.
func RemoteScriptPath(osName string, elems ...string) (string, error) {
	switch strings.ToLower(osName) {
	case "linux", "unix", "darwin":
		return strings.Join(elems, "/"), nil
	case "windows":
		return strings.Join(elems, `\`), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrPlatformUnsupported, osName)
	}
}

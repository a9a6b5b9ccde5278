package supervisor

import (
	"os"
	"testing"
	"time"
)

func waitForFileContent(t *testing.T, path, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		data, err := os.ReadFile(path)
		if err == nil && string(data) == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s to contain %q (last: %q, err: %v)", path, want, data, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// Package prober answers bounded-latency questions about trial filesystem
// state by racing an external enumeration command against a deadline.
package prober

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	// ErrNotFound reports that the probed directory does not exist.
	ErrNotFound = errors.New("directory not found")
	// ErrTimeout reports that the enumeration did not settle before the
	// deadline. Treat it as a retryable monitoring hiccup.
	ErrTimeout = errors.New("probe timed out")
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 5 * time.Second

// Prober counts files under trial directories with a hard deadline.
type Prober struct {
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

// New returns a prober with the default deadline.
func New() *Prober {
	return &Prober{Timeout: DefaultTimeout}
}

// CountFiles returns the number of regular files beneath dir, recursively.
// The enumeration runs as an external command under a deadline; whichever
// settles first wins, and the loser is torn down on every exit path (the
// command via its context, the timer via the deferred cancel).
func (p *Prober) CountFiles(ctx context.Context, dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return 0, fmt.Errorf("stat %s: %w", dir, err)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := countCommand(ctx, dir)
	out, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return 0, fmt.Errorf("%w: %s", ErrTimeout, dir)
	}
	if err != nil {
		return 0, fmt.Errorf("enumerate %s: %w", dir, err)
	}
	return countLines(out), nil
}

func countLines(out []byte) int {
	n := 0
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

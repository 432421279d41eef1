package checkpoint

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoCheckpoint is returned by Latest when nothing matches the pattern
var ErrNoCheckpoint = errors.New("no checkpoint found")

// DefaultPattern matches generator checkpoints named by iteration
const DefaultPattern = "G_*.pth"

// Latest returns the path under dir matching pattern (DefaultPattern when
// empty) whose embedded iteration number is largest.
func Latest(dir, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("checkpoint: bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("checkpoint: %w in %s matching %q", ErrNoCheckpoint, dir, pattern)
	}

	best := matches[0]
	bestNum := embeddedNumber(filepath.Base(best))
	for _, m := range matches[1:] {
		if n := embeddedNumber(filepath.Base(m)); n > bestNum {
			best = m
			bestNum = n
		}
	}
	return best, nil
}

// embeddedNumber concatenates the digits of a file name into one integer;
// names without digits sort lowest
func embeddedNumber(name string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, name)
	if digits == "" {
		return -1
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

package watch

import (
	"context"
	"os"
	"time"
)

// WaitStable blocks until the file's size has stayed unchanged for
// stableDuration, polling every checkInterval. Modalities write DICOM files
// incrementally; acting on a half-written file would ship a truncated study.
// Returns false if the file disappears or the context is cancelled first.
func WaitStable(ctx context.Context, path string, checkInterval, stableDuration time.Duration) bool {
	var previousSize int64 = -1
	var stableFor time.Duration

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for stableFor < stableDuration {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}

		info, err := os.Stat(path)
		if err != nil {
			return false
		}

		if info.Size() != previousSize {
			stableFor = 0
			previousSize = info.Size()
		} else {
			stableFor += checkInterval
		}
	}

	return true
}

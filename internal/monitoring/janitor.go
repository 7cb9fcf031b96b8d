package monitoring

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dicomops/dcmon-cli/internal/core/dicom"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/logging"
)

// JanitorConfig defines the retention policy for processed DICOM files
type JanitorConfig struct {
	MaxAge        time.Duration
	SweepInterval time.Duration
}

// DefaultJanitorConfig returns the original retention defaults: files older
// than 14 days, checked once a day.
func DefaultJanitorConfig() JanitorConfig {
	return JanitorConfig{
		MaxAge:        14 * 24 * time.Hour,
		SweepInterval: 24 * time.Hour,
	}
}

// Janitor removes DICOM files older than the retention window from the watch
// directories and prunes directories the deletions leave empty. The watch
// roots themselves are never removed.
type Janitor struct {
	dirs   []string
	cfg    JanitorConfig
	logger *logging.Logger
	now    func() time.Time
}

// NewJanitor creates a janitor over the given watch directories
func NewJanitor(dirs []string, cfg JanitorConfig, logger *logging.Logger) *Janitor {
	return &Janitor{
		dirs:   append([]string(nil), dirs...),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Run sweeps immediately, then on every interval until ctx is cancelled
func (j *Janitor) Run(ctx context.Context) {
	j.logger.Infof("Watching directories for deleting old DICOM files: %v", j.dirs)

	ticker := time.NewTicker(j.cfg.SweepInterval)
	defer ticker.Stop()

	j.Sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep()
		}
	}
}

// Sweep performs one retention pass over all watch directories
func (j *Janitor) Sweep() {
	cutoff := j.now().Add(-j.cfg.MaxAge)

	for _, dir := range j.dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				j.logger.Errorf("Failed to scan %s: %v", path, walkErr)
				return nil
			}
			if d.IsDir() || !dicom.IsDICOMFile(path) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().After(cutoff) {
				return nil
			}

			j.deleteFile(path, dir)
			return nil
		})
		if err != nil {
			j.logger.Errorf("Failed to delete old DICOM files under %s: %v", dir, err)
		}
	}
}

// deleteFile removes one expired file and its parent directory if that
// leaves the parent empty (but never the watch root itself).
func (j *Janitor) deleteFile(path, root string) {
	if err := os.Remove(path); err != nil {
		j.logger.Errorf("Failed to delete DICOM file %s: %v", path, err)
		return
	}
	j.logger.Infof("Deleted DICOM file: %s", path)

	parent := filepath.Dir(path)
	if parent == root || parent == filepath.Clean(root) {
		return
	}
	entries, err := os.ReadDir(parent)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(parent); err != nil {
		j.logger.Errorf("Failed to remove empty directory %s: %v", parent, err)
		return
	}
	j.logger.Infof("Removed empty directory: %s", parent)
}

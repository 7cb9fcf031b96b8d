package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dicomops/dcmon-cli/internal/core/dicom"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/logging"
)

// Config controls the stability gate applied to incoming files.
type Config struct {
	CheckInterval  time.Duration
	StableDuration time.Duration
}

// DefaultConfig returns the stability timings the Python monitor shipped with
func DefaultConfig() Config {
	return Config{
		CheckInterval:  200 * time.Millisecond,
		StableDuration: 600 * time.Millisecond,
	}
}

// Watcher watches a set of directory trees for DICOM files. fsnotify is not
// recursive, so every subdirectory is registered individually and newly
// created subdirectories are picked up from their create events. A file path
// is emitted only once it has passed the stability gate.
type Watcher struct {
	dirs   []string
	cfg    Config
	logger *logging.Logger

	fw  *fsnotify.Watcher
	out chan string

	mu       sync.Mutex
	inFlight map[string]struct{}
	wg       sync.WaitGroup
	closed   chan struct{}
}

// NewWatcher creates a watcher over the given root directories
func NewWatcher(dirs []string, cfg Config, logger *logging.Logger) *Watcher {
	return &Watcher{
		dirs:     append([]string(nil), dirs...),
		cfg:      cfg,
		logger:   logger,
		out:      make(chan string, 64),
		inFlight: make(map[string]struct{}),
		closed:   make(chan struct{}),
	}
}

// Start registers all watch roots and begins emitting stable DICOM file
// paths. Registration failure of any root is fatal: a monitor silently
// missing one of its configured directories is worse than not starting.
func (w *Watcher) Start(ctx context.Context) (<-chan string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	w.fw = fw

	for _, dir := range w.dirs {
		if err := w.addRecursive(dir); err != nil {
			fw.Close()
			return nil, err
		}
		w.logger.Infof("Watching directory: %s", dir)
	}

	w.wg.Add(1)
	go w.loop(ctx)

	return w.out, nil
}

// Close stops the watcher and waits for pending stability checks
func (w *Watcher) Close() error {
	select {
	case <-w.closed:
		return nil
	default:
	}
	close(w.closed)

	var err error
	if w.fw != nil {
		err = w.fw.Close()
	}
	w.wg.Wait()
	close(w.out)
	return err
}

// addRecursive registers dir and every subdirectory below it
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("failed to walk %s: %w", path, walkErr)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.closed:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Errorf("Failed to watch new directory %s: %v", event.Name, err)
			}
			return
		}
	}

	if !dicom.IsDICOMFile(event.Name) {
		return
	}

	w.mu.Lock()
	if _, busy := w.inFlight[event.Name]; busy {
		w.mu.Unlock()
		return
	}
	w.inFlight[event.Name] = struct{}{}
	w.mu.Unlock()

	w.wg.Add(1)
	go w.stabilize(ctx, event.Name)
}

// stabilize waits out the stability gate for one file, then emits it
func (w *Watcher) stabilize(ctx context.Context, path string) {
	defer w.wg.Done()
	defer func() {
		w.mu.Lock()
		delete(w.inFlight, path)
		w.mu.Unlock()
	}()

	if !WaitStable(ctx, path, w.cfg.CheckInterval, w.cfg.StableDuration) {
		return
	}

	select {
	case w.out <- path:
	case <-ctx.Done():
	case <-w.closed:
	}
}

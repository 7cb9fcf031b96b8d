package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/dicomops/dcmon-cli/internal/core/ports"
	"github.com/dicomops/dcmon-cli/internal/core/route"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/logging"
)

// Config controls dispatch timing
type Config struct {
	// DispatchInterval is how often the pending set is drained and sent
	DispatchInterval time.Duration
	// UploadTimeout bounds a single file's routing and upload work
	UploadTimeout time.Duration
}

// DefaultConfig returns the dispatch timings the Python monitor shipped with
func DefaultConfig() Config {
	return Config{
		DispatchInterval: 3 * time.Second,
		UploadTimeout:    2 * time.Minute,
	}
}

// Service implements the core monitoring logic: stable DICOM files reported
// by the watcher are collected into a deduplicated pending set, which is
// drained on a fixed interval. Each drained file has its StudyDescription
// read, is matched against the route table, and is uploaded to every
// matching endpoint. Upload failures are logged and dropped; the next
// occurrence of the file (a rewrite) would re-enter through the watcher.
type Service struct {
	watcher  ports.Watcher
	reader   ports.TagReader
	uploader ports.Uploader
	table    *route.Table
	logger   *logging.Logger
	cfg      Config

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewService creates a new monitoring service
func NewService(
	watcher ports.Watcher,
	reader ports.TagReader,
	uploader ports.Uploader,
	table *route.Table,
	logger *logging.Logger,
	cfg Config,
) *Service {
	return &Service{
		watcher:  watcher,
		reader:   reader,
		uploader: uploader,
		table:    table,
		logger:   logger,
		cfg:      cfg,
		pending:  make(map[string]struct{}),
	}
}

// Run starts the watcher and dispatch loop, blocking until ctx is cancelled.
// A final drain runs on shutdown so files already stabilized are not lost.
func (s *Service) Run(ctx context.Context) error {
	files, err := s.watcher.Start(ctx)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(s.cfg.DispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.drain(context.Background())
			return nil
		case path, ok := <-files:
			if !ok {
				s.drain(context.Background())
				return nil
			}
			s.enqueue(path)
		case <-ticker.C:
			s.drain(ctx)
		}
	}
}

// enqueue adds a file to the pending set
func (s *Service) enqueue(path string) {
	s.mu.Lock()
	s.pending[path] = struct{}{}
	s.mu.Unlock()
}

// PendingCount returns the number of files awaiting dispatch
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// drain snapshots and clears the pending set, then dispatches every file
func (s *Service) drain(ctx context.Context) {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(s.pending))
	for path := range s.pending {
		batch = append(batch, path)
	}
	s.pending = make(map[string]struct{})
	s.mu.Unlock()

	for _, path := range batch {
		s.dispatch(ctx, path)
	}
}

// dispatch routes and uploads one file
func (s *Service) dispatch(ctx context.Context, path string) {
	desc, err := s.reader.StudyDescription(path)
	if err != nil {
		s.logger.Errorf("Failed to process %s: %v", path, err)
		return
	}

	matched := s.table.Match(desc)
	if len(matched) == 0 {
		s.logger.Debugf("No route for %s (study description %q)", path, desc.Raw())
		return
	}

	for _, r := range matched {
		uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
		err := s.uploader.Upload(uploadCtx, path, r.Endpoint())
		cancel()

		if err != nil {
			s.logger.Errorf("Failed to send %s to API at %s: %v", path, r.Endpoint(), err)
			continue
		}
		s.logger.Infof("Successfully sent %s to API at %s", path, r.Endpoint())
	}
}

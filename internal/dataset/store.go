package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"rtref/pkg/logger"
)

// Store caches loaded airport datasets and serves them to the handlers.
// Datasets load lazily on first request and can be invalidated by the file
// watcher, so editing a data file shows up without a restart.
type Store struct {
	loader  *Loader
	dir     string
	logger  *logger.Logger
	mu      sync.RWMutex
	byICAO  map[string]*Dataset
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewStore creates a dataset store over the given data directory.
func NewStore(dir string, log *logger.Logger) *Store {
	return &Store{
		loader: NewLoader(dir, log),
		dir:    dir,
		logger: log.Named("dataset-store"),
		byICAO: make(map[string]*Dataset),
	}
}

// Get returns the dataset for an airport, loading and caching it on first
// use.
func (s *Store) Get(ctx context.Context, icao string) (*Dataset, error) {
	icao = strings.ToLower(strings.TrimSpace(icao))

	s.mu.RLock()
	ds, ok := s.byICAO[icao]
	s.mu.RUnlock()
	if ok {
		return ds, nil
	}

	ds, err := s.loader.LoadAirport(ctx, icao)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Another request may have loaded it meanwhile; last write wins, the
	// datasets are identical.
	s.byICAO[icao] = ds
	s.mu.Unlock()

	return ds, nil
}

// ListAirports enumerates the airports available on disk.
func (s *Store) ListAirports() ([]string, error) {
	return s.loader.ListAirports()
}

// Invalidate drops the cached dataset for an airport so the next Get reloads
// it from disk.
func (s *Store) Invalidate(icao string) {
	icao = strings.ToLower(strings.TrimSpace(icao))
	s.mu.Lock()
	delete(s.byICAO, icao)
	s.mu.Unlock()
}

// Watch starts a file watcher over the data directory and every airport
// subdirectory. A write or create event inside an airport directory
// invalidates that airport's cache entry. Watch returns after the watcher
// goroutine has started; Close stops it.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		s.watcher = nil
		return err
	}
	airports, err := s.loader.ListAirports()
	if err == nil {
		for _, icao := range airports {
			if err := watcher.Add(filepath.Join(s.dir, icao)); err != nil {
				s.logger.Warn("Failed to watch airport directory",
					logger.String("airport", icao),
					logger.Error(err))
			}
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				s.handleEvent(event)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("File watcher error", logger.Error(err))
			}
		}
	}()

	s.logger.Info("Watching data directory", logger.String("dir", s.dir))
	return nil
}

// handleEvent maps a filesystem event to a cache invalidation. New airport
// directories get added to the watch set.
func (s *Store) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	rel, err := filepath.Rel(s.dir, event.Name)
	if err != nil {
		return
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")

	if len(parts) == 1 {
		// Top-level event: possibly a new airport directory.
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := s.watcher.Add(event.Name); err == nil {
					s.logger.Info("Watching new airport directory",
						logger.String("path", event.Name))
				}
			}
		}
		return
	}

	icao := parts[0]
	s.logger.Debug("Data file changed, invalidating cache",
		logger.String("airport", icao),
		logger.String("file", rel))
	s.Invalidate(icao)
}

// Close stops the watcher and waits for its goroutine to exit.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.wg.Wait()
	return err
}

package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports changes to a set of files, coalescing bursts of
// events per file. Directories are watched rather than the files
// themselves so that editors replacing a file by rename keep reporting.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	targets  map[string]bool
	dirs     map[string]bool
	debounce time.Duration
	timers   map[string]*time.Timer
	changes  chan string
	errors   chan error
	closed   bool
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		targets:  make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		changes:  make(chan string, 8),
		errors:   make(chan error, 1),
	}, nil
}

// Watch adds files to the watch set
func (fw *FileWatcher) Watch(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if !fw.dirs[dir] {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			fw.dirs[dir] = true
		}
		fw.targets[absPath] = true
	}

	return nil
}

// Changes delivers the absolute path of each changed file once its burst
// of events has settled. Receivers that fall behind miss duplicate
// notifications, never the latest one.
func (fw *FileWatcher) Changes() <-chan string {
	return fw.changes
}

// Errors delivers errors reported by the underlying watcher
func (fw *FileWatcher) Errors() <-chan error {
	return fw.errors
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					fw.handleFileChange(filepath.Clean(event.Name))
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				select {
				case fw.errors <- err:
				default:
				}
			}
		}
	}()
}

// handleFileChange restarts the debounce timer of a watched file
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.targets[filePath] || fw.closed {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		defer fw.mu.Unlock()
		if fw.closed {
			return
		}
		select {
		case fw.changes <- filePath:
		default:
		}
	})
}

// Close stops the watcher and closes the Changes channel
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return nil
	}
	fw.closed = true
	for _, timer := range fw.timers {
		timer.Stop()
	}
	close(fw.changes)
	fw.mu.Unlock()

	return fw.watcher.Close()
}

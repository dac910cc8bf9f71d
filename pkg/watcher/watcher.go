// Package watcher provides debounced file-change notification, used by
// the GUI to re-estimate a model when its file is saved.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single model file and triggers a callback when
// it changes. Editors often emit several write events per save, so
// callbacks are debounced.
//
// The watch is placed on the file's directory, not the file itself:
// editors that save atomically (write a temp file, then rename it over
// the target) would otherwise drop the watch after the first save.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	path     string
	callback func(string)
	debounce time.Duration
	timer    *time.Timer
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		debounce: debounce,
	}, nil
}

// Watch starts watching the given file; callback is invoked with the
// file path after each (debounced) change
func (fw *FileWatcher) Watch(file string, callback func(string)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	fw.mu.Lock()
	fw.path = absPath
	fw.callback = callback
	fw.mu.Unlock()

	return nil
}

// Start begins delivering file change events
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fmt.Printf("Watcher error: %v\n", err)
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing. Events
// for other files in the watched directory are ignored.
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.callback == nil || filepath.Clean(filePath) != fw.path {
		return
	}

	if fw.timer != nil {
		fw.timer.Stop()
	}

	path := fw.path
	callback := fw.callback
	fw.timer = time.AfterFunc(fw.debounce, func() {
		callback(path)
	})
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

// Package watch monitors a directory for new or updated legislation XML
// documents and hands each one to a caller-supplied handler, so a corpus
// directory can be chunked as files arrive.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is how long a file must stay quiet before it is handled.
// Downloads write in bursts; debouncing avoids handling half-written files.
const DefaultDebounce = 500 * time.Millisecond

// DocumentHandler is invoked with the path of each settled XML document.
type DocumentHandler func(path string)

// DirectoryWatcher watches one directory (non-recursively) for created or
// modified .xml files, debounces write bursts, and invokes the handler once
// per settled file.
type DirectoryWatcher struct {
	directory string
	debounce  time.Duration
	handler   DocumentHandler

	watcher  *fsnotify.Watcher
	stopChan chan struct{}

	pendingMu sync.Mutex
	pending   map[string]*time.Timer

	running bool
	mu      sync.Mutex
}

// NewDirectoryWatcher creates a watcher for the given directory. A
// non-positive debounce selects DefaultDebounce.
func NewDirectoryWatcher(directory string, debounce time.Duration, handler DocumentHandler) (*DirectoryWatcher, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("watch directory %s: %w", directory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path %s is not a directory", directory)
	}
	if handler == nil {
		return nil, fmt.Errorf("watch handler cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &DirectoryWatcher{
		directory: directory,
		debounce:  debounce,
		handler:   handler,
		pending:   make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. Events are processed on a background goroutine
// until Stop is called.
func (directoryWatcher *DirectoryWatcher) Start() error {
	directoryWatcher.mu.Lock()
	defer directoryWatcher.mu.Unlock()

	if directoryWatcher.running {
		return fmt.Errorf("watcher already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if err := watcher.Add(directoryWatcher.directory); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", directoryWatcher.directory, err)
	}

	directoryWatcher.watcher = watcher
	directoryWatcher.stopChan = make(chan struct{})
	directoryWatcher.running = true

	go directoryWatcher.loop()
	return nil
}

// Stop ends watching and cancels pending debounce timers. Handlers already
// started are not interrupted.
func (directoryWatcher *DirectoryWatcher) Stop() {
	directoryWatcher.mu.Lock()
	defer directoryWatcher.mu.Unlock()

	if !directoryWatcher.running {
		return
	}
	close(directoryWatcher.stopChan)
	directoryWatcher.watcher.Close()
	directoryWatcher.running = false

	directoryWatcher.pendingMu.Lock()
	for path, timer := range directoryWatcher.pending {
		timer.Stop()
		delete(directoryWatcher.pending, path)
	}
	directoryWatcher.pendingMu.Unlock()
}

func (directoryWatcher *DirectoryWatcher) loop() {
	for {
		select {
		case <-directoryWatcher.stopChan:
			return
		case event, ok := <-directoryWatcher.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
				continue
			}
			directoryWatcher.schedule(event.Name)
		case _, ok := <-directoryWatcher.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// schedule (re)starts the debounce timer for a path; the handler fires only
// after the file has been quiet for the debounce interval.
func (directoryWatcher *DirectoryWatcher) schedule(path string) {
	directoryWatcher.pendingMu.Lock()
	defer directoryWatcher.pendingMu.Unlock()

	if timer, exists := directoryWatcher.pending[path]; exists {
		timer.Stop()
	}
	directoryWatcher.pending[path] = time.AfterFunc(directoryWatcher.debounce, func() {
		directoryWatcher.pendingMu.Lock()
		delete(directoryWatcher.pending, path)
		directoryWatcher.pendingMu.Unlock()

		directoryWatcher.handler(path)
	})
}

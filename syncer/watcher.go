package syncer

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/solterra/monokit/errors"
	"github.com/solterra/monokit/logger"
)

// DescriptorWatcher watches a package's entry-point descriptor and triggers
// re-sync callbacks when it changes.
type DescriptorWatcher struct {
	descriptorPath string
	watcher        *fsnotify.Watcher
	callbacks      []func()
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewDescriptorWatcher creates a watcher on the given descriptor file.
func NewDescriptorWatcher(descriptorPath string) (*DescriptorWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(descriptorPath); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch descriptor %s", descriptorPath)
	}

	return &DescriptorWatcher{
		descriptorPath: descriptorPath,
		watcher:        watcher,
		debouncePeriod: 500 * time.Millisecond, // Debounce rapid editor saves
	}, nil
}

// OnChange registers a callback run after each debounced descriptor change.
func (dw *DescriptorWatcher) OnChange(callback func()) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.callbacks = append(dw.callbacks, callback)
}

// Start begins watching for descriptor changes
func (dw *DescriptorWatcher) Start() {
	go dw.watchLoop()
}

// Close stops the watcher
func (dw *DescriptorWatcher) Close() error {
	dw.mu.Lock()
	if dw.debounceTimer != nil {
		dw.debounceTimer.Stop()
	}
	dw.mu.Unlock()
	return dw.watcher.Close()
}

// watchLoop monitors file system events
func (dw *DescriptorWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}

			// Only re-sync on Write or Create events; editors that replace
			// the file emit Create after a rename
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				logger.WatchInfow("Descriptor changed", logger.FieldFile, event.Name)
				dw.scheduleSync()
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			logger.SyncWarnw("Descriptor watcher error", logger.FieldError, err.Error())
		}
	}
}

// scheduleSync debounces rapid file changes before firing callbacks
func (dw *DescriptorWatcher) scheduleSync() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.debounceTimer != nil {
		dw.debounceTimer.Stop()
	}

	dw.debounceTimer = time.AfterFunc(dw.debouncePeriod, dw.fireCallbacks)
}

func (dw *DescriptorWatcher) fireCallbacks() {
	dw.mu.RLock()
	callbacks := make([]func(), len(dw.callbacks))
	copy(callbacks, dw.callbacks)
	dw.mu.RUnlock()

	for _, callback := range callbacks {
		callback()
	}
}

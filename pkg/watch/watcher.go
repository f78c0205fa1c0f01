package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/md-toc/pkg/models"
	"github.com/Sriram-PR/md-toc/pkg/orchestrate"
	"github.com/Sriram-PR/md-toc/pkg/process"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// Watcher keeps the TOC of a set of documents up to date while they are
// edited. Its own writes are recognised through the orchestrator's store and
// never trigger another rewrite.
type Watcher struct {
	paths    []string          // Documents as given, in order
	files    map[string]string // Normalized path -> path as given
	debounce time.Duration
	log      *logrus.Entry
	state    *StateManager

	mu   sync.RWMutex
	orch *orchestrate.Orchestrator

	reload chan struct{}
	ready  chan struct{}
}

// NewWatcher creates a watcher for paths. Events for one document arriving
// within debounce of each other are handled once.
func NewWatcher(orch *orchestrate.Orchestrator, paths []string, debounce time.Duration, stateDir string, log *logrus.Entry) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: watch needs at least one file", utils.ErrUsage)
	}
	w := &Watcher{
		files:    make(map[string]string, len(paths)),
		debounce: debounce,
		log:      log.WithField("component", "watcher"),
		state:    NewStateManager(stateDir),
		orch:     orch,
		reload:   make(chan struct{}, 1),
		ready:    make(chan struct{}),
	}
	for _, path := range paths {
		if path == process.StdioName {
			return nil, fmt.Errorf("%w: cannot watch standard input", utils.ErrUsage)
		}
		key := process.NormalizePath(path)
		if _, dup := w.files[key]; dup {
			continue
		}
		w.files[key] = path
		w.paths = append(w.paths, path)
	}
	return w, nil
}

// State returns the per-document watch state
func (w *Watcher) State() *StateManager {
	return w.state
}

// Ready is closed once the initial pass is done and changes are being watched
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// SetOrchestrator replaces the orchestrator, e.g. after a configuration
// reload, and reprocesses every document with it
func (w *Watcher) SetOrchestrator(orch *orchestrate.Orchestrator) {
	w.mu.Lock()
	w.orch = orch
	w.mu.Unlock()

	select {
	case w.reload <- struct{}{}:
	default:
	}
}

func (w *Watcher) orchestrator() *orchestrate.Orchestrator {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.orch
}

// Run processes every document once, then watches their directories until
// ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.state.Load(); err != nil {
		w.log.Warnf("Failed to load watch state: %v (starting fresh)", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: creating file watcher: %w", utils.ErrFilesystem, err)
	}
	defer fsw.Close()

	// Editors often replace files by renaming, so watch the directories
	dirs := make(map[string]bool)
	for key := range w.files {
		dirs[filepath.Dir(key)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("%w: watching '%s': %w", utils.ErrFilesystem, dir, err)
		}
	}

	w.log.Infof("Watching %d documents in %d directories (debounce %v)", len(w.paths), len(dirs), w.debounce)
	w.logSchedule()
	w.processAll(ctx)
	close(w.ready)

	pending := make(map[string]struct{})
	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Watcher shutting down...")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			w.saveState()
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path, watched := w.files[process.NormalizePath(event.Name)]
			if !watched {
				continue
			}
			w.log.WithField("file", path).Debugf("Change detected: %s", event.Op)
			pending[path] = struct{}{}

			if w.debounce <= 0 {
				w.processPending(ctx, pending)
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
			debounceCh = debounceTimer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnf("File watcher error: %v", err)

		case <-debounceCh:
			debounceCh = nil
			w.processPending(ctx, pending)

		case <-w.reload:
			w.log.Info("Settings changed, reprocessing all documents")
			w.processAll(ctx)
		}
	}
}

// processAll runs every watched document through the orchestrator
func (w *Watcher) processAll(ctx context.Context) {
	for _, result := range w.orchestrator().Run(ctx, w.paths) {
		w.report(result)
	}
	w.saveState()
}

// processPending handles the documents changed since the last flush, in a
// stable order, and empties pending
func (w *Watcher) processPending(ctx context.Context, pending map[string]struct{}) {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
		delete(pending, path)
	}
	sort.Strings(paths)

	orch := w.orchestrator()
	for _, path := range paths {
		w.report(orch.ProcessFile(ctx, path))
	}
	w.saveState()
}

func (w *Watcher) report(result orchestrate.FileResult) {
	w.state.Record(result)
	fileLog := w.log.WithField("file", result.Path)
	switch result.Status {
	case models.FileStatusChanged:
		fileLog.Infof("Updated %s", result.Path)
	case models.FileStatusFailure:
		fileLog.WithField("error_type", utils.CategorizeError(result.Error)).Errorf("Failed: %v", result.Error)
	default:
		fileLog.Debugf("%s in %v", result.Status, result.Duration)
	}
}

func (w *Watcher) saveState() {
	if err := w.state.Save(); err != nil {
		w.log.Errorf("Failed to save watch state: %v", err)
	}
}

// logSchedule logs what is known about each document from earlier sessions
func (w *Watcher) logSchedule() {
	for _, path := range w.paths {
		state, exists := w.state.GetFileState(path)
		if !exists {
			w.log.Debugf("  %s: not seen before", path)
			continue
		}
		status := "success"
		if !state.LastRunSuccess {
			status = "failed"
		}
		w.log.Infof("  %s: last run %s ago (%s, %d updates)",
			path, FormatInterval(time.Since(state.LastRunTime)), status, state.Updates)
	}
}

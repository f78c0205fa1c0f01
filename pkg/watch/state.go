package watch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Sriram-PR/md-toc/pkg/models"
	"github.com/Sriram-PR/md-toc/pkg/orchestrate"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

const stateFileName = "watch_state.json"

// FileState contains the last run information for a watched document
type FileState struct {
	LastRunTime    time.Time `json:"last_run_time"`
	LastRunSuccess bool      `json:"last_run_success"`
	Updates        int64     `json:"updates"` // Number of times the TOC was rewritten
	ErrorMessage   string    `json:"error_message,omitempty"`
}

// WatchState contains the persistent state of a watch session
type WatchState struct {
	Files     map[string]FileState `json:"files"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// StateManager handles persisting and loading watch state. An empty state
// directory keeps the state in memory only.
type StateManager struct {
	stateDir  string
	statePath string
	state     WatchState
	mu        sync.RWMutex
}

// NewStateManager creates a new state manager
func NewStateManager(stateDir string) *StateManager {
	m := &StateManager{
		stateDir: stateDir,
		state: WatchState{
			Files: make(map[string]FileState),
		},
	}
	if stateDir != "" {
		m.statePath = filepath.Join(stateDir, stateFileName)
	}
	return m
}

// Load loads the state from disk
func (m *StateManager) Load() error {
	if m.statePath == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No state file yet, start fresh
			m.state = WatchState{Files: make(map[string]FileState)}
			return nil
		}
		return fmt.Errorf("%w: failed to read state file: %w", utils.ErrFilesystem, err)
	}

	if err := json.Unmarshal(data, &m.state); err != nil {
		return fmt.Errorf("%w: failed to parse state file: %w", utils.ErrParsing, err)
	}
	if m.state.Files == nil {
		m.state.Files = make(map[string]FileState)
	}
	return nil
}

// Save saves the state to disk
func (m *StateManager) Save() error {
	if m.statePath == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.UpdatedAt = time.Now()

	if err := os.MkdirAll(m.stateDir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create state directory: %w", utils.ErrFilesystem, err)
	}

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(m.statePath, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write state file: %w", utils.ErrFilesystem, err)
	}
	return nil
}

// GetFileState returns the state for a specific document
func (m *StateManager) GetFileState(path string) (FileState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.state.Files[path]
	return state, ok
}

// Record updates the state of a document from a processing result.
// Skipped results (the watcher's own writes) leave the state untouched.
func (m *StateManager) Record(result orchestrate.FileResult) {
	if result.Status == models.FileStatusSkipped {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.state.Files[result.Path]
	state.LastRunTime = time.Now()
	state.LastRunSuccess = result.Error == nil
	state.ErrorMessage = ""
	if result.Error != nil {
		state.ErrorMessage = result.Error.Error()
	}
	if result.Changed() {
		state.Updates++
	}
	m.state.Files[result.Path] = state
}

// GetAllFileStates returns all document states
func (m *StateManager) GetAllFileStates() map[string]FileState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy
	result := make(map[string]FileState, len(m.state.Files))
	for k, v := range m.state.Files {
		result[k] = v
	}
	return result
}

// FormatInterval formats a duration for display
func FormatInterval(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		mins := int(d.Minutes()) % 60
		if mins > 0 {
			return fmt.Sprintf("%dh%dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if hours > 0 {
		return fmt.Sprintf("%dd%dh", days, hours)
	}
	return fmt.Sprintf("%dd", days)
}

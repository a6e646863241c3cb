package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"simple-panels/layout"
	"simple-panels/log"
)

const StateFileName = "state.json"

// State is the on-disk form of every persisted layout, keyed by storage key.
type State struct {
	Layouts map[string]string `json:"layouts"`
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{Layouts: make(map[string]string)}
}

// FileStorage is a layout.Storage backed by state.json in the config
// directory. Reads take a shared lock and writes an exclusive one, so several
// processes can share the file.
type FileStorage struct {
	path string

	// mu orders writes from the persistence timer against reads on the UI
	// goroutine within this process.
	mu sync.Mutex
}

var _ layout.Storage = (*FileStorage)(nil)

// NewFileStorage returns a FileStorage for the state file in dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, StateFileName)}
}

// DefaultFileStorage returns a FileStorage in the configuration directory.
func DefaultFileStorage() (*FileStorage, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileStorage(configDir), nil
}

// Path returns the state file path.
func (s *FileStorage) Path() string {
	return s.path
}

// GetItem implements layout.Storage. A missing or unreadable state file
// reads as empty.
func (s *FileStorage) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return "", false
	}

	lock := NewFileLock(s.path)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	state, err := readState(s.path)
	if err != nil {
		log.WarningLog.Printf("failed to read layout state: %v", err)
		return "", false
	}
	value, ok := state.Layouts[key]
	return value, ok
}

// SetItem implements layout.Storage.
func (s *FileStorage) SetItem(key, value string) error {
	return s.update(func(state *State) {
		state.Layouts[key] = value
	})
}

// Delete removes one persisted layout.
func (s *FileStorage) Delete(key string) error {
	return s.update(func(state *State) {
		delete(state.Layouts, key)
	})
}

// Clear removes every persisted layout.
func (s *FileStorage) Clear() error {
	return s.update(func(state *State) {
		state.Layouts = make(map[string]string)
	})
}

// Keys returns the stored keys in sorted order.
func (s *FileStorage) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := readState(s.path)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(state.Layouts))
	for k := range state.Layouts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// update applies fn to the current state under an exclusive lock and writes
// the result back.
func (s *FileStorage) update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := NewFileLock(s.path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	state, err := readState(s.path)
	if err != nil {
		// A corrupt file is replaced rather than blocking every write.
		log.WarningLog.Printf("discarding unreadable layout state: %v", err)
		state = DefaultState()
	}
	fn(state)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state: %w", err)
	}
	return nil
}

// readState loads the state file. A missing file is an empty state.
func readState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultState(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state := DefaultState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if state.Layouts == nil {
		state.Layouts = make(map[string]string)
	}
	return state, nil
}

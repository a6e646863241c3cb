// Package inspect describes the live panel layout for debugging and automated
// checks. With SP_INSPECT set the app writes a JSON snapshot of every panel
// group (sizes, collapsed flags, separator positions, hover) after each change.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar turns inspection on. "1" writes to DefaultFileName in the temp dir;
// any other value except "0" is taken as the output path.
const EnvVar = "SP_INSPECT"

// DefaultFileName is the snapshot file used when EnvVar is "1".
const DefaultFileName = "simple-panels-inspect.json"

// Introspectable is implemented by views that can describe their layout.
type Introspectable interface {
	InspectNode() *Node
}

var (
	pathOnce sync.Once
	path     string
)

// Path returns where snapshots go, or "" when inspection is off.
func Path() string {
	pathOnce.Do(func() {
		path = resolvePath(os.Getenv(EnvVar))
	})
	return path
}

// Enabled reports whether snapshots are written.
func Enabled() bool {
	return Path() != ""
}

func resolvePath(value string) string {
	switch value {
	case "", "0":
		return ""
	case "1":
		return filepath.Join(os.TempDir(), DefaultFileName)
	}
	return value
}

// Write stores the snapshot at Path. It does nothing when inspection is off.
func Write(snapshot *Snapshot) error {
	if !Enabled() {
		return nil
	}
	return WriteFile(snapshot, Path())
}

// WriteFile stores the snapshot at path, replacing the file in one rename so
// a reader never sees half a snapshot.
func WriteFile(snapshot *Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// ReadFile loads a snapshot written by WriteFile.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snapshot, nil
}

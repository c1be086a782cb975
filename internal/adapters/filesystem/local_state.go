// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// LocalStateFile is the state file name inside the state directory.
const LocalStateFile = "local.yaml"

// LocalStateAdapter implements secondary.LocalStateStore as a YAML file.
type LocalStateAdapter struct {
	path string
}

// NewLocalStateAdapter creates a store backed by <stateDir>/local.yaml.
func NewLocalStateAdapter(stateDir string) *LocalStateAdapter {
	return &LocalStateAdapter{path: filepath.Join(stateDir, LocalStateFile)}
}

// Path returns the backing file path.
func (a *LocalStateAdapter) Path() string {
	return a.path
}

// Load reads the state file. A missing file yields an empty state.
func (a *LocalStateAdapter) Load(ctx context.Context) (*secondary.LocalStateRecord, error) {
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return &secondary.LocalStateRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local state: %w", err)
	}

	state := &secondary.LocalStateRecord{}
	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse local state: %w", err)
	}
	return state, nil
}

// Save writes the state through a temp file and rename so a crash never
// leaves a truncated file behind.
func (a *LocalStateAdapter) Save(ctx context.Context, state *secondary.LocalStateRecord) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal local state: %w", err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".local-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write local state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write local state: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		return fmt.Errorf("failed to replace local state: %w", err)
	}
	return nil
}

// Ensure LocalStateAdapter implements the interface
var _ secondary.LocalStateStore = (*LocalStateAdapter)(nil)

package selection

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/loom/internal/catalog"
)

// snapshotFile is the on-disk shape of a saved selection.
type snapshotFile struct {
	Task   string                   `yaml:"task"`
	Values map[string]catalog.Value `yaml:"values,omitempty"`
}

// Encode renders the selection as YAML snapshot bytes.
func (s *State) Encode() ([]byte, error) {
	snap := snapshotFile{Task: s.task, Values: s.Snapshot()}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("selection: encode snapshot: %w", err)
	}
	return data, nil
}

// Save writes the selection to a YAML snapshot file.
func (s *State) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("selection: write snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot file back into a State bound to the given catalog.
// Values saved by an older catalog are kept as stored; compile-time fallback
// handles entries the current catalog no longer declares.
func Load(path string, cat catalog.Catalog) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("selection: read snapshot: %w", err)
	}
	return Parse(data, cat)
}

// Parse decodes snapshot bytes into a State bound to the given catalog.
func Parse(data []byte, cat catalog.Catalog) (*State, error) {
	var snap snapshotFile
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("selection: decode snapshot: %w", err)
	}
	if snap.Task == "" {
		return nil, fmt.Errorf("selection: snapshot names no task")
	}
	values := make(map[string]catalog.Value, len(snap.Values))
	for key, value := range snap.Values {
		values[key] = value.Clone()
	}
	return &State{task: snap.Task, cat: cat, values: values}, nil
}

package project

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultInterfaceFile is the conventional name for a project's interface
// description.
const DefaultInterfaceFile = "interface.json"

// ParseDefinition decodes an interface description from JSON or YAML bytes
// and validates it. YAML is a superset of JSON, so one decode path serves
// both encodings.
func ParseDefinition(data []byte) (*Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("project: definition payload is empty")
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("project: decode definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadReader reads an interface description from an io.Reader.
func LoadReader(r io.Reader) (*Definition, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("project: read definition: %w", err)
	}
	return ParseDefinition(content)
}

// LoadFile loads an interface description from an explicit file path.
func LoadFile(path string) (*Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", path, err)
	}
	def, parseErr := ParseDefinition(content)
	if parseErr != nil {
		return nil, fmt.Errorf("project: %s: %w", path, parseErr)
	}
	return def, nil
}

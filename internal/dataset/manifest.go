// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/graphset/pkg/types"
)

// Manifest is the on-disk list of user-defined datasets. Entries add to the
// built-in registry, or replace built-in entries of the same name.
type Manifest struct {
	Datasets []types.Dataset `yaml:"datasets"`
}

// LoadManifest reads a YAML manifest from path. A missing file is not an
// error: it yields an empty manifest, so the built-in registry stands alone.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// WriteManifest saves a manifest to path, for seeding a datasets.yaml to edit.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadRegistry builds the registry from the built-ins plus the manifest at
// path (if any).
func LoadRegistry(manifestPath string) (*Registry, error) {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	return NewRegistry(m.Datasets)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "graphset/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the dataset fetch pipeline.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DatasetsDir is the directory that receives derived .dat outputs and
	// their metadata sidecars. Staging directories are created under it.
	DatasetsDir string `json:"datasets_dir" yaml:"datasets_dir"`

	// Force re-runs the pipeline even when the derived output already exists.
	Force bool `json:"force" yaml:"force"`
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// ExternalCommand is the converter binary used by datasets whose
	// backend is "external". The dataset's size identifier is passed as
	// the single positional argument.
	ExternalCommand string `json:"external_command" yaml:"external_command"`
}

// CatalogConfig holds settings for the fetch catalog.
type CatalogConfig struct {
	// Enabled controls whether successful fetches are recorded. The
	// catalog is advisory; disabling it changes nothing else.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}

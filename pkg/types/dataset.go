// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArchiveKind identifies how a dataset archive is packaged.
type ArchiveKind string

const (
	ArchiveZip   ArchiveKind = "zip"
	ArchiveTarGz ArchiveKind = "tar.gz"
	// ArchiveGz is a single gzip-compressed file, not a container.
	ArchiveGz ArchiveKind = "gz"
)

// ConverterBackend selects how extracted raw files become a .dat edge list.
type ConverterBackend string

const (
	// BackendMovielens parses a "::"-delimited ratings.dat file.
	BackendMovielens ConverterBackend = "movielens"
	// BackendEdgelist parses a generic delimited ratings file.
	BackendEdgelist ConverterBackend = "edgelist"
	// BackendExternal runs a user-configured converter command with the
	// dataset size identifier as its one positional argument.
	BackendExternal ConverterBackend = "external"
)

// EdgelistLayout describes the ratings file consumed by the edgelist backend.
type EdgelistLayout struct {
	// File is the ratings file path relative to the extracted directory.
	File string `json:"file" yaml:"file"`

	// Delimiter separates fields. "\t" when empty.
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`

	// EntityCol, ItemCol, and WeightCol are zero-based field positions.
	// WeightCol -1 means unweighted (weight 1).
	EntityCol int `json:"entity_col" yaml:"entity_col"`
	ItemCol   int `json:"item_col" yaml:"item_col"`
	WeightCol int `json:"weight_col" yaml:"weight_col"`
}

// Dataset describes one fetchable dataset: where its archive lives, how to
// unpack it, and how to convert the raw files into a .dat edge list.
type Dataset struct {
	// Name is the registry key and the stem of the derived output
	// (e.g. "movielens-1m" produces movielens-1m.dat).
	Name string `json:"name" yaml:"name"`

	// URL is the public archive location.
	URL string `json:"url" yaml:"url"`

	// Archive is the packaging of the file at URL.
	Archive ArchiveKind `json:"archive" yaml:"archive"`

	// ExtractedName is the directory (or, for gz archives, the file) the
	// archive unpacks to, relative to the staging directory.
	ExtractedName string `json:"extracted_name" yaml:"extracted_name"`

	// Backend selects the conversion strategy.
	Backend ConverterBackend `json:"backend" yaml:"backend"`

	// SizeID is the dataset size identifier (e.g. "1m", "100k"). It is
	// the positional argument handed to external converters.
	SizeID string `json:"size_id" yaml:"size_id"`

	// Layout configures the native backends. Ignored by external.
	Layout EdgelistLayout `json:"layout,omitempty" yaml:"layout,omitempty"`

	// Description is a one-line human summary shown by `graphset list`.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// OutputName returns the derived output filename for the dataset.
func (d Dataset) OutputName() string { return d.Name + ".dat" }

// FetchRecord is the provenance of one successful fetch. It is written to
// the metadata sidecar next to the .dat output and to the catalog.
type FetchRecord struct {
	Name      string    `json:"name" yaml:"name"`
	SourceURL string    `json:"source_url" yaml:"source_url"`
	SizeID    string    `json:"size_id,omitempty" yaml:"size_id,omitempty"`
	Output    string    `json:"output" yaml:"output"`
	Entities  int       `json:"entities" yaml:"entities"`
	Items     int       `json:"items" yaml:"items"`
	Edges     int       `json:"edges" yaml:"edges"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

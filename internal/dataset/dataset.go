// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset holds the registry of fetchable datasets and the YAML
// manifest that extends it.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/graphset/internal/archive"
	"github.com/pdiddy/graphset/pkg/types"
)

// Builtin returns the datasets known without any manifest.
func Builtin() []types.Dataset {
	return []types.Dataset{
		{
			Name:          "movielens-100k",
			URL:           "https://files.grouplens.org/datasets/movielens/ml-100k.zip",
			Archive:       types.ArchiveZip,
			ExtractedName: "ml-100k",
			Backend:       types.BackendEdgelist,
			SizeID:        "100k",
			Layout: types.EdgelistLayout{
				File:      "u.data",
				Delimiter: "\t",
				EntityCol: 0,
				ItemCol:   1,
				WeightCol: 2,
			},
			Description: "MovieLens 100K ratings (users x movies)",
		},
		{
			Name:          "movielens-1m",
			URL:           "https://files.grouplens.org/datasets/movielens/ml-1m.zip",
			Archive:       types.ArchiveZip,
			ExtractedName: "ml-1m",
			Backend:       types.BackendMovielens,
			SizeID:        "1m",
			Layout: types.EdgelistLayout{
				File:      "ratings.dat",
				Delimiter: "::",
				EntityCol: 0,
				ItemCol:   1,
				WeightCol: 2,
			},
			Description: "MovieLens 1M ratings (users x movies)",
		},
		{
			Name:          "beeradvocate",
			URL:           "https://snap.stanford.edu/data/web-BeerAdvocate.txt.gz",
			Archive:       types.ArchiveGz,
			ExtractedName: "beeradvocate.txt",
			Backend:       types.BackendExternal,
			SizeID:        "full",
			Description:   "BeerAdvocate reviews (users x beers), needs an external converter",
		},
	}
}

// Registry resolves dataset names to descriptors.
type Registry struct {
	byName map[string]types.Dataset
}

// NewRegistry builds a registry from the built-in datasets plus overrides.
// An override with a known name replaces the built-in entry.
func NewRegistry(overrides []types.Dataset) (*Registry, error) {
	r := &Registry{byName: make(map[string]types.Dataset)}
	for _, ds := range Builtin() {
		r.byName[ds.Name] = ds
	}
	for _, ds := range overrides {
		if ds.Archive == "" {
			kind, err := archive.KindFromURL(ds.URL)
			if err != nil {
				return nil, fmt.Errorf("dataset %q: %w", ds.Name, err)
			}
			ds.Archive = kind
		}
		if err := validate(ds); err != nil {
			return nil, fmt.Errorf("dataset %q: %w", ds.Name, err)
		}
		r.byName[ds.Name] = ds
	}
	return r, nil
}

// Get returns the dataset for name. The error lists known names so a typo
// is self-diagnosing.
func (r *Registry) Get(name string) (types.Dataset, error) {
	ds, ok := r.byName[name]
	if !ok {
		return types.Dataset{}, fmt.Errorf("unknown dataset %q (known: %s)",
			name, strings.Join(r.Names(), ", "))
	}
	return ds, nil
}

// Names returns all registered dataset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered datasets ordered by name.
func (r *Registry) All() []types.Dataset {
	out := make([]types.Dataset, 0, len(r.byName))
	for _, name := range r.Names() {
		out = append(out, r.byName[name])
	}
	return out
}

func validate(ds types.Dataset) error {
	if ds.Name == "" {
		return fmt.Errorf("missing name")
	}
	if ds.URL == "" {
		return fmt.Errorf("missing url")
	}
	switch ds.Archive {
	case types.ArchiveZip, types.ArchiveTarGz, types.ArchiveGz:
	default:
		return fmt.Errorf("unknown archive kind %q", ds.Archive)
	}
	if ds.ExtractedName == "" {
		return fmt.Errorf("missing extracted_name")
	}
	switch ds.Backend {
	case types.BackendMovielens, types.BackendExternal:
	case types.BackendEdgelist:
		if ds.Layout.File == "" {
			return fmt.Errorf("edgelist backend needs layout.file")
		}
		if err := validateColumns(ds.Layout); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown backend %q", ds.Backend)
	}
	return nil
}

// validateColumns rejects layouts whose column positions collide. In
// particular an omitted weight_col is 0 and lands on the entity column;
// unweighted layouts must say weight_col: -1 explicitly.
func validateColumns(l types.EdgelistLayout) error {
	if l.EntityCol < 0 || l.ItemCol < 0 {
		return fmt.Errorf("layout entity_col and item_col must be non-negative")
	}
	if l.EntityCol == l.ItemCol {
		return fmt.Errorf("layout entity_col and item_col are both %d", l.EntityCol)
	}
	if l.WeightCol < -1 {
		return fmt.Errorf("layout weight_col must be a field position or -1 for unweighted")
	}
	if l.WeightCol == l.EntityCol || l.WeightCol == l.ItemCol {
		return fmt.Errorf("layout weight_col %d collides with an ID column; use -1 for unweighted data", l.WeightCol)
	}
	return nil
}

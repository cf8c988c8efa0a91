// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns extracted raw dataset files into .dat edge lists
// with pluggable backends.
package convert

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/graphset/pkg/eigraph"
	"github.com/pdiddy/graphset/pkg/types"
)

// Converter transforms the extracted files of one dataset into a .dat edge
// list at outPath. Different backends (movielens, edgelist, external)
// implement this interface.
type Converter interface {
	// Convert reads raw files under extractedDir and writes the edge list
	// to outPath, returning the resulting graph counts.
	Convert(extractedDir, outPath string) (eigraph.Stats, error)
}

// ForDataset returns the converter for the dataset's backend.
func ForDataset(ds types.Dataset, cfg types.ConvertConfig) (Converter, error) {
	switch ds.Backend {
	case types.BackendMovielens:
		return &MovielensConverter{Layout: ds.Layout}, nil
	case types.BackendEdgelist:
		return &EdgelistConverter{Layout: ds.Layout}, nil
	case types.BackendExternal:
		if cfg.ExternalCommand == "" {
			return nil, fmt.Errorf("dataset %s needs an external converter command (convert.external_command)", ds.Name)
		}
		return NewExternalConverter(cfg.ExternalCommand, ds), nil
	default:
		return nil, fmt.Errorf("unknown converter backend %q", ds.Backend)
	}
}

// parseDelimited reads a delimited ratings file into an entity-item graph.
// Raw entity and item identifiers are assigned node IDs in first-seen order.
// A repeated (entity, item) pair keeps its first weight; review dumps
// occasionally carry duplicates.
func parseDelimited(r io.Reader, layout types.EdgelistLayout) (*eigraph.Graph, error) {
	delim := layout.Delimiter
	if delim == "" {
		delim = "\t"
	}
	maxCol := layout.EntityCol
	if layout.ItemCol > maxCol {
		maxCol = layout.ItemCol
	}
	if layout.WeightCol > maxCol {
		maxCol = layout.WeightCol
	}

	g := eigraph.New(0, 0)
	entityIDs := make(map[string]int)
	itemIDs := make(map[string]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, delim)
		if len(fields) <= maxCol {
			return nil, fmt.Errorf("line %d: want at least %d fields, got %d", line, maxCol+1, len(fields))
		}

		rawEntity := strings.TrimSpace(fields[layout.EntityCol])
		rawItem := strings.TrimSpace(fields[layout.ItemCol])
		if rawEntity == "" || rawItem == "" {
			return nil, fmt.Errorf("line %d: empty entity or item field", line)
		}

		weight := 1.0
		if layout.WeightCol >= 0 {
			w, err := strconv.ParseFloat(strings.TrimSpace(fields[layout.WeightCol]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: weight: %w", line, err)
			}
			weight = w
		}

		entity, ok := entityIDs[rawEntity]
		if !ok {
			entity = g.AddEntity()
			entityIDs[rawEntity] = entity
		}
		item, ok := itemIDs[rawItem]
		if !ok {
			item = g.AddItem()
			itemIDs[rawItem] = item
		}
		if g.HasEdge(entity, item) {
			continue
		}
		if err := g.AddEdge(entity, item, weight); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ratings: %w", err)
	}
	if g.NumEdges() == 0 {
		return nil, fmt.Errorf("ratings file produced no edges")
	}
	return g, nil
}

func stats(g *eigraph.Graph) eigraph.Stats {
	return eigraph.Stats{
		Entities: g.NumEntities(),
		Items:    g.NumItems(),
		Edges:    g.NumEdges(),
	}
}

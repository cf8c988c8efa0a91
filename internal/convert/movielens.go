// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/graphset/pkg/eigraph"
	"github.com/pdiddy/graphset/pkg/types"
)

// movielensDefaults is the layout of the 1M-style ratings.dat file:
// UserID::MovieID::Rating::Timestamp.
var movielensDefaults = types.EdgelistLayout{
	File:      "ratings.dat",
	Delimiter: "::",
	EntityCol: 0,
	ItemCol:   1,
	WeightCol: 2,
}

// MovielensConverter parses a "::"-delimited MovieLens ratings file.
// Entities are users, items are movies, weights are ratings.
type MovielensConverter struct {
	// Layout can override the ratings file name and delimiter. The column
	// positions are fixed by the MovieLens format; datasets with other
	// column orders belong to the edgelist backend.
	Layout types.EdgelistLayout
}

func (c *MovielensConverter) layout() types.EdgelistLayout {
	l := movielensDefaults
	if c.Layout.File != "" {
		l.File = c.Layout.File
	}
	if c.Layout.Delimiter != "" {
		l.Delimiter = c.Layout.Delimiter
	}
	return l
}

// Convert parses the ratings file under extractedDir and writes the edge
// list to outPath.
func (c *MovielensConverter) Convert(extractedDir, outPath string) (eigraph.Stats, error) {
	layout := c.layout()
	path := filepath.Join(extractedDir, layout.File)
	f, err := os.Open(path)
	if err != nil {
		return eigraph.Stats{}, fmt.Errorf("opening ratings file: %w", err)
	}
	defer f.Close()

	g, err := parseDelimited(f, layout)
	if err != nil {
		return eigraph.Stats{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := g.WriteFile(outPath); err != nil {
		return eigraph.Stats{}, err
	}
	return stats(g), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/graphset/pkg/eigraph"
	"github.com/pdiddy/graphset/pkg/types"
)

// EdgelistConverter parses a generic delimited ratings file, such as the
// tab-separated u.data of MovieLens 100K.
type EdgelistConverter struct {
	Layout types.EdgelistLayout
}

// Convert parses the configured ratings file under extractedDir and writes
// the edge list to outPath.
func (c *EdgelistConverter) Convert(extractedDir, outPath string) (eigraph.Stats, error) {
	if c.Layout.File == "" {
		return eigraph.Stats{}, fmt.Errorf("edgelist backend needs a ratings file in its layout")
	}
	path := filepath.Join(extractedDir, c.Layout.File)
	f, err := os.Open(path)
	if err != nil {
		return eigraph.Stats{}, fmt.Errorf("opening ratings file: %w", err)
	}
	defer f.Close()

	g, err := parseDelimited(f, c.Layout)
	if err != nil {
		return eigraph.Stats{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := g.WriteFile(outPath); err != nil {
		return eigraph.Stats{}, err
	}
	return stats(g), nil
}

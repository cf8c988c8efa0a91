// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eigraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// The .dat edge-list format: a header line "entities items edges" followed
// by one "entity item weight" line per edge, space separated. Weights are
// written without trailing zeros.

// Stats holds the counts from a .dat header.
type Stats struct {
	Entities int
	Items    int
	Edges    int
}

// Write serializes the graph in .dat edge-list form.
func (g *Graph) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", g.numEntities, g.numItems, g.numEdges)
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%d %d %s\n", e.Entity, e.Item, formatWeight(e.Weight))
	}
	return bw.Flush()
}

// WriteFile writes the graph to path in .dat form, creating or truncating it.
func (g *Graph) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	writeErr := g.Write(f)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}
	return nil
}

// Read parses a .dat edge list into a graph.
func Read(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("empty edge list")
	}
	stats, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	g := New(stats.Entities, stats.Items)
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 fields, got %d", line, len(fields))
		}
		entity, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: entity: %w", line, err)
		}
		item, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: item: %w", line, err)
		}
		weight, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: weight: %w", line, err)
		}
		if err := g.AddEdge(entity, item, weight); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading edge list: %w", err)
	}
	if g.NumEdges() != stats.Edges {
		return nil, fmt.Errorf("header declares %d edges, found %d", stats.Edges, g.NumEdges())
	}
	return g, nil
}

// ReadFile reads a .dat edge list from path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return g, nil
}

// ReadStats reads only the header counts of the .dat file at path. It does
// not validate the edge lines, so it is cheap on large files.
func ReadStats(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return Stats{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return Stats{}, fmt.Errorf("%s: empty edge list", path)
	}
	stats, err := parseHeader(sc.Text())
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return stats, nil
}

func parseHeader(line string) (Stats, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 3 {
		return Stats{}, fmt.Errorf("malformed header %q: want \"entities items edges\"", line)
	}
	var vals [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return Stats{}, fmt.Errorf("malformed header %q: %q is not a count", line, f)
		}
		vals[i] = v
	}
	return Stats{Entities: vals[0], Items: vals[1], Edges: vals[2]}, nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

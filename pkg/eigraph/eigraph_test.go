// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eigraph

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// tinyGraph builds a small fixed network:
//
//	1 -> [2, 4, 6]
//	3 -> [8]
//	5 -> [4, 8]
//	7 -> [6, 8, 10]
//	9 -> [2, 10]
//	11 -> [10]
func tinyGraph(t *testing.T) *Graph {
	t.Helper()
	g := New(6, 5)
	edges := [][2]int{
		{1, 2}, {1, 4}, {1, 6},
		{3, 8},
		{5, 4}, {5, 8},
		{7, 6}, {7, 8}, {7, 10},
		{9, 2}, {9, 10},
		{11, 10},
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1], 1); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestNodeIDConvention(t *testing.T) {
	g := New(0, 0)
	if id := g.AddEntity(); id != 1 {
		t.Errorf("first entity ID = %d, want 1", id)
	}
	if id := g.AddItem(); id != 2 {
		t.Errorf("first item ID = %d, want 2", id)
	}
	if id := g.AddEntity(); id != 3 {
		t.Errorf("second entity ID = %d, want 3", id)
	}
	if id := g.AddItem(); id != 4 {
		t.Errorf("second item ID = %d, want 4", id)
	}
}

func TestIsEntityIsItem(t *testing.T) {
	tests := []struct {
		nid        int
		wantEntity bool
		wantItem   bool
	}{
		{1, true, false},
		{2, false, true},
		{11, true, false},
		{10, false, true},
		{0, false, false},
		{-1, false, false},
	}
	for _, tt := range tests {
		if got := IsEntity(tt.nid); got != tt.wantEntity {
			t.Errorf("IsEntity(%d) = %v, want %v", tt.nid, got, tt.wantEntity)
		}
		if got := IsItem(tt.nid); got != tt.wantItem {
			t.Errorf("IsItem(%d) = %v, want %v", tt.nid, got, tt.wantItem)
		}
	}
}

func TestAddEdge(t *testing.T) {
	g := tinyGraph(t)

	if g.NumEntities() != 6 || g.NumItems() != 5 || g.NumEdges() != 12 {
		t.Errorf("counts = (%d, %d, %d), want (6, 5, 12)",
			g.NumEntities(), g.NumItems(), g.NumEdges())
	}

	// Endpoint order does not matter.
	if !g.HasEdge(2, 1) {
		t.Error("HasEdge(2, 1) = false, want true")
	}
	if g.HasEdge(3, 2) {
		t.Error("HasEdge(3, 2) = true, want false")
	}

	if err := g.AddEdge(1, 2, 1); err == nil {
		t.Error("duplicate AddEdge(1, 2) succeeded, want error")
	}
	if err := g.AddEdge(1, 3, 1); err == nil {
		t.Error("AddEdge between two entities succeeded, want error")
	}
	if err := g.AddEdge(99, 2, 1); err == nil {
		t.Error("AddEdge with missing entity succeeded, want error")
	}
}

func TestDelEdge(t *testing.T) {
	g := tinyGraph(t)

	if err := g.DelEdge(2, 1); err != nil {
		t.Fatalf("DelEdge(2, 1): %v", err)
	}
	if g.HasEdge(1, 2) {
		t.Error("HasEdge(1, 2) = true after DelEdge")
	}
	if g.NumEdges() != 11 {
		t.Errorf("edges = %d, want 11", g.NumEdges())
	}

	if err := g.DelEdge(1, 2); err == nil {
		t.Error("DelEdge on absent edge succeeded, want error")
	}

	// Node counts are unchanged; only the edge is gone.
	if g.NumEntities() != 6 || g.NumItems() != 5 {
		t.Errorf("counts = (%d, %d), want (6, 5)", g.NumEntities(), g.NumItems())
	}
}

func TestNeighbors(t *testing.T) {
	g := tinyGraph(t)
	got := g.Neighbors(7)
	want := []int{6, 8, 10}
	if len(got) != len(want) {
		t.Fatalf("Neighbors(7) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Neighbors(7) = %v, want %v", got, want)
		}
	}
	if n := g.Neighbors(99); len(n) != 0 {
		t.Errorf("Neighbors(99) = %v, want empty", n)
	}
}

func TestWriteAndRead(t *testing.T) {
	g := New(2, 2)
	if err := g.AddEdge(1, 2, 4.5); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(3, 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(3, 4, 2); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := g.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "2 2 3\n1 2 4.5\n3 2 1\n3 4 2\n"
	if buf.String() != want {
		t.Errorf("Write output = %q, want %q", buf.String(), want)
	}

	back, err := Read(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.NumEdges() != 3 {
		t.Errorf("read-back edges = %d, want 3", back.NumEdges())
	}
	if w, ok := back.Weight(1, 2); !ok || w != 4.5 {
		t.Errorf("read-back Weight(1, 2) = (%v, %v), want (4.5, true)", w, ok)
	}
}

func TestReadRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad header", "one two three\n"},
		{"short edge line", "1 1 1\n1 2\n"},
		{"non-numeric weight", "1 1 1\n1 2 high\n"},
		{"edge count mismatch", "1 1 2\n1 2 1\n"},
		{"entity-entity edge", "2 1 1\n1 3 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Read(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestFileRoundTripAndStats(t *testing.T) {
	g := tinyGraph(t)
	path := filepath.Join(t.TempDir(), "tiny.dat")

	if err := g.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stats, err := ReadStats(path)
	if err != nil {
		t.Fatalf("ReadStats: %v", err)
	}
	if stats != (Stats{Entities: 6, Items: 5, Edges: 12}) {
		t.Errorf("ReadStats = %+v, want {6 5 12}", stats)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if back.NumEdges() != g.NumEdges() {
		t.Errorf("read-back edges = %d, want %d", back.NumEdges(), g.NumEdges())
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eigraph implements an entity-item graph: an undirected bipartite
// graph whose edges connect entities to items only. Entities are odd node
// IDs starting at 1; items are even node IDs starting at 2. Edges carry a
// weight (a rating, a review score).
package eigraph

import (
	"fmt"
	"sort"
)

// Graph is an entity-item graph. The zero value is not usable; call New.
type Graph struct {
	numEntities int
	numItems    int
	numEdges    int

	// adj maps entity node ID -> item node ID -> edge weight.
	adj map[int]map[int]float64
}

// New returns an empty graph with numEntities entities and numItems items
// pre-allocated. Node IDs follow the odd/even convention: the first entity
// is 1, the first item is 2.
func New(numEntities, numItems int) *Graph {
	g := &Graph{adj: make(map[int]map[int]float64)}
	for i := 0; i < numEntities; i++ {
		g.AddEntity()
	}
	for i := 0; i < numItems; i++ {
		g.AddItem()
	}
	return g
}

// AddEntity adds an entity and returns its node ID.
func (g *Graph) AddEntity() int {
	id := g.numEntities*2 + 1
	g.numEntities++
	return id
}

// AddItem adds an item and returns its node ID.
func (g *Graph) AddItem() int {
	id := (g.numItems + 1) * 2
	g.numItems++
	return id
}

// IsEntity reports whether nid is an entity node ID.
func IsEntity(nid int) bool { return nid >= 1 && nid%2 == 1 }

// IsItem reports whether nid is an item node ID.
func IsItem(nid int) bool { return nid >= 2 && nid%2 == 0 }

// orderEI returns (entity, item) for an edge given in either order.
func orderEI(nid1, nid2 int) (int, int) {
	if IsEntity(nid2) {
		return nid2, nid1
	}
	return nid1, nid2
}

// AddEdge adds a weighted edge between an entity and an item, given in
// either order. Both endpoints must already exist. Adding an edge that is
// already present is an error.
func (g *Graph) AddEdge(nid1, nid2 int, weight float64) error {
	entity, item := orderEI(nid1, nid2)
	if !IsEntity(entity) || !IsItem(item) {
		return fmt.Errorf("edge (%d, %d) does not connect an entity to an item", nid1, nid2)
	}
	if entity > g.numEntities*2-1 {
		return fmt.Errorf("entity %d does not exist (have %d entities)", entity, g.numEntities)
	}
	if item > g.numItems*2 {
		return fmt.Errorf("item %d does not exist (have %d items)", item, g.numItems)
	}
	items, ok := g.adj[entity]
	if !ok {
		items = make(map[int]float64)
		g.adj[entity] = items
	}
	if _, dup := items[item]; dup {
		return fmt.Errorf("edge (%d, %d) already exists", entity, item)
	}
	items[item] = weight
	g.numEdges++
	return nil
}

// DelEdge removes the edge between the two nodes, given in either order.
// Removing an absent edge is an error.
func (g *Graph) DelEdge(nid1, nid2 int) error {
	entity, item := orderEI(nid1, nid2)
	if _, ok := g.adj[entity][item]; !ok {
		return fmt.Errorf("edge (%d, %d) does not exist", nid1, nid2)
	}
	delete(g.adj[entity], item)
	if len(g.adj[entity]) == 0 {
		delete(g.adj, entity)
	}
	g.numEdges--
	return nil
}

// HasEdge reports whether an edge connects the two nodes, given in either order.
func (g *Graph) HasEdge(nid1, nid2 int) bool {
	entity, item := orderEI(nid1, nid2)
	_, ok := g.adj[entity][item]
	return ok
}

// Weight returns the weight of the edge between the two nodes. The second
// return value reports whether the edge exists.
func (g *Graph) Weight(nid1, nid2 int) (float64, bool) {
	entity, item := orderEI(nid1, nid2)
	w, ok := g.adj[entity][item]
	return w, ok
}

// NumEntities returns the number of entities in the graph.
func (g *Graph) NumEntities() int { return g.numEntities }

// NumItems returns the number of items in the graph.
func (g *Graph) NumItems() int { return g.numItems }

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int { return g.numEdges }

// Neighbors returns the item node IDs adjacent to the given entity, in
// ascending order.
func (g *Graph) Neighbors(entity int) []int {
	items := g.adj[entity]
	out := make([]int, 0, len(items))
	for item := range items {
		out = append(out, item)
	}
	sort.Ints(out)
	return out
}

// Edge is one weighted entity-item edge.
type Edge struct {
	Entity int
	Item   int
	Weight float64
}

// Edges returns every edge, ordered by entity then item. The ordering is
// deterministic so that serialized output is reproducible.
func (g *Graph) Edges() []Edge {
	entities := make([]int, 0, len(g.adj))
	for e := range g.adj {
		entities = append(entities, e)
	}
	sort.Ints(entities)

	out := make([]Edge, 0, g.numEdges)
	for _, e := range entities {
		for _, item := range g.Neighbors(e) {
			out = append(out, Edge{Entity: e, Item: item, Weight: g.adj[e][item]})
		}
	}
	return out
}

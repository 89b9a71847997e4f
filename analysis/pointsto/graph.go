// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pointsto implements an inclusion-based (Andersen-style) points-to
// analysis over assignment constraints. The constraint graph holds one node
// per distinct variable; a directed inclusion edge v → w asserts that w's
// points-to set must be a superset of v's. The solver propagates points-to
// sets along inclusion edges to a fixpoint, discovering new edges from
// dereference constraints as the sets grow.
package pointsto

import (
	"fmt"

	"github.com/andersen-tools/pointsto/internal/funcutil"
	"golang.org/x/exp/slices"
)

// NodeID identifies a variable node in the graph's arena. IDs are dense:
// the first node created gets ID 0. Points-to sets and edges store NodeIDs
// rather than node pointers so that all mutation goes through the owning
// graph.
type NodeID int

// A node is one program variable together with the set of variables it may
// point to. Points-to sets only grow during solving, never shrink.
type node struct {
	name string
	pts  map[NodeID]bool
}

// Graph is the constraint graph: the variable universe, the per-variable
// points-to sets and the inclusion-edge relation, plus an index from
// identifier to node for O(1) lookup. The graph owns all nodes and edges.
type Graph struct {
	// nodes is the node arena, indexed by NodeID.
	nodes []*node

	// index maps a variable identifier to its node.
	index map[string]NodeID

	// succs[v] is the successor set of v: succs[v][w] means the inclusion
	// edge v → w is present. At most one edge exists per ordered pair.
	succs []map[NodeID]bool
}

// NewGraph returns an empty constraint graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]NodeID)}
}

// AddNode creates a node for name only if absent and returns the node's id.
// Calling it again with the same name is a no-op returning the existing id.
func (g *Graph) AddNode(name string) NodeID {
	if id, ok := g.index[name]; ok {
		return id
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &node{name: name, pts: map[NodeID]bool{}})
	g.succs = append(g.succs, map[NodeID]bool{})
	g.index[name] = id
	return id
}

// Lookup returns the id of the node registered for name.
func (g *Graph) Lookup(name string) (NodeID, bool) {
	id, ok := g.index[name]
	return id, ok
}

// node returns the node for id. An out-of-range id means an edge or set
// operation ran before the identifier was registered; initialization makes
// that unreachable, so it is a contract violation and panics.
func (g *Graph) node(id NodeID) *node {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("pointsto: no node with id %d", id))
	}
	return g.nodes[id]
}

// AddEdge inserts the directed inclusion edge from → to. Both endpoints
// must already exist. Inserting an existing edge leaves the graph unchanged.
func (g *Graph) AddEdge(from, to NodeID) {
	g.node(from)
	g.node(to)
	g.succs[from][to] = true
}

// ContainsEdge reports whether the inclusion edge from → to is present.
func (g *Graph) ContainsEdge(from, to NodeID) bool {
	g.node(from)
	g.node(to)
	return g.succs[from][to]
}

// NumNodes returns the number of variable nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of inclusion edges.
func (g *Graph) NumEdges() int {
	n := 0
	for _, out := range g.succs {
		n += len(out)
	}
	return n
}

// Nodes returns all node ids in insertion order.
func (g *Graph) Nodes() []NodeID {
	ids := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		ids[i] = NodeID(i)
	}
	return ids
}

// Name returns the variable identifier of the node id.
func (g *Graph) Name(id NodeID) string {
	return g.node(id).name
}

// PointsToIDs returns the points-to set of id in ascending id order.
func (g *Graph) PointsToIDs(id NodeID) []NodeID {
	return funcutil.SetToOrderedSlice(g.node(id).pts)
}

// PointsTo returns the identifiers in the points-to set of id, sorted
// lexically. This is the read-only view the exporter renders.
func (g *Graph) PointsTo(id NodeID) []string {
	names := funcutil.Map(g.PointsToIDs(id), g.Name)
	slices.Sort(names)
	return names
}

// Succs returns the successors of id (targets of inclusion edges out of id)
// in ascending id order.
func (g *Graph) Succs(id NodeID) []NodeID {
	return funcutil.SetToOrderedSlice(g.succs[id])
}

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

// Package graphutil adapts the solved constraint graph to existing graph
// libraries and implements the cycle reports built on them.
package graphutil

import (
	"sort"

	"github.com/andersen-tools/pointsto/analysis/pointsto"
	"gonum.org/v1/gonum/graph"
)

// PGraph is an abstraction over a solved inclusion graph to work with
// existing graph libraries. It implements the methods to satisfy yourbasic's
// graph.Iterator and Gonum's graph.Graph.
type PGraph struct {
	// The order of the graph
	order int

	// The original constraint graph the PGraph was constructed from
	Graph *pointsto.Graph

	// Names maps from node IDs to variable identifiers
	Names map[int64]string

	// Keys are all the node IDs, sorted
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed
	// inclusion edge between the nodes with ids x and y
	Edges map[int64]map[int64]bool
}

// NewPointsToIterator returns a new iterator over the inclusion edges of g,
// where node ids correspond to the dense NodeIDs of the constraint graph.
func NewPointsToIterator(g *pointsto.Graph) PGraph {
	n := g.NumNodes()
	names := make(map[int64]string, n)
	edges := make(map[int64]map[int64]bool, n)
	keys := make([]int64, 0, n)

	for _, v := range g.Nodes() {
		id := int64(v)
		keys = append(keys, id)
		names[id] = g.Name(v)
		edges[id] = map[int64]bool{}
		for _, w := range g.Succs(v) {
			edges[id][int64(w)] = true
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return PGraph{
		order: n,
		Graph: g,
		Names: names,
		Edges: edges,
		Keys:  keys,
	}
}

// Subgraph returns a new graph that is the original graph restricted to the
// nodes in include. Only the edges with both endpoints in include are kept.
// The subgraph's order, Graph and Names are the same as in the original, so
// node indices stay consistent across subgraphs.
func Subgraph(original PGraph, include []int64) PGraph {
	inSub := make(map[int64]bool, len(include))
	edges := make(map[int64]map[int64]bool, len(include))
	keys := make([]int64, len(include))

	for j, i := range include {
		keys[j] = i
		inSub[i] = true
	}

	for _, i := range include {
		edges[i] = map[int64]bool{}
		for e := range original.Edges[i] {
			if inSub[e] {
				edges[i][e] = true
			}
		}
	}

	return PGraph{
		order: original.Order(),
		Graph: original.Graph,
		Names: original.Names,
		Edges: edges,
		Keys:  keys,
	}
}

// Order implements the order of the graph.Iterator interface for the PGraph
func (c PGraph) Order() int {
	return c.order
}

// Visit implements the graph.Iterator interface for the PGraph
func (c PGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if _, ok := c.Edges[int64(v)]; !ok {
		return false
	}
	for w := range c.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// *************** Gonum Graph interface implementation ****************

// Node returns the node with the given id, or nil if it does not exist.
func (c PGraph) Node(id int64) graph.Node {
	if _, ok := c.Names[id]; !ok {
		return nil
	}
	return PNode{id: id, name: c.Names[id]}
}

// Nodes returns the set of nodes in the graph
func (c PGraph) Nodes() graph.Nodes {
	keys := make([]int64, len(c.Keys))
	copy(keys, c.Keys)
	return &NodeSet{
		names: c.Names,
		ids:   keys,
		cur:   -1,
	}
}

// From returns the set of nodes reachable from the id by one inclusion edge
func (c PGraph) From(id int64) graph.Nodes {
	var keys []int64
	for out := range c.Edges[id] {
		keys = append(keys, out)
	}
	return &NodeSet{
		names: c.Names,
		ids:   keys,
		cur:   -1,
	}
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between
// the two node identifiers, in either direction
func (c PGraph) HasEdgeBetween(xid, yid int64) bool {
	xe := c.Edges[xid]
	ye := c.Edges[yid]
	return xe[yid] || ye[xid]
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (c PGraph) Edge(uid, vid int64) graph.Edge {
	ue := c.Edges[uid]
	if ue != nil && ue[vid] {
		return PEdge{
			from: PNode{id: uid, name: c.Names[uid]},
			to:   PNode{id: vid, name: c.Names[vid]},
		}
	}
	return nil
}

// *************** Nodes implementation **********************

// PNode is a wrapper around a constraint graph node that implements the
// graph.Node interface
type PNode struct {
	id   int64
	name string
}

// ID returns the id of the node
func (n PNode) ID() int64 {
	return n.id
}

func (n PNode) String() string {
	return n.name
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of nodes
type NodeSet struct {
	// names maps the node ids in the iterator to variable identifiers
	names map[int64]string

	// ids is the set of node ids in the iterator
	ids []int64

	// cur is the current index of the iterator. A fresh or reset iterator
	// sits before the first node, so the first Next moves to it.
	// invariant: -1 <= cur < len(ids)
	cur int
}

// Next moves the current node to the next, and returns true if such a node exists. Otherwise, returns false
// and the current node has not changed.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}

// Len returns the length of the node set
func (ns *NodeSet) Len() int {
	return len(ns.ids)
}

// Reset returns the iterator to its initial position, before the first node
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node returns the current node in the set, or nil if Next has not been
// called since the iterator was created or reset
func (ns *NodeSet) Node() graph.Node {
	if ns.cur < 0 || ns.cur >= len(ns.ids) {
		return nil
	}
	id := ns.ids[ns.cur]
	return PNode{id: id, name: ns.names[id]}
}

// *************** Edge implementation **********************

// PEdge implements the graph.Edge interface
type PEdge struct {
	from PNode
	to   PNode
}

// From returns the origin of the edge
func (e PEdge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e PEdge) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge
func (e PEdge) ReversedEdge() graph.Edge {
	return PEdge{from: e.to, to: e.from}
}

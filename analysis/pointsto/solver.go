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

package pointsto

import (
	"github.com/andersen-tools/pointsto/analysis/config"
	"github.com/andersen-tools/pointsto/analysis/constraints"
	"github.com/andersen-tools/pointsto/internal/funcutil"
)

// solver holds the transient state of one fixpoint computation: the graph
// being built, the dereference constraints indexed by the variable whose
// points-to set resolves them, and the worklist of nodes whose outgoing
// effects have not been fully propagated.
type solver struct {
	graph  *Graph
	logger *config.LogGroup

	// loads[v] lists the destinations l of load constraints l = *v.
	loads map[NodeID][]NodeID

	// stores[v] lists the sources r of store constraints *v = r.
	stores map[NodeID][]NodeID

	// worklist is a FIFO queue of nodes pending reprocessing. A node may
	// appear more than once; reprocessing an up-to-date node is harmless.
	worklist []NodeID
}

// Solve builds the constraint graph for cons and computes the least fixpoint
// of every node's points-to set under the inclusion relation. The returned
// graph is fully solved and should be treated as read-only; solving is
// single-use and a graph is never re-solved.
//
// logger may be nil, in which case solving is silent.
func Solve(cons []constraints.Constraint, logger *config.LogGroup) *Graph {
	s := &solver{
		graph:  NewGraph(),
		logger: logger,
		loads:  map[NodeID][]NodeID{},
		stores: map[NodeID][]NodeID{},
	}
	s.initNodes(cons)
	s.initBasicPtrs(cons)
	s.initSimpleEdges(cons)
	s.indexDerefs(cons)
	s.run()
	return s.graph
}

// initNodes registers a node for both operands of every constraint. After
// this step every identifier occurring anywhere in cons has exactly one
// node, which makes the lookups in later phases infallible.
func (s *solver) initNodes(cons []constraints.Constraint) {
	for _, c := range cons {
		s.graph.AddNode(c.Left)
		s.graph.AddNode(c.Right)
	}
}

// initBasicPtrs seeds the base facts: for every l = &r, r enters pts(l).
// This is the only step that introduces objects into points-to sets; all
// later growth is propagation of existing entries.
func (s *solver) initBasicPtrs(cons []constraints.Constraint) {
	for _, c := range cons {
		if c.Kind == constraints.Addr {
			l := s.mustLookup(c.Left)
			r := s.mustLookup(c.Right)
			s.graph.node(l).pts[r] = true
		}
	}
}

// initSimpleEdges installs the static inclusion edge r → l for every copy
// constraint l = r: whatever r may point to, l may now point to.
func (s *solver) initSimpleEdges(cons []constraints.Constraint) {
	for _, c := range cons {
		if c.Kind == constraints.Equal {
			s.graph.AddEdge(s.mustLookup(c.Right), s.mustLookup(c.Left))
		}
	}
}

// indexDerefs groups the dereference constraints by the variable whose
// points-to set resolves them, so the main loop looks up the relevant
// constraints per node instead of rescanning the whole constraint list.
func (s *solver) indexDerefs(cons []constraints.Constraint) {
	for _, c := range cons {
		switch c.Kind {
		case constraints.DerefRight:
			v := s.mustLookup(c.Right)
			s.loads[v] = append(s.loads[v], s.mustLookup(c.Left))
		case constraints.DerefLeft:
			v := s.mustLookup(c.Left)
			s.stores[v] = append(s.stores[v], s.mustLookup(c.Right))
		}
	}
}

// run drains the worklist. The queue is seeded with every node whose
// points-to set is non-empty after initialization. Termination: points-to
// sets grow monotonically and are bounded by the finite set of address-taken
// variables, and edges are only ever added over a finite vertex set, so
// eventually no step enqueues and the queue drains.
func (s *solver) run() {
	g := s.graph
	for id, n := range g.nodes {
		if len(n.pts) > 0 {
			s.worklist = append(s.worklist, NodeID(id))
		}
	}
	steps := 0
	for len(s.worklist) > 0 {
		v := s.worklist[0]
		s.worklist = s.worklist[1:]
		steps++
		if s.logger != nil {
			s.logger.Tracef("step %d: processing %s (%d queued)", steps, g.Name(v), len(s.worklist))
		}
		s.resolveDerefs(v)
		s.propagate(v)
	}
	if s.logger != nil {
		s.logger.Debugf("fixpoint reached after %d worklist steps (%d nodes, %d edges)",
			steps, g.NumNodes(), g.NumEdges())
	}
}

// resolveDerefs installs the inclusion edges demanded by the dereference
// constraints on v, given the objects currently in pts(v). Newly discovered
// edges re-enqueue their source so the next pass propagates along them.
func (s *solver) resolveDerefs(v NodeID) {
	g := s.graph
	for a := range g.node(v).pts {
		// l = *v and v may point to a: pts(a) must flow into pts(l).
		for _, l := range s.loads[v] {
			if !g.ContainsEdge(a, l) {
				g.AddEdge(a, l)
				s.worklist = append(s.worklist, a)
			}
		}
		// *v = r and v may point to a: pts(r) must flow into pts(a).
		for _, r := range s.stores[v] {
			if !g.ContainsEdge(r, a) {
				g.AddEdge(r, a)
				s.worklist = append(s.worklist, r)
			}
		}
	}
}

// propagate merges pts(v) into every successor of v, re-enqueuing the
// successors whose sets grew.
func (s *solver) propagate(v NodeID) {
	g := s.graph
	for _, w := range g.Succs(v) {
		tgt := g.node(w)
		before := len(tgt.pts)
		funcutil.Union(tgt.pts, g.node(v).pts)
		if len(tgt.pts) != before {
			s.worklist = append(s.worklist, w)
		}
	}
}

// mustLookup resolves an identifier that initNodes is guaranteed to have
// registered.
func (s *solver) mustLookup(name string) NodeID {
	id, ok := s.graph.Lookup(name)
	if !ok {
		panic("pointsto: unregistered identifier " + name)
	}
	return id
}

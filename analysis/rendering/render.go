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

// Package rendering serializes a solved constraint graph to the Graphviz
// dot format. Rendering is pure read-only serialization: no mutation
// crosses this boundary.
package rendering

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andersen-tools/pointsto/analysis/config"
	"github.com/andersen-tools/pointsto/analysis/pointsto"
	"golang.org/x/exp/slices"
)

// WriteGraphviz writes a dot representation of the solved constraint graph
// to w. Each variable becomes one node declaration labeled with the
// variable identifier and its points-to set; each inclusion edge becomes
// one edge line. Node order follows config.NodeOrder; edges are emitted per
// source node in target order. Exporting the same graph twice yields
// byte-identical output.
func WriteGraphviz(config *config.Config, g *pointsto.Graph, w io.Writer) error {
	var err error
	before := "digraph {\n"
	after := "}\n"

	_, err = w.Write([]byte(before))
	if err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}

	ids := orderedNodes(config, g)
	for _, v := range ids {
		name := g.Name(v)
		s := fmt.Sprintf("  %s [label=\"%s\\n{%s}\"]\n",
			name, name, strings.Join(g.PointsTo(v), ","))
		if _, err := w.Write([]byte(s)); err != nil {
			return fmt.Errorf("error while writing in file: %w", err)
		}
	}
	for _, v := range ids {
		for _, t := range orderedTargets(config, g, v) {
			s := fmt.Sprintf("  %s -> %s\n", g.Name(v), g.Name(t))
			if _, err := w.Write([]byte(s)); err != nil {
				return fmt.Errorf("error while writing in file: %w", err)
			}
		}
	}

	_, err = w.Write([]byte(after))
	if err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	return nil
}

// GraphvizToFile renders the graph and then writes the result to filename
// in one step, so that a failed render never leaves a truncated file
// behind.
func GraphvizToFile(config *config.Config, g *pointsto.Graph, filename string) error {
	var buf bytes.Buffer
	if err := WriteGraphviz(config, g, &buf); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("could not write output file %s: %w", filename, err)
	}
	return nil
}

// orderedNodes returns the node ids in the emission order the config asks
// for: lexical by identifier (the default), or constraint-sequence
// insertion order.
func orderedNodes(cfg *config.Config, g *pointsto.Graph) []pointsto.NodeID {
	ids := g.Nodes()
	if cfg.NodeOrder == config.OrderInsertion {
		return ids
	}
	slices.SortFunc(ids, func(a, b pointsto.NodeID) bool {
		return g.Name(a) < g.Name(b)
	})
	return ids
}

func orderedTargets(cfg *config.Config, g *pointsto.Graph, v pointsto.NodeID) []pointsto.NodeID {
	ts := g.Succs(v)
	if cfg.NodeOrder == config.OrderInsertion {
		return ts
	}
	slices.SortFunc(ts, func(a, b pointsto.NodeID) bool {
		return g.Name(a) < g.Name(b)
	})
	return ts
}

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

// pointsto: a tool that solves inclusion-based points-to constraints and
// renders the resulting points-to graph as a Graphviz dot file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andersen-tools/pointsto/analysis"
	"github.com/andersen-tools/pointsto/analysis/config"
	"github.com/andersen-tools/pointsto/analysis/rendering"
	"github.com/andersen-tools/pointsto/internal/formatutil"
	"github.com/andersen-tools/pointsto/internal/funcutil"
	"github.com/andersen-tools/pointsto/internal/graphutil"
	ybgraph "github.com/yourbasic/graph"
)

var (
	configPath = flag.String("config", "", "Config file")
	statsFlag  = flag.Bool("stats", false, "Print statistics of the solved graph")
	cyclesFlag = flag.Bool("cycles", false, "Print elementary cycles of the inclusion graph")
)

const usage = ` Solve points-to constraints and render the points-to graph.
Usage:
    pointsto [options] <input constraints file> <output dot file>
Examples:
% pointsto constraints.txt graph.dot
% pointsto -config config.yaml -stats constraints.txt graph.dot
Each constraint is one of: p = &q | p = q | p = *q | *p = q
`

func main() {
	var err error

	flag.Parse()

	if flag.NArg() != 2 {
		_, _ = fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	cfg := config.NewDefault()
	if *configPath != "" {
		config.SetGlobalConfig(*configPath)
		cfg, err = config.LoadGlobal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}
	if *statsFlag {
		cfg.ReportStats = true
	}
	if *cyclesFlag {
		cfg.ReportCycles = true
	}

	logger := config.NewLogGroup(cfg)

	fmt.Fprintf(os.Stderr, formatutil.Faint("Reading constraints")+"\n")
	start := time.Now()
	result, err := analysis.AnalyzeFile(logger, inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, formatutil.Red(fmt.Sprintf("Analysis failed: %v", err))+"\n")
		os.Exit(1)
	}
	logger.Infof("Solved %d constraints over %d variables (%.3f s)",
		len(result.Constraints), result.Graph.NumNodes(), time.Since(start).Seconds())

	fmt.Fprintf(os.Stderr, formatutil.Faint("Writing points-to graph in "+outputPath)+"\n")
	if err := rendering.GraphvizToFile(cfg, result.Graph, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, formatutil.Red(fmt.Sprintf("Could not write graph: %v", err))+"\n")
		os.Exit(1)
	}

	if cfg.ReportStats {
		printStats(result)
	}
	if cfg.ReportCycles {
		printCycles(result)
	}
}

// printStats reports sizes of the solved graph and its strongly connected
// structure. Variables in a non-trivial component of the inclusion graph
// end up with equal points-to sets.
func printStats(result analysis.Result) {
	g := result.Graph
	iterator := graphutil.NewPointsToIterator(g)
	stats := ybgraph.Check(iterator)

	fmt.Printf("nodes: %d\n", g.NumNodes())
	fmt.Printf("edges: %d\n", stats.Size)
	fmt.Printf("loops: %d\n", stats.Loops)
	fmt.Printf("isolated: %d\n", stats.Isolated)

	sccs := graphutil.StronglyConnectedComponents(g.Nodes(), g.Succs)
	nontrivial := 0
	for _, scc := range sccs {
		if len(scc) >= 2 {
			nontrivial++
		}
	}
	fmt.Printf("components: %d (%d non-trivial)\n", len(sccs), nontrivial)
}

// printCycles lists the elementary cycles of the inclusion graph by
// variable name.
func printCycles(result analysis.Result) {
	iterator := graphutil.NewPointsToIterator(result.Graph)
	cycles := graphutil.FindAllElementaryCycles(iterator)
	fmt.Printf("cycles: %d\n", len(cycles))
	for _, cycle := range cycles {
		names := funcutil.Map(cycle, func(id int64) string { return iterator.Names[id] })
		fmt.Printf("  %s\n", strings.Join(names, " -> "))
	}
}

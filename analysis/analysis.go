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

// Package analysis drives the points-to analysis pipeline: read the
// constraint source, parse it, solve the constraint graph. Each stage is a
// total function of the previous stage's output and every failure is
// terminal for the run.
package analysis

import (
	"fmt"
	"os"

	"github.com/andersen-tools/pointsto/analysis/config"
	"github.com/andersen-tools/pointsto/analysis/constraints"
	"github.com/andersen-tools/pointsto/analysis/pointsto"
)

// Result bundles what a run produces: the parsed constraint sequence and
// the solved graph.
type Result struct {
	Constraints []constraints.Constraint
	Graph       *pointsto.Graph
}

// Analyze parses the constraint source src and solves the resulting
// constraint graph to its fixpoint.
func Analyze(logger *config.LogGroup, src string) (Result, error) {
	cons, err := constraints.Parse(src)
	if err != nil {
		return Result{}, fmt.Errorf("could not parse constraints: %w", err)
	}
	logger.Debugf("parsed %d constraints", len(cons))

	g := pointsto.Solve(cons, logger)
	return Result{Constraints: cons, Graph: g}, nil
}

// AnalyzeFile reads the constraint file at path and analyzes its contents.
func AnalyzeFile(logger *config.LogGroup, path string) (Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("could not read input file %s: %w", path, err)
	}
	res, err := Analyze(logger, string(b))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

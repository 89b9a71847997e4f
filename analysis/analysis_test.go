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

package analysis_test

import (
	"bytes"
	"embed"
	"io"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/andersen-tools/pointsto/analysis"
	"github.com/andersen-tools/pointsto/analysis/config"
	"github.com/andersen-tools/pointsto/analysis/rendering"
	"golang.org/x/tools/txtar"
)

//go:embed testdata
var testfsys embed.FS

func testLogger() *config.LogGroup {
	logger := config.NewLogGroup(config.NewDefault())
	logger.SetAllOutput(io.Discard)
	return logger
}

// TestEndToEnd runs the full pipeline over every archive in testdata. Each
// archive holds the constraint source in "input" and the expected dot
// document in "output".
func TestEndToEnd(t *testing.T) {
	entries, err := testfsys.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		entry := entry
		t.Run(entry.Name(), func(t *testing.T) {
			// embed.FS paths always use forward slashes.
			data, err := testfsys.ReadFile(path.Join("testdata", entry.Name()))
			if err != nil {
				t.Fatal(err)
			}
			archive := txtar.Parse(data)
			var input, want []byte
			for _, f := range archive.Files {
				switch f.Name {
				case "input":
					input = f.Data
				case "output":
					want = f.Data
				}
			}
			if want == nil {
				t.Fatalf("archive %s has no output file", entry.Name())
			}

			result, err := analysis.Analyze(testLogger(), string(input))
			if err != nil {
				t.Fatalf("analysis failed: %v", err)
			}
			var buf bytes.Buffer
			if err := rendering.WriteGraphviz(config.NewDefault(), result.Graph, &buf); err != nil {
				t.Fatalf("rendering failed: %v", err)
			}
			if buf.String() != string(want) {
				t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
			}
		})
	}
}

func TestAnalyzeParseFailure(t *testing.T) {
	if _, err := analysis.Analyze(testLogger(), "a == b"); err == nil {
		t.Error("expected a parse failure")
	}
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constraints.txt")
	if err := os.WriteFile(path, []byte("a = &b\n"), 0600); err != nil {
		t.Fatal(err)
	}
	result, err := analysis.AnalyzeFile(testLogger(), path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if result.Graph.NumNodes() != 2 {
		t.Errorf("expected 2 nodes, got %d", result.Graph.NumNodes())
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	if _, err := analysis.AnalyzeFile(testLogger(), filepath.Join(t.TempDir(), "none.txt")); err == nil {
		t.Error("expected an error for a missing input file")
	}
}

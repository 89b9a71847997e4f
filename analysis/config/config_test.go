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

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	if cfg.LogLevel != int(InfoLevel) {
		t.Errorf("default log level = %d, want %d", cfg.LogLevel, int(InfoLevel))
	}
	if cfg.NodeOrder != OrderLexical {
		t.Errorf("default node order = %q, want %q", cfg.NodeOrder, OrderLexical)
	}
	if cfg.ReportStats || cfg.ReportCycles {
		t.Error("reports should be off by default")
	}
	if cfg.Verbose() {
		t.Error("default config should not be verbose")
	}
}

func TestLoadFullConfig(t *testing.T) {
	filename := writeConfig(t, `
log-level: 4
silence-warn: true
report-stats: true
node-order: insertion
`)
	cfg, err := Load(filename)
	if err != nil {
		t.Fatalf("could not load config: %v", err)
	}
	if cfg.LogLevel != int(DebugLevel) {
		t.Errorf("log level = %d, want %d", cfg.LogLevel, int(DebugLevel))
	}
	if !cfg.SilenceWarn || !cfg.ReportStats || cfg.ReportCycles {
		t.Errorf("options not read correctly: %+v", cfg.Options)
	}
	if cfg.NodeOrder != OrderInsertion {
		t.Errorf("node order = %q, want %q", cfg.NodeOrder, OrderInsertion)
	}
	if !cfg.Verbose() {
		t.Error("debug-level config should be verbose")
	}
	if cfg.SourceFile() != filename {
		t.Errorf("source file = %q, want %q", cfg.SourceFile(), filename)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "report-cycles: true\n"))
	if err != nil {
		t.Fatalf("could not load config: %v", err)
	}
	if cfg.LogLevel != int(InfoLevel) {
		t.Errorf("log level = %d, want default %d", cfg.LogLevel, int(InfoLevel))
	}
	if cfg.NodeOrder != OrderLexical {
		t.Errorf("node order = %q, want default %q", cfg.NodeOrder, OrderLexical)
	}
	if !cfg.ReportCycles {
		t.Error("report-cycles not read")
	}
}

func TestLoadRejectsBadNodeOrder(t *testing.T) {
	if _, err := Load(writeConfig(t, "node-order: random\n")); err == nil {
		t.Error("expected an error for an invalid node-order")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLogGroupLevels(t *testing.T) {
	cfg := NewDefault()
	logger := NewLogGroup(cfg)
	var buf bytes.Buffer
	logger.SetAllOutput(&buf)

	logger.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Errorf("debug output should be dropped at info level, got %q", buf.String())
	}
	logger.Infof("shown %d", 2)
	if got := buf.String(); got != "[INFO] shown 2\n" {
		t.Errorf("info output = %q", got)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return filename
}

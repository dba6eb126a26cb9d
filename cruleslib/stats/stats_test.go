/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/cruleslib/severity"
)

func TestCountSeverityAndWrite(t *testing.T) {
	dir := t.TempDir()
	results := &pb.ResultsList{Results: []*pb.Result{
		{Id: "1", Severity: int32(severity.Medium)},
		{Id: "2", Severity: int32(severity.Medium)},
		{Id: "3", Severity: int32(severity.Lowest)},
		{Id: "4", Severity: 42},
	}}
	CountSeverityAndWrite(results, dir)
	content, err := os.ReadFile(filepath.Join(dir, "severity_stats.nsa_metadata"))
	if err != nil {
		t.Fatal(err)
	}
	cnt := SeverityCount{}
	if err := json.Unmarshal(content, &cnt); err != nil {
		t.Fatal(err)
	}
	expected := SeverityCount{Medium: 2, Lowest: 1}
	if cnt != expected {
		t.Errorf("got %+v, expected %+v", cnt, expected)
	}
}

func TestCountLinesAndWriteLOC(t *testing.T) {
	dir := t.TempDir()
	src := "template <class T>\nclass B {\n  // comment\n  int m;\n};\n"
	if err := os.WriteFile(filepath.Join(dir, "a.cpp"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "ignored"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored", "b.cpp"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	lines, err := CountLines([]string{dir}, CppLanguages, []string{filepath.Join(dir, "ignored", "**")})
	if err != nil {
		t.Fatalf("CountLines: %v", err)
	}
	if lines != 4 {
		t.Errorf("got %d lines, expected 4", lines)
	}
	WriteLOC(dir, lines)
	content, err := os.ReadFile(filepath.Join(dir, "loc.nsa_metadata"))
	if err != nil || string(content) != "4" {
		t.Errorf("got %q, %v", content, err)
	}
}

func TestWriteProgressSkipsMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	WriteProgress(missing, AC, "50%", time.Now())
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Errorf("progress written into a missing dir")
	}
}

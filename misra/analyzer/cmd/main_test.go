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

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSelectRun(t *testing.T) {
	for _, ruleSet := range ruleSets {
		if _, err := selectRun(ruleSet); err != nil {
			t.Errorf("selectRun(%s): %v", ruleSet, err)
		}
	}
	if _, err := selectRun("googlecpp"); err == nil {
		t.Error("expected an error for an unknown rule set")
	}
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	ccjson := `[
  {"directory": "/src", "file": "a.cpp", "arguments": ["c++", "-c", "a.cpp"]},
  {"directory": "/src", "file": "a.cpp", "arguments": ["c++", "-c", "a.cpp", "-DX"]},
  {"directory": "/src", "file": "b.c", "arguments": ["cc", "-c", "b.c"]},
  {"directory": "/src", "file": "third_party/c.cc", "arguments": ["c++", "-c", "third_party/c.cc"]},
  {"directory": "/src", "file": "notes.txt", "arguments": ["c++", "-c", "notes.txt"]},
  {"directory": "/src", "file": "bad.cpp", "command": "c++ -c 'bad.cpp"}
]`
	path := filepath.Join(dir, "compile_commands.json")
	if err := os.WriteFile(path, []byte(ccjson), 0644); err != nil {
		t.Fatal(err)
	}
	sources, err := readSources(path, []string{"/src/third_party/**"})
	if err != nil {
		t.Fatalf("readSources: %v", err)
	}
	expected := []string{"/src/a.cpp", "/src/b.c"}
	if !reflect.DeepEqual(expected, sources) {
		t.Errorf("got %v, expected %v", sources, expected)
	}
}

func TestReadSourcesMissingDatabase(t *testing.T) {
	if _, err := readSources(filepath.Join(t.TempDir(), "compile_commands.json"), nil); err == nil {
		t.Error("expected an error for a missing compilation database")
	}
}

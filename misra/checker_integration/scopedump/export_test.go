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

package scopedump

import (
	"os"
	"path/filepath"
	"testing"
)

const fakeExporter = `#!/bin/sh
for arg in "$@"; do
  case "$arg" in
    --output=*) out="${arg#--output=}" ;;
  esac
  src="$arg"
done
case "$src" in
  *broken*) echo "parse error" 1>&2; exit 1 ;;
esac
printf '{"file": "%s", "decls": []}' "$src" > "$out"
`

func TestExport(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "exporter.sh")
	if err := os.WriteFile(bin, []byte(fakeExporter), 0755); err != nil {
		t.Fatal(err)
	}
	e, err := NewExporter(bin, `--extra-arg "-std=c++14"`, filepath.Join(dir, "dumps"), "", 1, 2)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	if len(e.ExtraArgs) != 2 || e.ExtraArgs[1] != "-std=c++14" {
		t.Errorf("extra args not split: %q", e.ExtraArgs)
	}
	stale := filepath.Join(dir, "dumps", "stale.scope.json")
	if err := os.MkdirAll(filepath.Dir(stale), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	dumps, err := e.Export([]string{"/src/a.cpp", "/src/broken.cpp", "/src/b.c", "/src/start.S"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(dumps) != 1 || dumps[0] != e.DumpPath("/src/a.cpp") {
		t.Fatalf("unexpected dumps %v", dumps)
	}
	tu, err := Load(dumps[0])
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.File != "/src/a.cpp" {
		t.Errorf("dump for wrong file %s", tu.File)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale dump was kept: %v", err)
	}
}

func TestExportRunsInParallel(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "exporter.sh")
	if err := os.WriteFile(bin, []byte(fakeExporter), 0755); err != nil {
		t.Fatal(err)
	}
	e, err := NewExporter(bin, "", filepath.Join(dir, "dumps"), "", 1, 3)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	sources := []string{"/src/a.cpp", "/src/b.cpp", "/src/c.cc", "/src/d.cxx", "/src/e.cpp"}
	dumps, err := e.Export(sources)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(dumps) != len(sources) {
		t.Fatalf("got %d dumps, expected %d", len(dumps), len(sources))
	}
	for i, source := range sources {
		if dumps[i] != e.DumpPath(source) {
			t.Errorf("dump %d is %s, expected the dump of %s", i, dumps[i], source)
		}
	}
}

func TestDumpPathIsStable(t *testing.T) {
	e := &Exporter{DumpDir: "/d"}
	if e.DumpPath("/src/a.cpp") != e.DumpPath("/src/a.cpp") {
		t.Error("dump path changed between calls")
	}
	if e.DumpPath("/src/a.cpp") == e.DumpPath("/src/b.cpp") {
		t.Error("distinct sources share a dump path")
	}
}

func TestNewExporterRequiresBinary(t *testing.T) {
	if _, err := NewExporter("", "", "/d", "", 1, 1); err == nil {
		t.Error("expected an error without a binary")
	}
	if _, err := NewExporter("/no/such/exporter", "", "/d", "", 1, 1); err == nil {
		t.Error("expected an error for a missing binary")
	}
}

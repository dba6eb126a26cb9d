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
	"reflect"
	"testing"
)

const jsonDump = `{
  "file": "t.cpp",
  "decls": [
    {"id": "c1", "kind": "class", "name": "B", "loc": {"line": 1}, "template": true, "template_params": ["T"],
     "members": [{"kind": "function", "name": "f", "loc": {"line": 2}}]},
    {"id": "c2", "kind": "class", "name": "A", "loc": {"line": 4}, "template": true, "template_params": ["T"],
     "bases": [{"type": {"name": "B", "args": [{"name": "T"}], "ref": "c1"}, "access": "public"}],
     "members": [{"kind": "function", "name": "g", "loc": {"line": 5},
       "uses": [{"name": "f", "loc": {"line": 5, "column": 14}, "form": "call"},
                {"name": "f", "loc": {"line": 6, "column": 3}, "form": "call", "qualifier": "B<T>::"}]}]}
  ]
}`

const yamlDump = `
file: t.cpp
decls:
  - id: c1
    kind: class
    name: B
    loc: {line: 1}
    template: true
    template_params: [T]
`

func TestDecodeJSON(t *testing.T) {
	tu, err := Decode([]byte(jsonDump), false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tu.File != "t.cpp" || len(tu.Decls) != 2 {
		t.Fatalf("unexpected unit: %+v", tu)
	}
	a := tu.Decls[1]
	if got := a.Bases[0].Type.String(); got != "B<T>" {
		t.Errorf("base spelled %q, expected B<T>", got)
	}
	uses := a.Members[0].Uses
	expected := []*Use{
		{Name: "f", Loc: Loc{Line: 5, Column: 14}, Form: FormCall},
		{Name: "f", Loc: Loc{Line: 6, Column: 3}, Form: FormCall, Qualifier: "B<T>::"},
	}
	if !reflect.DeepEqual(uses, expected) {
		t.Errorf("got uses %+v, expected %+v", uses, expected)
	}
}

func TestDecodeYAML(t *testing.T) {
	tu, err := Decode([]byte(yamlDump), true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	expected := &TranslationUnit{File: "t.cpp", Decls: []*Decl{
		{ID: "c1", Kind: KindClass, Name: "B", Loc: Loc{Line: 1}, Template: true, TemplateParams: []string{"T"}},
	}}
	if !reflect.DeepEqual(tu, expected) {
		t.Errorf("got %+v, expected %+v", tu.Decls[0], expected.Decls[0])
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte(`{"decls": [`), false); err == nil {
		t.Error("expected an error for truncated json")
	}
}

func TestTypeRefString(t *testing.T) {
	ref := &TypeRef{Name: "Outer", Args: []*TypeRef{{Name: "int"}, {Name: "B", Args: []*TypeRef{{Name: "T"}}}}}
	if got := ref.String(); got != "Outer<int, B<T>>" {
		t.Errorf("got %q", got)
	}
	if got := (&TypeRef{Name: "X", Spelling: "typename T::X"}).String(); got != "typename T::X" {
		t.Errorf("spelling not preferred: %q", got)
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"a.scope.json":     jsonDump,
		"sub/b.scope.yaml": yamlDump,
		"sub/ignored.json": "{}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	dumps, err := Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	expected := []string{filepath.Join(dir, "a.scope.json"), filepath.Join(dir, "sub", "b.scope.yaml")}
	if !reflect.DeepEqual(dumps, expected) {
		t.Fatalf("got %v, expected %v", dumps, expected)
	}
	for _, d := range dumps {
		if _, err := Load(d); err != nil {
			t.Errorf("Load(%s): %v", d, err)
		}
	}
}

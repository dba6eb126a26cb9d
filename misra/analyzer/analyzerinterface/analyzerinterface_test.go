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

package analyzerinterface

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	pb "naive.systems/depbase/analyzer/proto"
)

func TestReadCheckRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "check_rules")
	content := `# rules
misra_cpp_2008/rule_14_6_1 {"severity":"high","undecidable-dependence":"lenient"}

autosar/rule_M14_6_1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	rules, err := ReadCheckRules(path)
	if err != nil {
		t.Fatalf("ReadCheckRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, expected 2", len(rules))
	}
	if rules[0].Name != "misra_cpp_2008/rule_14_6_1" || *rules[0].JSONOptions.Severity != "high" {
		t.Errorf("unexpected first rule: %+v", rules[0])
	}
	if rules[1].JSONOptions.Severity != nil {
		t.Errorf("second rule should have no options: %+v", rules[1])
	}
	misra := FilterCheckRules(rules, "misra_cpp_2008/")
	if len(misra) != 1 || misra[0].Name != rules[0].Name {
		t.Errorf("FilterCheckRules: %+v", misra)
	}
}

func TestReadCheckRulesUnknownOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check_rules")
	if err := os.WriteFile(path, []byte(`misra_cpp_2008/rule_14_6_1 {"no-such-option":1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCheckRules(path); err == nil {
		t.Error("expected an error for an unknown option")
	}
}

func TestCreateResultDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := CreateResultDir(dir); err != nil {
		t.Fatalf("CreateResultDir: %v", err)
	}
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := CreateResultDir(file); err != os.ErrExist {
		t.Errorf("expected os.ErrExist for a file, got %v", err)
	}
}

func TestAddIDIsStable(t *testing.T) {
	newList := func() *pb.ResultsList {
		return &pb.ResultsList{Results: []*pb.Result{
			{Path: "/src/a.cpp", LineNumber: 3, Column: 5, ErrorMessage: "m"},
			{Path: "/src/a.cpp", LineNumber: 4, Column: 5, ErrorMessage: "m"},
			{Id: "kept", Path: "/src/a.cpp", LineNumber: 5},
		}}
	}
	first, second := newList(), newList()
	AddID(first)
	AddID(second)
	if !reflect.DeepEqual(first, second) {
		t.Error("ids differ between runs")
	}
	if first.Results[0].Id == first.Results[1].Id {
		t.Error("different results got the same id")
	}
	if first.Results[2].Id != "kept" {
		t.Errorf("existing id overwritten: %s", first.Results[2].Id)
	}
}

func TestFormatResultPath(t *testing.T) {
	list := &pb.ResultsList{Results: []*pb.Result{
		{Path: "a.cpp"},
		{Path: "/src/b.cpp"},
		{Path: "/usr/include/c.h"},
	}}
	got := FormatResultPath(list, "/src")
	if len(got.Results) != 2 || got.Results[0].Path != "/src/a.cpp" || got.Results[1].Path != "/src/b.cpp" {
		t.Errorf("unexpected results: %+v", got.Results)
	}
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	list := &pb.ResultsList{Results: []*pb.Result{{Path: "/src/a.cpp", LineNumber: 3, Name: "m"}}}
	path := filepath.Join(dir, "results")
	if err := WriteResults(list, path); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	back, err := pb.UnmarshalResults(content)
	if err != nil {
		t.Fatalf("UnmarshalResults: %v", err)
	}
	if !reflect.DeepEqual(list, back) {
		t.Errorf("got %+v", back.Results)
	}
	if err := WriteJsonResults(list, filepath.Join(dir, "nsa_results.json")); err != nil {
		t.Fatalf("WriteJsonResults: %v", err)
	}
}

func TestPrintResults(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "test.cpp")
	if err := os.WriteFile(src, []byte("template <typename T>\nclass A : public B<T> {\n  void f() { m(); }\n};\n"), 0644); err != nil {
		t.Fatal(err)
	}
	list := &pb.ResultsList{Results: []*pb.Result{
		{Path: src, LineNumber: 3, Column: 14, ErrorMessage: "[-][misra-cpp2008-14.6.1]: dependent base", RuleId: "14.6.1"},
		{Path: filepath.Join(dir, "gone.cpp"), LineNumber: 1, ErrorMessage: "[M14_6_1][autosar-M14.6.1]: dependent base", RuleId: "M14.6.1"},
	}}
	var out bytes.Buffer
	PrintResults(&out, list, true, "utf8")
	for _, want := range []string{
		src + ":3:14: [-][misra-cpp2008-14.6.1]: dependent base\n(MISRA C++:2008 Rule 14.6.1)\n",
		"> 3|   void f() { m(); }\n",
		"(AUTOSAR Rule M14-6-1)\n",
		"count: 1 rule: 14.6.1\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output misses %q:\n%s", want, out.String())
		}
	}
}

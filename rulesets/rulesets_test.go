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

package rulesets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetRuleFullName(t *testing.T) {
	cases := map[string]string{
		"[-][misra-cpp2008-14.6.1]: In a class template": "MISRA C++:2008 Rule 14.6.1",
		"[M14_6_1][autosar-M14.6.1]: Names that may":     "AUTOSAR Rule M14-6-1",
		"no tag at all":                                  "",
	}
	for msg, expected := range cases {
		if got := GetRuleFullName(msg); got != expected {
			t.Errorf("GetRuleFullName(%q) = %q, expected %q", msg, got, expected)
		}
	}
}

func TestGetCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cpp")
	content := "l1\nl2\nl3\nl4\nl5\nl6\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := GetCode(path, 4, "utf8")
	if err != nil {
		t.Fatalf("GetCode: %v", err)
	}
	expected := "2| l2\n3| l3\n> 4| l4\n5| l5\n6| l6\n"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

func TestGetCodeGBK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cpp")
	// "// 注释" in GBK
	content := []byte{'/', '/', ' ', 0xd7, 0xa2, 0xca, 0xcd, '\n'}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := GetCode(path, 1, "GBK")
	if err != nil {
		t.Fatalf("GetCode: %v", err)
	}
	if got != "> 1| // 注释\n" {
		t.Errorf("got %q", got)
	}
}

func TestGetCodeMissingFile(t *testing.T) {
	if _, err := GetCode(filepath.Join(t.TempDir(), "missing.cpp"), 1, "utf8"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

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

package basic

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatTimeDuration(t *testing.T) {
	cases := map[time.Duration]string{
		3 * time.Second:                      "3s",
		1*time.Second + 500*time.Millisecond: "1.5s",
		2*time.Second + 250*time.Millisecond: "2.25s",
		0:                                    "0s",
		5 * time.Millisecond:                 "0.005s",
		1*time.Second + 5*time.Millisecond:   "1.005s",
		4*time.Second + 70*time.Millisecond:  "4.07s",
	}
	for d, expected := range cases {
		if got := FormatTimeDuration(d); got != expected {
			t.Errorf("FormatTimeDuration(%v) = %q, expected %q", d, got, expected)
		}
	}
}

func TestGetPercentString(t *testing.T) {
	if got := GetPercentString(1, 4); got != "25%" {
		t.Errorf("got %s, expected 25%%", got)
	}
	if got := GetPercentString(0, 0); got != "100%" {
		t.Errorf("got %s, expected 100%%", got)
	}
}

func TestCombinedOutput(t *testing.T) {
	out, err := CombinedOutput(exec.Command("sh", "-c", "echo hello; echo oops 1>&2"), "echo", 1)
	if err != nil {
		t.Fatalf("CombinedOutput: %v", err)
	}
	if !strings.Contains(string(out), "hello") || !strings.Contains(string(out), "oops") {
		t.Errorf("missing output: %q", out)
	}
	if _, err := CombinedOutput(exec.Command("sh", "-c", "exit 3"), "fail", 0); err == nil {
		t.Error("expected an error for a failing command")
	}
}

func TestConvertRelativePathToAbsolute(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.cpp"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ConvertRelativePathToAbsolute(dir, "a.cpp")
	if err != nil || got != filepath.Join(dir, "a.cpp") {
		t.Errorf("got %s, %v", got, err)
	}
	if _, err := ConvertRelativePathToAbsolute(dir, "missing.cpp"); err == nil {
		t.Error("expected an error for a missing file")
	}
	if got, _ := ConvertRelativePathToAbsolute(dir, "/abs/b.cpp"); got != "/abs/b.cpp" {
		t.Errorf("absolute path changed to %s", got)
	}
}

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

package i18n

import (
	"strings"
	"testing"
)

func TestGetPrinter(t *testing.T) {
	en := GetPrinter("en").Sprintf(MsgDependentBase, "m", "B<T>")
	if !strings.HasPrefix(en, "In a class template") || !strings.Contains(en, "Dependent base: B<T>") {
		t.Errorf("unexpected english message %q", en)
	}
	zh := GetPrinter("zh").Sprintf(MsgDependentBase, "m", "B<T>")
	if !strings.Contains(zh, "依赖基类：B<T>") {
		t.Errorf("unexpected chinese message %q", zh)
	}
	fallback := GetPrinter("fr").Sprintf(MsgCppLines, 10)
	if fallback != "10 行 C++ 代码" {
		t.Errorf("unknown languages should fall back to chinese, got %q", fallback)
	}
}

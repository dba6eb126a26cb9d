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

package analyzer

import (
	"path/filepath"
	"strings"
	"testing"

	"naive.systems/depbase/cruleslib/options"
	"naive.systems/depbase/cruleslib/severity"
	"naive.systems/depbase/misra/checker_integration/checkrule"
)

func TestRun(t *testing.T) {
	srcdir, err := filepath.Abs("../rule_14_6_1/testdata/fixture")
	if err != nil {
		t.Fatal(err)
	}
	rules := []checkrule.CheckRule{
		*checkrule.MakeCheckRuleWithoutError("misra_cpp_2008/rule_14_6_1", `{"severity":"high"}`),
		*checkrule.MakeCheckRuleWithoutError("misra_cpp_2008/rule_0_0_0", "{}"),
	}
	envOpts := &options.EnvOptions{
		ResultsDir: t.TempDir(),
		DumpDir:    srcdir,
		NumWorkers: 2,
		Lang:       "en",
	}
	results, errs := Run(rules, srcdir, envOpts)
	for _, err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if len(results.Results) != 4 {
		t.Fatalf("got %d results, expected 4", len(results.Results))
	}
	for _, r := range results.Results {
		if !strings.HasPrefix(r.ErrorMessage, "[-][misra-cpp2008-14.6.1]: ") {
			t.Errorf("unexpected message %q", r.ErrorMessage)
		}
		if r.Severity != int32(severity.High) {
			t.Errorf("custom severity not applied: %d", r.Severity)
		}
	}
}

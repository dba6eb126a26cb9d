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

package testcase

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/cruleslib/options"
	"naive.systems/depbase/misra/checker_integration/checkrule"
)

type TestCase struct {
	t       *testing.T
	Srcdir  string
	Options *options.CheckOptions
}

// New prepares a rule run over the fixture directory dirname. The scope
// dumps are read from the fixture directory itself and messages are in
// English.
func New(t *testing.T, dirname string) TestCase {
	return NewWithRuleOptions(t, dirname, "{}")
}

// NewWithRuleOptions is New with the JSON options a check_rules line
// would carry.
func NewWithRuleOptions(t *testing.T, dirname string, jsonOptions string) TestCase {
	srcdir, err := filepath.Abs(dirname)
	if err != nil {
		t.Fatalf("filepath.Abs(%s): %v", dirname, err)
	}
	rule, err := checkrule.MakeCheckRule(dirname, jsonOptions)
	if err != nil {
		t.Fatalf("checkrule.MakeCheckRule: %v", err)
	}
	envOptions := &options.EnvOptions{
		ResultsDir: t.TempDir(),
		DumpDir:    srcdir,
		NumWorkers: 2,
		Lang:       "en",
	}
	ruleOptions := &options.RuleSpecificOptions{RuleSpecificResultDir: t.TempDir()}
	checkOptions := options.MakeCheckOptions(&rule.JSONOptions, envOptions, ruleOptions)
	return TestCase{t, srcdir, &checkOptions}
}

func (tc *TestCase) expectedEquals(actual *pb.ResultsList) bool {
	path := filepath.Join(tc.Srcdir, "expected.textproto")
	bytes, err := os.ReadFile(path)
	if err != nil {
		tc.t.Fatalf("os.ReadFile(%s): %v", path, err)
	}
	expected, err := pb.UnmarshalResultsText(bytes)
	if err != nil {
		tc.t.Fatalf("UnmarshalResultsText(%s): %v", path, err)
	}
	// ids, rule names and severities are filled in elsewhere
	cleaned_actual := &pb.ResultsList{}
	for _, result := range actual.Results {
		cleaned_result := &pb.Result{}
		cleaned_result.Path = result.Path
		cleaned_result.LineNumber = result.LineNumber
		cleaned_result.Column = result.Column
		// only the first line of a message is stable across rules
		cleaned_result.ErrorMessage, _, _ = strings.Cut(result.ErrorMessage, "\n")
		cleaned_result.Name = result.Name
		cleaned_result.BaseClass = result.BaseClass
		cleaned_result.Verdict = result.Verdict
		cleaned_actual.Results = append(cleaned_actual.Results, cleaned_result)
	}
	for _, result := range expected.Results {
		result.Path = filepath.Join(tc.Srcdir, result.Path)
	}
	if len(expected.Results) == 0 && len(cleaned_actual.Results) == 0 {
		return true
	}
	return reflect.DeepEqual(expected, cleaned_actual)
}

func (tc *TestCase) dumpResults(list *pb.ResultsList) {
	bytes, err := pb.MarshalResultsText(list)
	if err == nil {
		tc.t.Log(string(bytes))
	} else {
		tc.t.Errorf("MarshalResultsText: %v", err)
	}
}

func (tc *TestCase) ExpectOK(actual *pb.ResultsList, err error) {
	if err != nil {
		tc.t.Fatalf("checker returned error: %v", err)
	}
	if !tc.expectedEquals(actual) {
		tc.dumpResults(actual)
		tc.t.Fatal("checker is expected to be OK")
	}
}

func (tc *TestCase) ExpectFailure(actual *pb.ResultsList, err error) {
	if err != nil {
		tc.t.Fatalf("checker returned error: %v", err)
	}
	if tc.expectedEquals(actual) {
		tc.dumpResults(actual)
		tc.t.Fatal("checker is expected to fail")
	}
}

func (tc *TestCase) ExpectError(_ *pb.ResultsList, err error) {
	if err == nil {
		tc.t.Fatal("checker is expected to return an error")
	}
	tc.t.Logf("checker returned error: %v", err)
}

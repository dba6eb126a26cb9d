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

package options

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"naive.systems/depbase/misra/analyzer/analyzerinterface"
	"naive.systems/depbase/misra/checker_integration/checkrule"
)

type CheckOptions struct {
	JsonOption         checkrule.JSONOption
	EnvOption          EnvOptions
	RuleSpecificOption RuleSpecificOptions
}

type EnvOptions struct {
	ResultsDir string
	// DumpDir holds the scope dumps of every translation unit.
	DumpDir           string
	ExporterBin       string
	ExporterArgs      string
	IgnoreDirPatterns analyzerinterface.ArrayFlags
	CheckProgress     bool
	Debug             bool
	NumWorkers        int32
	TimeoutNormal     int
	Lang              string
}

type RuleSpecificOptions struct {
	RuleSpecificResultDir string
}

func NewRuleSpecificOptions(ruleName string, generalResultsDir string) *RuleSpecificOptions {
	options := &RuleSpecificOptions{}

	rulset, rule, found := strings.Cut(ruleName, "/")
	if !found {
		rule = ruleName
	}
	tmpResultsDir := filepath.Join(generalResultsDir, "tmp", rulset)
	err := os.MkdirAll(tmpResultsDir, os.ModePerm)
	if err != nil {
		glog.Fatalf("failed to create tmp dir: %v", err)
	}
	resultsDir, err := os.MkdirTemp(tmpResultsDir, rule+"-*")
	if err != nil {
		glog.Fatalf("failed to create result dir: %v", err)
	}
	options.RuleSpecificResultDir = resultsDir
	return options
}

func NewEnvOptionsFromShared(sharedOptions *SharedOptions, numWorkers int32) *EnvOptions {
	dumpDir := sharedOptions.GetDumpDir()
	if dumpDir == "" {
		dumpDir = filepath.Join(sharedOptions.GetResultsDir(), "scope")
	}
	return &EnvOptions{
		ResultsDir:        sharedOptions.GetResultsDir(),
		DumpDir:           dumpDir,
		ExporterBin:       sharedOptions.GetExporterBin(),
		ExporterArgs:      sharedOptions.GetExporterArgs(),
		IgnoreDirPatterns: sharedOptions.GetIgnoreDirPatterns(),
		CheckProgress:     sharedOptions.GetCheckProgress(),
		Debug:             sharedOptions.GetDebugMode(),
		NumWorkers:        numWorkers,
		TimeoutNormal:     sharedOptions.GetTimeoutNormal(),
		Lang:              sharedOptions.GetLang(),
	}
}

func MakeCheckOptions(jsonOption *checkrule.JSONOption, envOption *EnvOptions, ruleOption *RuleSpecificOptions) CheckOptions {
	return CheckOptions{
		JsonOption:         *jsonOption,
		EnvOption:          *envOption,
		RuleSpecificOption: *ruleOption,
	}
}

func GetCompileCommandsPath(srcdir string) string {
	return filepath.Join(srcdir, analyzerinterface.CCJson)
}

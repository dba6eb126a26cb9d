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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"
	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/atomic"
	"naive.systems/depbase/misra/checker_integration/checkrule"
	"naive.systems/depbase/rulesets"
)

type ArrayFlags []string

const CCJson string = "compile_commands.json"

func (i *ArrayFlags) String() string {
	return strings.Join(*i, ",")
}

func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func FilterCheckRules(checkrules []checkrule.CheckRule, prefix string) []checkrule.CheckRule {
	var returnCheckRules []checkrule.CheckRule
	for _, rule := range checkrules {
		if strings.HasPrefix(rule.Name, prefix) {
			returnCheckRules = append(returnCheckRules, rule)
		}
	}
	return returnCheckRules
}

// ReadCheckRules reads one rule per line, the rule name optionally followed
// by its JSON options. A .yaml or .yml file maps rule names to options.
func ReadCheckRules(checkRulesPath string) ([]checkrule.CheckRule, error) {
	glog.Info("checkRulesPath ", checkRulesPath)
	if ext := filepath.Ext(checkRulesPath); ext == ".yaml" || ext == ".yml" {
		content, err := os.ReadFile(checkRulesPath)
		if err != nil {
			return nil, err
		}
		return checkrule.MakeCheckRulesFromYAML(content)
	}
	checkRulesFile, err := os.Open(checkRulesPath)
	if err != nil {
		return nil, err
	}
	defer checkRulesFile.Close()

	scanner := bufio.NewScanner(checkRulesFile)
	checkRules := make([]checkrule.CheckRule, 0)
	logCheckRules := []string{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		ruleName := parts[0]
		jsonOptions := "{}"
		if len(parts) > 1 {
			jsonOptions = parts[1]
		}

		checkRule, err := checkrule.MakeCheckRule(ruleName, jsonOptions)
		if err != nil {
			return nil, err
		}
		logCheckRules = append(logCheckRules, line)
		checkRules = append(checkRules, *checkRule)
	}

	err = scanner.Err()
	if err != nil {
		return nil, err
	}
	glog.Infof("check_rules content:\n%s", strings.Join(logCheckRules, "\n"))
	return checkRules, nil
}

func CreateResultDir(resultsDir string) error {
	dir, err := os.Stat(resultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			err = os.MkdirAll(resultsDir, os.ModePerm)
			return err
		} else {
			return err
		}
	}

	if !dir.IsDir() {
		// a file exists instead of dir
		return os.ErrExist
	}

	return nil
}

// AddID gives every result without an id one derived from its content, so
// rerunning on the same code yields the same ids.
func AddID(allResults *pb.ResultsList) {
	for _, result := range allResults.Results {
		if result.Id != "" {
			continue
		}
		key := strings.Join([]string{
			result.Ruleset, result.RuleId, result.Path,
			strconv.Itoa(int(result.LineNumber)), strconv.Itoa(int(result.Column)),
			result.ErrorMessage,
		}, "\x00")
		result.Id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
	}
}

// convert path from relative path to absolute path
// remove results of which the path not in src dir
func FormatResultPath(allResults *pb.ResultsList, srcDir string) *pb.ResultsList {
	formattedResult := &pb.ResultsList{}
	for _, result := range allResults.Results {
		if !filepath.IsAbs(result.Path) {
			result.Path = filepath.Join(srcDir, result.Path)
		}
		if strings.HasPrefix(result.Path, srcDir) {
			formattedResult.Results = append(formattedResult.Results, result)
		} else {
			glog.Infof("result in %s dropped, not under %s", result.Path, srcDir)
		}
	}

	return formattedResult
}

func WriteResults(allResults *pb.ResultsList, resultsPath string) error {
	out, err := pb.MarshalResults(allResults)
	if err != nil {
		return err
	}
	return atomic.Write(resultsPath, out)
}

func WriteJsonResults(allResults *pb.ResultsList, resultsPath string) error {
	out, err := pb.MarshalResultsJSON(allResults)
	if err != nil {
		return err
	}
	var rawMessage json.RawMessage = out
	outWithIndent, err := json.MarshalIndent(rawMessage, "", "  ")
	if err != nil {
		return err
	}
	return atomic.Write(resultsPath, outWithIndent)
}

// PrintResults writes a human readable listing of the results to w, each
// with its rule name and, when the file can be read, the code around it.
func PrintResults(w io.Writer, allResults *pb.ResultsList, printCounts bool, charset string) {
	results := allResults.Results
	result_count_map := map[string]int{}

	pb.SortResults(allResults)

	for _, result := range results {
		if result.Column > 0 {
			fmt.Fprintf(w, "%s:%d:%d: %s\n", result.Path, result.LineNumber, result.Column, result.ErrorMessage)
		} else {
			fmt.Fprintf(w, "%s:%d: %s\n", result.Path, result.LineNumber, result.ErrorMessage)
		}
		if name := rulesets.GetRuleFullName(result.ErrorMessage); name != "" {
			fmt.Fprintf(w, "(%s)\n", name)
		}
		code, err := rulesets.GetCode(result.Path, result.LineNumber, charset)
		if err != nil {
			glog.Warningf("rulesets.GetCode(%s): %v", result.Path, err)
		} else {
			fmt.Fprint(w, code)
		}
		fmt.Fprintln(w)
		result_count_map[result.RuleId]++
	}
	if printCounts {
		// add a group by output to show the occurred times of each rule in project.
		for rule, count := range result_count_map {
			fmt.Fprintf(w, "count: %d rule: %s\n", count, rule)
		}
	}
}

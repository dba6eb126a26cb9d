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

/*
This package should not import any packages of other analyzers to
avoid recursive import.
*/
package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
	"golang.org/x/exp/slices"
	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/misra/checker_integration/checkrule"
)

var KSupportImplementationSuffixs = []string{"c", "cpp", "cc", "cxx", "c++"}
var kCSuffixs = []string{".c"}

func IsCCFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return ext != "" && slices.Contains(KSupportImplementationSuffixs, ext)
}

var ruleTagPattern = regexp.MustCompile(`\[([a-zA-Z\_\d\-]*)\]\[([a-zA-Z\.\-\_\d]*)\].*`)

// GetRuleNameFromErrorMessage recovers the rule of a prefixed message such as
// "[-][misra-cpp2008-14.6.1]: ..." or "[M14_6_1][autosar-M14.6.1]: ...".
func GetRuleNameFromErrorMessage(msg string) (string, error) {
	matches := ruleTagPattern.FindAllStringSubmatch(msg, -1)

	for _, match := range matches {
		if len(match) < 3 {
			continue
		}
		ruleInfo := strings.Split(match[2], "-")
		if len(ruleInfo) == 3 && ruleInfo[0] == "misra" && ruleInfo[1] == "cpp2008" {
			ruleId := strings.ReplaceAll(ruleInfo[2], ".", "_")
			return "misra_cpp_2008/rule_" + ruleId, nil
		}
		if len(ruleInfo) == 2 && ruleInfo[0] == "autosar" {
			ruleId := strings.ReplaceAll(ruleInfo[1], ".", "_")
			return "autosar/rule_" + ruleId, nil
		}
		lastIndex := strings.LastIndex(match[2], "-")
		if lastIndex != -1 {
			return fmt.Sprintf("%s/%s", match[2][:lastIndex], match[2][lastIndex+1:]), nil
		}
	}
	return "", fmt.Errorf("invalid error message %v", msg)
}

func ruleOf(result *pb.Result) (string, error) {
	if result.Ruleset != "" && result.RuleId != "" {
		return result.Ruleset + "/" + result.RuleId, nil
	}
	return GetRuleNameFromErrorMessage(result.ErrorMessage)
}

// DeleteExceedResults keeps at most max-report-num findings per rule.
func DeleteExceedResults(allResults *pb.ResultsList, checkRules []checkrule.CheckRule) *pb.ResultsList {
	maxReportNumMap := make(map[string]int)
	for _, checkRule := range checkRules {
		if checkRule.JSONOptions.MaxReportNum != nil {
			maxReportNumMap[checkRule.Name] = *checkRule.JSONOptions.MaxReportNum
		}
	}
	reported := make(map[string]int)
	rtnResults := make([]*pb.Result, 0)
	for _, currentResult := range allResults.Results {
		rule, err := ruleOf(currentResult)
		if err != nil {
			glog.Errorf("GetRuleNameFromErrorMessage: %v", err)
			rtnResults = append(rtnResults, currentResult)
			continue
		}
		limit, exist := maxReportNumMap[rule]
		if !exist {
			rtnResults = append(rtnResults, currentResult)
			continue
		}
		if reported[rule] < limit {
			reported[rule]++
			rtnResults = append(rtnResults, currentResult)
		}
	}
	allResults.Results = rtnResults
	return allResults
}

func DeleteResultsWithCertainSuffixs(allResults *pb.ResultsList, suffix []string) *pb.ResultsList {
	rtnResults := make([]*pb.Result, 0)
	for _, currentResult := range allResults.Results {
		if !slices.Contains(suffix, filepath.Ext(currentResult.Path)) {
			rtnResults = append(rtnResults, currentResult)
		}
	}
	allResults.Results = rtnResults
	return allResults
}

// DeleteCResults drops findings located in C sources, which cannot contain
// class templates.
func DeleteCResults(allResults *pb.ResultsList) *pb.ResultsList {
	return DeleteResultsWithCertainSuffixs(allResults, kCSuffixs)
}

func MatchIgnoreDirPatterns(ignoreDirPatterns []string, filePath string) (bool, error) {
	for _, pattern := range ignoreDirPatterns {
		matched, err := doublestar.PathMatch(pattern, filePath)
		if err != nil {
			return false, fmt.Errorf("doublestar.PathMatch(%s): %v", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// ProcessIgnoreDir removes findings whose path matches one of the patterns.
func ProcessIgnoreDir(allResults *pb.ResultsList, ignoreDirPatterns []string) *pb.ResultsList {
	if len(ignoreDirPatterns) == 0 {
		return allResults
	}
	rtnResults := make([]*pb.Result, 0)
	for _, currentResult := range allResults.Results {
		matched, err := MatchIgnoreDirPatterns(ignoreDirPatterns, currentResult.Path)
		if err != nil {
			glog.Errorf("MatchIgnoreDirPatterns: %v", err)
		}
		if !matched {
			rtnResults = append(rtnResults, currentResult)
		}
	}
	allResults.Results = rtnResults
	return allResults
}

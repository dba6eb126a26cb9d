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

package severity

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	pb "naive.systems/depbase/analyzer/proto"
)

type Severity int32

const (
	Unknown Severity = iota
	Highest
	High
	Medium
	Low
	Lowest
)

var names = map[Severity]string{
	Unknown: "unknown",
	Highest: "highest",
	High:    "high",
	Medium:  "medium",
	Low:     "low",
	Lowest:  "lowest",
}

func (s Severity) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int32(s))
}

func Parse(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range names {
		if n == name {
			return s, nil
		}
	}
	return Unknown, fmt.Errorf("invalid severity %q", name)
}

var ruleSeverity = map[string]Severity{
	"misra_cpp_2008/rule_14_6_1": Medium,
	"autosar/rule_M14_6_1":       Medium,
}

func Default(rule string) Severity {
	if s, ok := ruleSeverity[rule]; ok {
		return s
	}
	return Unknown
}

// AddSeverity fills in the severity of every finding of rule. A valid
// customSeverity from check_rules wins over the rule default. Compliant
// entries are always lowest.
func AddSeverity(results *pb.ResultsList, rule string, customSeverity string) *pb.ResultsList {
	if results == nil {
		return &pb.ResultsList{}
	}
	s := Default(rule)
	if customSeverity != "" {
		custom, err := Parse(customSeverity)
		if err != nil {
			glog.Warningf("%s: %v, using %s", rule, err, s)
		} else {
			s = custom
		}
	}
	for _, r := range results.Results {
		if r.Verdict == pb.VerdictCompliant {
			r.Severity = int32(Lowest)
			continue
		}
		r.Severity = int32(s)
	}
	return results
}

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

package checkrule

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v2"
)

type CheckRule struct {
	Name        string
	JSONOptions JSONOption
}

// DependencePolicy decides how a base whose dependence cannot be worked
// out from its spelling is classified.
type DependencePolicy int

const (
	// Conservative treats such a base as dependent.
	Conservative DependencePolicy = iota
	// Lenient treats such a base as not dependent.
	Lenient
)

func (p DependencePolicy) String() string {
	switch p {
	case Conservative:
		return "conservative"
	case Lenient:
		return "lenient"
	}
	return fmt.Sprintf("DependencePolicy(%d)", int(p))
}

func (p DependencePolicy) MarshalText() ([]byte, error) {
	switch p {
	case Conservative, Lenient:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("invalid dependence policy %d", int(p))
}

func (p *DependencePolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "conservative":
		*p = Conservative
	case "lenient":
		*p = Lenient
	default:
		return fmt.Errorf("invalid undecidable-dependence %q, expected conservative or lenient", text)
	}
	return nil
}

type JSONOption struct {
	Severity     *string `json:"severity,omitempty" yaml:"severity,omitempty"`
	MaxReportNum *int    `json:"max-report-num,omitempty" yaml:"max-report-num,omitempty"`
	// How bases like `Alias<T>::type` are classified when the front end
	// marks them unresolved.
	UndecidableDependence *DependencePolicy `json:"undecidable-dependence,omitempty" yaml:"undecidable-dependence,omitempty"`
	FollowInheritedBases  *bool             `json:"follow-inherited-bases,omitempty" yaml:"follow-inherited-bases,omitempty"`
	// ReportCompliant also emits compliant name uses, for rule self tests.
	ReportCompliant *bool `json:"report-compliant,omitempty" yaml:"report-compliant,omitempty"`
}

func (jsonOption JSONOption) GetUndecidableDependence() DependencePolicy {
	if jsonOption.UndecidableDependence == nil {
		return Conservative
	}
	return *jsonOption.UndecidableDependence
}

func (jsonOption JSONOption) GetFollowInheritedBases() bool {
	if jsonOption.FollowInheritedBases == nil {
		return true
	}
	return *jsonOption.FollowInheritedBases
}

func (jsonOption JSONOption) GetReportCompliant() bool {
	return jsonOption.ReportCompliant != nil && *jsonOption.ReportCompliant
}

func MakeCheckRule(name string, jsonOptions string) (*CheckRule, error) {
	checkRule := &CheckRule{}

	checkRule.Name = name
	decoder := json.NewDecoder(strings.NewReader(jsonOptions))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&checkRule.JSONOptions)
	if err != nil {
		return nil, fmt.Errorf("invalid options for %s: %v", name, err)
	}
	return checkRule, nil
}

func MakeCheckRuleWithoutError(name string, jsonOptions string) *CheckRule {
	checkRule, err := MakeCheckRule(name, jsonOptions)
	if err != nil {
		glog.Fatalf("can not make CheckRule without error: error: %v", err)
	}
	return checkRule
}

// MakeCheckRulesFromYAML reads the YAML form of check_rules, a mapping from
// rule name to its options. Rules keep the order they are written in.
func MakeCheckRulesFromYAML(content []byte) ([]CheckRule, error) {
	ordered := yaml.MapSlice{}
	if err := yaml.Unmarshal(content, &ordered); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %v", err)
	}
	checkRules := []CheckRule{}
	for _, item := range ordered {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("rule name %v is not a string", item.Key)
		}
		option := JSONOption{}
		if item.Value != nil {
			raw, err := yaml.Marshal(item.Value)
			if err != nil {
				return nil, fmt.Errorf("yaml.Marshal(%s): %v", name, err)
			}
			if err := yaml.UnmarshalStrict(raw, &option); err != nil {
				return nil, fmt.Errorf("invalid options for %s: %v", name, err)
			}
		}
		checkRules = append(checkRules, CheckRule{Name: name, JSONOptions: option})
	}
	return checkRules, nil
}

func (jsonOption JSONOption) ToString() string {
	res, err := json.Marshal(jsonOption)
	if err != nil {
		glog.Errorf("failed to marshal json option: %v", jsonOption)
	}
	return string(res)
}

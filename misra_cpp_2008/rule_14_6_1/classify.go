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

package rule_14_6_1

import (
	"strings"
	"unicode"

	"naive.systems/depbase/cruleslib/cppscope"
	"naive.systems/depbase/misra/checker_integration/checkrule"
	"naive.systems/depbase/misra/checker_integration/scopedump"
)

type ClassifiedBase struct {
	Spec      *cppscope.BaseSpecifier
	Dependent bool
	// Undecidable is set when the front end could not see through the base
	// type and Dependent came from the policy.
	Undecidable bool
}

// Classification is the dependent-base table of one class. It is computed
// once and not changed afterwards.
type Classification struct {
	Class *cppscope.Scope
	Bases []ClassifiedBase
}

func (c *Classification) Dependent() []*cppscope.BaseSpecifier {
	deps := []*cppscope.BaseSpecifier{}
	for _, b := range c.Bases {
		if b.Dependent {
			deps = append(deps, b.Spec)
		}
	}
	return deps
}

// Classify decides for every base of class whether it depends on one of
// class's own template parameters. Parameters of enclosing templates do not
// count.
func Classify(class *cppscope.Scope, policy checkrule.DependencePolicy) *Classification {
	c := &Classification{Class: class}
	for _, spec := range class.Bases {
		cb := ClassifiedBase{Spec: spec}
		if class.IsClassTemplate() {
			switch {
			case mentionsParam(spec.Type, class):
				cb.Dependent = true
			case undecidable(spec.Type):
				cb.Undecidable = true
				cb.Dependent = policy == checkrule.Conservative
			}
		}
		c.Bases = append(c.Bases, cb)
	}
	return c
}

func mentionsParam(t *scopedump.TypeRef, class *cppscope.Scope) bool {
	if t == nil {
		return false
	}
	for _, part := range strings.Split(t.Name, "::") {
		if class.HasTemplateParam(strings.TrimSpace(part)) {
			return true
		}
	}
	for _, arg := range t.Args {
		if mentionsParam(arg, class) {
			return true
		}
	}
	for _, tok := range identifiers(t.Spelling) {
		if class.HasTemplateParam(tok) {
			return true
		}
	}
	return false
}

func undecidable(t *scopedump.TypeRef) bool {
	if t == nil {
		return false
	}
	if t.Unresolved {
		return true
	}
	for _, arg := range t.Args {
		if undecidable(arg) {
			return true
		}
	}
	return false
}

// identifiers splits a type spelling like "ns::B<T, 3>" into its
// identifier tokens.
func identifiers(spelling string) []string {
	return strings.FieldsFunc(spelling, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
}

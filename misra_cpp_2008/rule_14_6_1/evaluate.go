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
	"naive.systems/depbase/cruleslib/cppscope"
	"naive.systems/depbase/misra/checker_integration/checkrule"
)

type Verdict int

const (
	NotApplicable Verdict = iota
	Compliant
	NonCompliant
)

func (v Verdict) String() string {
	switch v {
	case NotApplicable:
		return "not applicable"
	case Compliant:
		return "compliant"
	case NonCompliant:
		return "non-compliant"
	}
	return "unknown"
}

type Reason int

const (
	NotInClassTemplate Reason = iota
	NoDependentBase
	Qualified
	LocalName
	OwnMember
	NotInDependentBase
	DependentBaseMember
)

func (r Reason) String() string {
	switch r {
	case NotInClassTemplate:
		return "not in a class template"
	case NoDependentBase:
		return "no dependent base"
	case Qualified:
		return "qualified"
	case LocalName:
		return "local name"
	case OwnMember:
		return "own member"
	case NotInDependentBase:
		return "not declared in a dependent base"
	case DependentBaseMember:
		return "declared in a dependent base"
	}
	return "unknown"
}

type Finding struct {
	Use     *cppscope.NameUse
	Verdict Verdict
	Reason  Reason
	// Class is the class template the use belongs to, nil outside one.
	Class         *cppscope.Scope
	Qualification Qualification
	Resolution    Resolution
	// Base is the dependent base that declares the name. NonCompliant only.
	Base *cppscope.BaseSpecifier
}

// Evaluator turns the name uses of one translation unit into findings.
// Every class is classified once, in NewEvaluator; Evaluate only reads.
type Evaluator struct {
	model   *cppscope.Model
	lookup  *Lookup
	classes map[*cppscope.Scope]*Classification
}

func NewEvaluator(model *cppscope.Model, policy checkrule.DependencePolicy, followInheritedBases bool) *Evaluator {
	e := &Evaluator{
		model:   model,
		lookup:  NewLookup(model, followInheritedBases),
		classes: make(map[*cppscope.Scope]*Classification, len(model.Classes)),
	}
	for _, class := range model.Classes {
		e.classes[class] = Classify(class, policy)
	}
	return e
}

func (e *Evaluator) Classification(class *cppscope.Scope) *Classification {
	return e.classes[class]
}

func (e *Evaluator) Evaluate(u *cppscope.NameUse) Finding {
	f := Finding{Use: u}
	class := u.Scope.EnclosingClass()
	if !class.IsClassTemplate() {
		f.Reason = NotInClassTemplate
		return f
	}
	f.Class = class
	deps := e.classes[class].Dependent()
	if len(deps) == 0 {
		f.Reason = NoDependentBase
		return f
	}
	f.Qualification = Qualify(u)
	if f.Qualification != Unqualified {
		f.Reason = Qualified
		return f
	}
	f.Resolution = e.lookup.Ordinary(u, class)
	switch f.Resolution.Kind {
	case LocalHit:
		f.Verdict, f.Reason = Compliant, LocalName
		return f
	case MemberHit:
		f.Verdict, f.Reason = Compliant, OwnMember
		return f
	}
	for _, base := range deps {
		if e.lookup.Reachable(u.Name, base, class) {
			f.Verdict, f.Reason, f.Base = NonCompliant, DependentBaseMember, base
			return f
		}
	}
	f.Verdict, f.Reason = Compliant, NotInDependentBase
	return f
}

func (e *Evaluator) EvaluateAll() []Finding {
	findings := make([]Finding, 0, len(e.model.Uses))
	for _, u := range e.model.Uses {
		findings = append(findings, e.Evaluate(u))
	}
	return findings
}

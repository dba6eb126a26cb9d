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
	"testing"

	"naive.systems/depbase/cruleslib/cppscope"
	sd "naive.systems/depbase/misra/checker_integration/scopedump"
)

func TestOrdinary(t *testing.T) {
	model := cppscope.Build(unit(use("local", 13), use("own", 13), use("global", 13), use("nowhere", 13)))
	lookup := NewLookup(model, true)
	class := model.ScopeByID("Derived")
	expected := []ResolutionKind{LocalHit, MemberHit, NamespaceHit, NotFound}
	for i, u := range model.Uses {
		got := lookup.Ordinary(u, class)
		if got.Kind != expected[i] {
			t.Errorf("%s: got %v, expected %v", u.Name, got.Kind, expected[i])
		}
		if (got.Decl == nil) != (got.Kind == NotFound) {
			t.Errorf("%s: declaration %v with %v", u.Name, got.Decl, got.Kind)
		}
	}
}

func TestResolveBase(t *testing.T) {
	tu := &sd.TranslationUnit{File: "t.cpp", Decls: []*sd.Decl{
		{
			Kind: sd.KindNamespace, Name: "ns", Loc: at(1),
			Members: []*sd.Decl{
				{ID: "ns.B", Kind: sd.KindClass, Name: "B", Loc: at(2), Template: true, TemplateParams: []string{"T"}},
			},
		},
		{ID: "B", Kind: sd.KindClass, Name: "B", Loc: at(3)},
		{
			ID: "A", Kind: sd.KindClass, Name: "A", Loc: at(4), Template: true, TemplateParams: []string{"T"},
			Members: []*sd.Decl{{Kind: sd.KindType, Name: "alias", Loc: at(5)}},
		},
	}}
	model := cppscope.Build(tu)
	lookup := NewLookup(model, true)
	a := model.ScopeByID("A")
	for _, testCase := range [...]struct {
		name     string
		base     *sd.TypeRef
		expected *cppscope.Scope
	}{
		{"by ref", &sd.TypeRef{Name: "whatever", Ref: "ns.B"}, model.ScopeByID("ns.B")},
		{"unknown ref falls back to the name", &sd.TypeRef{Name: "B", Ref: "missing"}, model.ScopeByID("B")},
		{"plain name", typeRef("B"), model.ScopeByID("B")},
		{"namespace path", typeRef("ns::B", "T"), model.ScopeByID("ns.B")},
		{"global path", typeRef("::ns::B", "T"), model.ScopeByID("ns.B")},
		{"template parameter", typeRef("T"), nil},
		{"member of a parameter", typeRef("T::base"), nil},
		{"namespace is not a class", typeRef("ns"), nil},
		{"unknown", typeRef("Missing"), nil},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			if got := lookup.ResolveBase(testCase.base, a); got != testCase.expected {
				t.Errorf("got %v, expected %v", got, testCase.expected)
			}
		})
	}
}

func TestReachableStopsOnCycles(t *testing.T) {
	// X derives from Y and Y from X; neither declares z
	tu := &sd.TranslationUnit{File: "t.cpp", Decls: []*sd.Decl{
		{ID: "X", Kind: sd.KindClass, Name: "X", Loc: at(1), Bases: []*sd.Base{{Type: &sd.TypeRef{Name: "Y", Ref: "Y"}}}},
		{ID: "Y", Kind: sd.KindClass, Name: "Y", Loc: at(2), Bases: []*sd.Base{{Type: &sd.TypeRef{Name: "X", Ref: "X"}}}},
		{ID: "A", Kind: sd.KindClass, Name: "A", Loc: at(3), Template: true, TemplateParams: []string{"T"}},
	}}
	model := cppscope.Build(tu)
	lookup := NewLookup(model, true)
	base := &cppscope.BaseSpecifier{Type: &sd.TypeRef{Name: "X", Ref: "X"}}
	if lookup.Reachable("z", base, model.ScopeByID("A")) {
		t.Error("z is declared nowhere")
	}
	if lookup.Reachable("X", base, model.ScopeByID("A")) {
		t.Error("injected class names are not inherited members")
	}
}

// template <class T> class B;
// template <class T> class B { int m; };
// template <class T> class A : B<T> {};
func forwardDeclaredBase(body ...*sd.Use) *sd.TranslationUnit {
	return &sd.TranslationUnit{File: "t.cpp", Decls: []*sd.Decl{
		{Kind: sd.KindClass, Name: "B", Loc: at(1), Template: true, TemplateParams: []string{"T"}},
		{
			Kind: sd.KindClass, Name: "B", Loc: at(2), Template: true, TemplateParams: []string{"T"},
			Members: []*sd.Decl{{Kind: sd.KindVariable, Name: "m", Loc: at(3)}},
		},
		{
			ID: "A", Kind: sd.KindClass, Name: "A", Loc: at(5), Template: true, TemplateParams: []string{"T"},
			Bases:   []*sd.Base{{Type: typeRef("B", "T")}},
			Members: []*sd.Decl{method("f", 6, nil, body...)},
		},
	}}
}

func TestReachableThroughForwardDeclaredBase(t *testing.T) {
	model := cppscope.Build(forwardDeclaredBase())
	lookup := NewLookup(model, false)
	a := model.ScopeByID("A")
	if !lookup.Reachable("m", a.Bases[0], a) {
		t.Error("m is declared in the definition of B")
	}
	if lookup.Reachable("n", a.Bases[0], a) {
		t.Error("n is declared nowhere")
	}
}

func TestOrdinarySkipsLaterLocals(t *testing.T) {
	// void f() { m = 0; int m; m = 1; }
	fn := &sd.Decl{
		Kind: sd.KindFunction, Name: "f", Loc: at(12),
		Members: []*sd.Decl{{Kind: sd.KindVariable, Name: "m", Loc: sd.Loc{File: "t.cpp", Line: 14, Column: 9}}},
		Uses:    []*sd.Use{use("m", 13), use("m", 15)},
	}
	tu := unit()
	derived := tu.Decls[len(tu.Decls)-1]
	derived.Members = append(derived.Members, fn)
	model := cppscope.Build(tu)
	lookup := NewLookup(model, true)
	class := model.ScopeByID("Derived")
	if len(model.Uses) != 2 {
		t.Fatalf("expected 2 uses, got %d", len(model.Uses))
	}
	if got := lookup.Ordinary(model.Uses[0], class); got.Kind != NamespaceHit {
		t.Errorf("use before the local: got %v, expected %v", got.Kind, NamespaceHit)
	}
	if got := lookup.Ordinary(model.Uses[1], class); got.Kind != LocalHit {
		t.Errorf("use after the local: got %v, expected %v", got.Kind, LocalHit)
	}
}

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

package cppscope

import (
	"github.com/golang/glog"
	"naive.systems/depbase/misra/checker_integration/scopedump"
)

type indexKey struct {
	scope *Scope
	name  string
}

// Model is the scope tree of one translation unit. It is read only once
// Build returns and may be shared between goroutines.
type Model struct {
	File    string
	Root    *Scope
	Uses    []*NameUse
	Classes []*Scope
	// Skipped counts malformed dump nodes that were left out.
	Skipped int

	index map[indexKey][]*Declaration
	byID  map[string]*Scope
}

// Declared returns the declarations of name owned by s itself, in
// declaration order.
func (m *Model) Declared(s *Scope, name string) []*Declaration {
	return m.index[indexKey{s, name}]
}

// ScopeByID resolves a dump id to the scope it opened.
func (m *Model) ScopeByID(id string) *Scope {
	if id == "" {
		return nil
	}
	return m.byID[id]
}

type pending struct {
	decl *scopedump.Decl
	in   *Scope
}

type builder struct {
	model     *Model
	outOfLine []pending
	// classes that have a body or a base clause
	defined map[*Scope]bool
}

// Build creates the model for tu. Nodes the model cannot place are logged
// and counted in Skipped; Build itself never fails.
func Build(tu *scopedump.TranslationUnit) *Model {
	m := &Model{
		File:  tu.File,
		Root:  &Scope{Kind: NamespaceScope},
		index: make(map[indexKey][]*Declaration),
		byID:  make(map[string]*Scope),
	}
	b := &builder{model: m, defined: make(map[*Scope]bool)}
	for _, d := range tu.Decls {
		b.walk(d, m.Root)
	}
	// Owners may be declared after the out-of-line definition in the dump.
	for _, p := range b.outOfLine {
		b.defineOutOfLine(p.decl, p.in)
	}
	if m.Skipped > 0 {
		glog.Warningf("%s: skipped %d malformed nodes", tu.File, m.Skipped)
	}
	return m
}

func (b *builder) skip(format string, args ...any) {
	b.model.Skipped++
	glog.Warningf(format, args...)
}

func (b *builder) declare(s *Scope, name string, kind DeclKind, static bool, loc scopedump.Loc) *Declaration {
	decl := &Declaration{
		Name:   name,
		Kind:   kind,
		Scope:  s,
		Member: s.Kind == ClassScope,
		Static: static,
		Loc:    loc,
	}
	s.Decls = append(s.Decls, decl)
	key := indexKey{s, name}
	b.model.index[key] = append(b.model.index[key], decl)
	return decl
}

func (b *builder) open(parent *Scope, kind ScopeKind, d *scopedump.Decl) *Scope {
	s := &Scope{ID: d.ID, Kind: kind, Name: d.Name, Loc: d.Loc, Parent: parent}
	parent.Children = append(parent.Children, s)
	if d.ID != "" {
		if _, ok := b.model.byID[d.ID]; ok {
			glog.Warningf("%s: duplicate id %q, keeping the first", b.model.File, d.ID)
		} else {
			b.model.byID[d.ID] = s
		}
	}
	return s
}

func (b *builder) declareTemplateParams(s *Scope, d *scopedump.Decl) {
	if !d.Template {
		return
	}
	for _, p := range d.TemplateParams {
		b.declare(s, p, TemplateParamDecl, false, d.Loc)
	}
}

func (b *builder) walk(d *scopedump.Decl, parent *Scope) {
	if d == nil {
		b.skip("%s: empty declaration node", b.model.File)
		return
	}
	switch d.Kind {
	case scopedump.KindNamespace:
		b.walkNamespace(d, parent)
	case scopedump.KindClass:
		b.walkClass(d, parent)
	case scopedump.KindFunction:
		if d.Owner != "" {
			b.outOfLine = append(b.outOfLine, pending{d, parent})
			return
		}
		decl := b.declare(parent, d.Name, FunctionDecl, d.Static, d.Loc)
		decl.Defines = b.walkBody(d, parent, FunctionScope)
	case scopedump.KindBlock:
		b.walkBody(d, parent, BlockScope)
	case scopedump.KindVariable, scopedump.KindType:
		kind := VariableDecl
		if d.Kind == scopedump.KindType {
			kind = TypeDecl
		}
		if d.Name == "" {
			b.skip("%s:%d: unnamed %s", b.model.File, d.Loc.Line, d.Kind)
			return
		}
		b.declare(parent, d.Name, kind, d.Static, d.Loc)
		// initializer
		b.addUses(d.Uses, parent)
	default:
		b.skip("%s:%d: unknown declaration kind %q", b.model.File, d.Loc.Line, d.Kind)
	}
}

func (b *builder) walkNamespace(d *scopedump.Decl, parent *Scope) {
	var s *Scope
	if d.Name != "" {
		// reopened namespaces share one scope
		for _, decl := range b.model.Declared(parent, d.Name) {
			if decl.Kind == NamespaceDecl {
				s = decl.Defines
				break
			}
		}
	}
	if s == nil {
		s = b.open(parent, NamespaceScope, d)
		if d.Name != "" {
			decl := b.declare(parent, d.Name, NamespaceDecl, false, d.Loc)
			decl.Defines = s
		}
	} else if d.ID != "" && b.model.byID[d.ID] == nil {
		b.model.byID[d.ID] = s
	}
	for _, member := range d.Members {
		b.walk(member, s)
	}
}

// redeclaredClass returns the scope of an earlier declaration of the class
// d names in parent when one of the two is only a declaration. Two
// definitions of one name (a template and its explicit specialization) keep
// separate scopes.
func (b *builder) redeclaredClass(d *scopedump.Decl, parent *Scope, defines bool) *Scope {
	if d.Name == "" {
		return nil
	}
	for _, decl := range b.model.Declared(parent, d.Name) {
		if decl.Kind != ClassDecl || decl.Defines == nil {
			continue
		}
		if !defines || !b.defined[decl.Defines] {
			return decl.Defines
		}
	}
	return nil
}

// Declarations of one class share one scope. The template parameter names
// of the definition are the ones kept.
func (b *builder) walkClass(d *scopedump.Decl, parent *Scope) {
	defines := len(d.Members) > 0 || len(d.Bases) > 0 || len(d.Uses) > 0
	s := b.redeclaredClass(d, parent, defines)
	if s == nil {
		s = b.open(parent, ClassScope, d)
		if d.Name != "" {
			decl := b.declare(parent, d.Name, ClassDecl, false, d.Loc)
			decl.Defines = s
			b.declare(s, d.Name, TypeDecl, false, d.Loc).Injected = true
		}
		b.model.Classes = append(b.model.Classes, s)
	} else if d.ID != "" && b.model.byID[d.ID] == nil {
		b.model.byID[d.ID] = s
	}
	if d.Template && (s.TemplateParams == nil || defines) {
		s.IsTemplate = true
		s.TemplateParams = append([]string(nil), d.TemplateParams...)
		for _, p := range d.TemplateParams {
			if !b.declaresParam(s, p) {
				b.declare(s, p, TemplateParamDecl, false, d.Loc)
			}
		}
	}
	if defines {
		s.Loc = d.Loc
		b.defined[s] = true
	}
	for _, base := range d.Bases {
		if base == nil || base.Type == nil || base.Type.Name == "" {
			b.skip("%s:%d: base of %s without a type", b.model.File, d.Loc.Line, d.Name)
			continue
		}
		s.Bases = append(s.Bases, &BaseSpecifier{Type: base.Type, Access: base.Access, Virtual: base.Virtual})
	}
	for _, member := range d.Members {
		b.walk(member, s)
	}
	// default member initializers
	b.addUses(d.Uses, s)
}

func (b *builder) declaresParam(s *Scope, name string) bool {
	for _, decl := range b.model.Declared(s, name) {
		if decl.Kind == TemplateParamDecl {
			return true
		}
	}
	return false
}

func (b *builder) walkBody(d *scopedump.Decl, parent *Scope, kind ScopeKind) *Scope {
	s := b.open(parent, kind, d)
	b.declareTemplateParams(s, d)
	for _, member := range d.Members {
		b.walk(member, s)
	}
	b.addUses(d.Uses, s)
	return s
}

func (b *builder) defineOutOfLine(d *scopedump.Decl, lexical *Scope) {
	owner := b.model.ScopeByID(d.Owner)
	if owner == nil || owner.Kind != ClassScope {
		b.skip("%s:%d: out-of-line %s has unknown owner %q", b.model.File, d.Loc.Line, d.Name, d.Owner)
		return
	}
	if len(b.model.Declared(owner, d.Name)) == 0 {
		b.declare(owner, d.Name, FunctionDecl, d.Static, d.Loc)
	}
	b.walkBody(d, owner, FunctionScope)
	glog.V(2).Infof("%s: %s defined out of line in %s", b.model.File, d.Name, lexical.QualifiedName())
}

func (b *builder) addUses(uses []*scopedump.Use, s *Scope) {
	for _, u := range uses {
		if u == nil || u.Name == "" {
			b.skip("%s: name use without identifier in %s", b.model.File, s.QualifiedName())
			continue
		}
		if s.Kind == NamespaceScope {
			b.skip("%s:%d: use of %s outside any function or class", b.model.File, u.Loc.Line, u.Name)
			continue
		}
		loc := u.Loc
		if loc.File == "" {
			loc.File = b.model.File
		}
		b.model.Uses = append(b.model.Uses, &NameUse{
			Name:      u.Name,
			Loc:       loc,
			Scope:     s,
			Form:      u.Form,
			Qualifier: u.Qualifier,
			ViaThis:   u.This,
			Typename:  u.Typename,
		})
	}
}

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

	"github.com/golang/glog"
	"naive.systems/depbase/cruleslib/cppscope"
	"naive.systems/depbase/misra/checker_integration/scopedump"
)

type ResolutionKind int

const (
	NotFound ResolutionKind = iota
	LocalHit
	MemberHit
	NamespaceHit
)

func (k ResolutionKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case LocalHit:
		return "local"
	case MemberHit:
		return "member"
	case NamespaceHit:
		return "namespace"
	}
	return "unknown"
}

type Resolution struct {
	Kind ResolutionKind
	Decl *cppscope.Declaration
}

// Lookup answers name queries against one translation unit. Dependent
// bases are never searched by Ordinary.
type Lookup struct {
	model                *cppscope.Model
	followInheritedBases bool
}

func NewLookup(model *cppscope.Model, followInheritedBases bool) *Lookup {
	return &Lookup{model: model, followInheritedBases: followInheritedBases}
}

// Ordinary resolves u the way a template definition is checked: local
// scopes first, then the members class declares itself, then every scope
// around class out to the global namespace.
func (l *Lookup) Ordinary(u *cppscope.NameUse, class *cppscope.Scope) Resolution {
	kind := LocalHit
	for s := u.Scope; s != nil; s = s.Parent {
		switch {
		case s == class:
			kind = MemberHit
		case kind == MemberHit:
			// enclosing classes count as enclosing scopes
			kind = NamespaceHit
		}
		for _, d := range l.model.Declared(s, u.Name) {
			if kind == LocalHit && !declaredBefore(d, u) {
				continue
			}
			return Resolution{Kind: kind, Decl: d}
		}
	}
	return Resolution{Kind: NotFound}
}

// declaredBefore reports whether local d is in scope at u. Class members
// are visible in the whole class, so only locals are ordered. A declaration
// without a line is taken to come first.
func declaredBefore(d *cppscope.Declaration, u *cppscope.NameUse) bool {
	if d.Loc.Line == 0 || u.Loc.Line == 0 {
		return true
	}
	if d.Loc.File != "" && u.Loc.File != "" && d.Loc.File != u.Loc.File {
		return true
	}
	if d.Loc.Line != u.Loc.Line {
		return d.Loc.Line < u.Loc.Line
	}
	return d.Loc.Column < u.Loc.Column
}

// Reachable reports whether a member called name is declared in the class
// base names, or, with inherited bases followed, in any class that class
// derives from. Bases that cannot be resolved to a class definition in the
// translation unit declare nothing.
func (l *Lookup) Reachable(name string, base *cppscope.BaseSpecifier, from *cppscope.Scope) bool {
	visited := map[*cppscope.Scope]bool{}
	return l.reachable(name, base.Type, from, visited)
}

func (l *Lookup) reachable(name string, t *scopedump.TypeRef, from *cppscope.Scope, visited map[*cppscope.Scope]bool) bool {
	target := l.ResolveBase(t, from)
	if target == nil || visited[target] {
		return false
	}
	visited[target] = true
	if l.declaresMember(target, name) {
		return true
	}
	if !l.followInheritedBases {
		return false
	}
	for _, b := range target.Bases {
		if l.reachable(name, b.Type, target, visited) {
			return true
		}
	}
	return false
}

// declaresMember leaves out the injected class name and template
// parameters; neither is a member that derived classes inherit.
func (l *Lookup) declaresMember(class *cppscope.Scope, name string) bool {
	for _, d := range l.model.Declared(class, name) {
		if d.Injected || d.Kind == cppscope.TemplateParamDecl {
			continue
		}
		return true
	}
	return false
}

// ResolveBase finds the class scope a base type names. from is the class
// whose base clause holds t. A base that is one of from's template
// parameters has no members to enumerate and resolves to nil.
func (l *Lookup) ResolveBase(t *scopedump.TypeRef, from *cppscope.Scope) *cppscope.Scope {
	if t == nil {
		return nil
	}
	if t.Ref != "" {
		if s := l.model.ScopeByID(t.Ref); s != nil && s.Kind == cppscope.ClassScope {
			return s
		}
		glog.V(1).Infof("%s: base %s refers to unknown class %q", l.model.File, t, t.Ref)
	}
	name := strings.TrimSpace(t.Name)
	start := from.Parent
	if strings.HasPrefix(name, "::") {
		start = l.model.Root
		name = strings.TrimPrefix(name, "::")
	}
	parts := strings.Split(name, "::")
	if len(parts) == 0 || parts[0] == "" || from.HasTemplateParam(parts[0]) {
		return nil
	}
	var cur *cppscope.Scope
	for s := start; s != nil && cur == nil; s = s.Parent {
		cur = l.scopeNamed(s, parts[0])
	}
	for _, part := range parts[1:] {
		if cur == nil {
			break
		}
		cur = l.scopeNamed(cur, part)
	}
	if cur == nil || cur.Kind != cppscope.ClassScope {
		return nil
	}
	return cur
}

func (l *Lookup) scopeNamed(s *cppscope.Scope, name string) *cppscope.Scope {
	for _, d := range l.model.Declared(s, name) {
		if d.Defines != nil && (d.Kind == cppscope.ClassDecl || d.Kind == cppscope.NamespaceDecl) {
			return d.Defines
		}
	}
	return nil
}

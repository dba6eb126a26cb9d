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
Package cppscope is a symbol table over the scopes of one C++ translation
unit.

Scopes form an ownership tree: a scope owns its declarations and its child
scopes, and Parent is a back reference. Name queries go through a
(scope, identifier) index that is filled once while the tree is built and
never changes afterwards.
*/
package cppscope

import (
	"strings"

	"naive.systems/depbase/misra/checker_integration/scopedump"
)

type ScopeKind int

const (
	NamespaceScope ScopeKind = iota
	ClassScope
	FunctionScope
	BlockScope
)

func (k ScopeKind) String() string {
	switch k {
	case NamespaceScope:
		return "namespace"
	case ClassScope:
		return "class"
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	}
	return "unknown"
}

type DeclKind int

const (
	FunctionDecl DeclKind = iota
	VariableDecl
	TypeDecl
	NamespaceDecl
	ClassDecl
	TemplateParamDecl
)

func (k DeclKind) String() string {
	switch k {
	case FunctionDecl:
		return "function"
	case VariableDecl:
		return "variable"
	case TypeDecl:
		return "type"
	case NamespaceDecl:
		return "namespace"
	case ClassDecl:
		return "class"
	case TemplateParamDecl:
		return "template parameter"
	}
	return "unknown"
}

type Declaration struct {
	Name  string
	Kind  DeclKind
	Scope *Scope
	// Member is set for declarations owned by a class scope.
	Member bool
	Static bool
	// Injected marks the name a class declares for itself.
	Injected bool
	Loc      scopedump.Loc
	// Defines is the scope a namespace, class or function declaration opens.
	Defines *Scope
}

// BaseSpecifier names a base type. It does not own the base class scope;
// the target may not be resolvable at all.
type BaseSpecifier struct {
	Type    *scopedump.TypeRef
	Access  string
	Virtual bool
}

func (b *BaseSpecifier) String() string {
	return b.Type.String()
}

type Scope struct {
	ID       string
	Kind     ScopeKind
	Name     string
	Loc      scopedump.Loc
	Parent   *Scope
	Children []*Scope
	Decls    []*Declaration

	// class scopes only
	Bases          []*BaseSpecifier
	IsTemplate     bool
	TemplateParams []string
}

func (s *Scope) IsClassTemplate() bool {
	return s != nil && s.Kind == ClassScope && s.IsTemplate
}

// EnclosingClass returns the innermost class scope containing s, s included.
func (s *Scope) EnclosingClass() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == ClassScope {
			return cur
		}
	}
	return nil
}

// EnclosingFunction returns the innermost function scope containing s, s
// included, without leaving the innermost class.
func (s *Scope) EnclosingFunction() *Scope {
	for cur := s; cur != nil && cur.Kind != ClassScope; cur = cur.Parent {
		if cur.Kind == FunctionScope {
			return cur
		}
	}
	return nil
}

func (s *Scope) QualifiedName() string {
	parts := []string{}
	for cur := s; cur != nil && cur.Parent != nil; cur = cur.Parent {
		if cur.Kind == BlockScope {
			continue
		}
		parts = append([]string{cur.Name}, parts...)
	}
	return strings.Join(parts, "::")
}

// HasTemplateParam reports whether name is one of the scope's own
// template parameters.
func (s *Scope) HasTemplateParam(name string) bool {
	for _, p := range s.TemplateParams {
		if p == name {
			return true
		}
	}
	return false
}

type NameUse struct {
	Name string
	Loc  scopedump.Loc
	// Scope is the innermost scope the use occurs in.
	Scope     *Scope
	Form      scopedump.UseForm
	Qualifier string
	ViaThis   bool
	Typename  bool
}

func (u *NameUse) Qualified() bool {
	return u.Qualifier != ""
}

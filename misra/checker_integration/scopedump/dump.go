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
Package scopedump reads the declaration trees written by the AST exporter.

One dump describes one translation unit. Declarations nest the way they
nest in the source: namespaces hold classes and functions, classes hold
members, functions hold parameters, locals and blocks. Every identifier
occurrence in a function body or an initializer is listed under "uses" of
the innermost declaration that contains it, with the qualification the
source spelled out.
*/
package scopedump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
	"gopkg.in/yaml.v2"
)

type DeclKind string

const (
	KindNamespace DeclKind = "namespace"
	KindClass     DeclKind = "class"
	KindFunction  DeclKind = "function"
	KindVariable  DeclKind = "variable"
	KindType      DeclKind = "type"
	KindBlock     DeclKind = "block"
)

type UseForm string

const (
	FormName    UseForm = "name"
	FormCall    UseForm = "call"
	FormAddress UseForm = "address"
	FormType    UseForm = "type"
)

type Loc struct {
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

type TranslationUnit struct {
	File  string  `json:"file" yaml:"file"`
	Decls []*Decl `json:"decls" yaml:"decls"`
}

type Decl struct {
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	Kind           DeclKind `json:"kind" yaml:"kind"`
	Name           string   `json:"name,omitempty" yaml:"name,omitempty"`
	Loc            Loc      `json:"loc" yaml:"loc"`
	Static         bool     `json:"static,omitempty" yaml:"static,omitempty"`
	Template       bool     `json:"template,omitempty" yaml:"template,omitempty"`
	TemplateParams []string `json:"template_params,omitempty" yaml:"template_params,omitempty"`
	Bases          []*Base  `json:"bases,omitempty" yaml:"bases,omitempty"`
	// Owner is the id of the class an out-of-line member function belongs to.
	Owner   string  `json:"owner,omitempty" yaml:"owner,omitempty"`
	Members []*Decl `json:"members,omitempty" yaml:"members,omitempty"`
	Uses    []*Use  `json:"uses,omitempty" yaml:"uses,omitempty"`
}

type Base struct {
	Type    *TypeRef `json:"type" yaml:"type"`
	Access  string   `json:"access,omitempty" yaml:"access,omitempty"`
	Virtual bool     `json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

// TypeRef is a structured type name. Args are template arguments; Ref is the
// id of the class declaration the name resolved to, if the exporter could
// resolve it.
type TypeRef struct {
	Name       string     `json:"name" yaml:"name"`
	Args       []*TypeRef `json:"args,omitempty" yaml:"args,omitempty"`
	Ref        string     `json:"ref,omitempty" yaml:"ref,omitempty"`
	Spelling   string     `json:"spelling,omitempty" yaml:"spelling,omitempty"`
	Unresolved bool       `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// String returns the written form, B<T> for {Name: B, Args: [T]}.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	if t.Spelling != "" {
		return t.Spelling
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, a.String())
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

type Use struct {
	Name      string  `json:"name" yaml:"name"`
	Loc       Loc     `json:"loc" yaml:"loc"`
	Form      UseForm `json:"form,omitempty" yaml:"form,omitempty"`
	Qualifier string  `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	This      bool    `json:"this,omitempty" yaml:"this,omitempty"`
	Typename  bool    `json:"typename,omitempty" yaml:"typename,omitempty"`
}

var dumpPatterns = []string{"**/*.scope.json", "**/*.scope.yaml", "**/*.scope.yml"}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

func Load(path string) (*TranslationUnit, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	return Decode(content, isYAML(path))
}

func Decode(content []byte, asYAML bool) (*TranslationUnit, error) {
	tu := &TranslationUnit{}
	if asYAML {
		if err := yaml.Unmarshal(content, tu); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal: %v", err)
		}
	} else {
		if err := json.Unmarshal(content, tu); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %v", err)
		}
	}
	return tu, nil
}

// Find lists the dump files under dir in a stable order.
func Find(dir string) ([]string, error) {
	fsys := os.DirFS(dir)
	seen := map[string]struct{}{}
	var dumps []string
	for _, pattern := range dumpPatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("doublestar.Glob(%s): %v", pattern, err)
		}
		for _, m := range matches {
			path := filepath.Join(dir, filepath.FromSlash(m))
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			dumps = append(dumps, path)
		}
	}
	sort.Strings(dumps)
	glog.Infof("found %d scope dumps under %s", len(dumps), dir)
	return dumps, nil
}

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

// Package proto holds the result records every rule reports and their
// protobuf encodings (binary, JSON and text).
package proto

const (
	VerdictNonCompliant = "NON_COMPLIANT"
	VerdictCompliant    = "COMPLIANT"
)

// Result is one finding at a source location.
type Result struct {
	Id           string
	Path         string
	LineNumber   int32
	Column       int32
	ErrorMessage string
	Ruleset      string
	RuleId       string
	Severity     int32
	// Name is the offending identifier.
	Name string
	// BaseClass is the spelling of the dependent base that declares Name.
	BaseClass string
	Verdict   string
}

type ResultsList struct {
	Results []*Result
}

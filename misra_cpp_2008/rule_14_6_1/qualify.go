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
	"naive.systems/depbase/misra/checker_integration/scopedump"
)

type Qualification int

const (
	Unqualified Qualification = iota
	// QualifiedByScope: ::m, B<T>::m, ns::f()
	QualifiedByScope
	// QualifiedByThis: this->g(), &B<T>::g, typename B<T>::type
	QualifiedByThis
)

func (q Qualification) String() string {
	switch q {
	case Unqualified:
		return "unqualified"
	case QualifiedByScope:
		return "qualified by scope"
	case QualifiedByThis:
		return "qualified by this"
	}
	return "unknown"
}

func Qualify(u *cppscope.NameUse) Qualification {
	switch {
	case u.ViaThis, u.Typename:
		return QualifiedByThis
	case u.Form == scopedump.FormAddress && u.Qualified():
		// pointer to member
		return QualifiedByThis
	case u.Qualified():
		return QualifiedByScope
	}
	return Unqualified
}

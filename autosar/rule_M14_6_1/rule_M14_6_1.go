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

package rule_M14_6_1

import (
	"github.com/golang/glog"
	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/cruleslib/i18n"
	"naive.systems/depbase/cruleslib/options"
	misra_cpp_2008_rule_14_6_1 "naive.systems/depbase/misra_cpp_2008/rule_14_6_1"
)

func Analyze(srcdir string, opts *options.CheckOptions) (*pb.ResultsList, error) {
	results, err := misra_cpp_2008_rule_14_6_1.Analyze(srcdir, opts)
	if err != nil {
		glog.Error(err)
		return nil, err
	}
	printer := i18n.GetPrinter(opts.EnvOption.Lang)
	for _, result := range results.Results {
		if result.Verdict != pb.VerdictNonCompliant {
			continue
		}
		result.ErrorMessage = printer.Sprintf(i18n.MsgAutosarDependentBase, result.Name, result.BaseClass)
	}
	return results, nil
}

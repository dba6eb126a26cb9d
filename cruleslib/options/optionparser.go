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

package options

import (
	"fmt"
	"runtime"
	"strconv"

	"naive.systems/depbase/cruleslib/basic"
	"naive.systems/depbase/cruleslib/i18n"
	"naive.systems/depbase/cruleslib/stats"
)

func ParseNumWorkers(numWorkersStr string) (int32, error) {
	num_workers, err := strconv.ParseInt(numWorkersStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number of workers: %v", err)
	}
	if num_workers < 0 {
		return 0, fmt.Errorf("invalid number of workers: %d", num_workers)
	}
	numWorkers := int32(num_workers)
	if numWorkers == 0 {
		numWorkers = int32(runtime.NumCPU())
	}
	return numWorkers, nil
}

// CheckCodeLines counts the C++ lines of sources and writes loc.nsa_metadata.
func CheckCodeLines(sources []string, sharedOptions *SharedOptions) (int, error) {
	printer := i18n.GetPrinter(sharedOptions.GetLang())
	cpplines, err := stats.CountLines(sources, stats.CppLanguages, sharedOptions.GetIgnoreDirPatterns())
	if err != nil {
		return 0, fmt.Errorf("failed to check cpp lines: %v", err)
	}
	if sharedOptions.GetCheckProgress() && sharedOptions.GetShowLineNumber() {
		basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgCppLines, cpplines))
	}
	stats.WriteLOC(sharedOptions.GetResultsDir(), cpplines)
	return cpplines, nil
}

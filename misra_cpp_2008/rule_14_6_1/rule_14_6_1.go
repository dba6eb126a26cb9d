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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/atomic"
	"naive.systems/depbase/cruleslib/cppscope"
	"naive.systems/depbase/cruleslib/i18n"
	"naive.systems/depbase/cruleslib/options"
	"naive.systems/depbase/misra/checker_integration/scopedump"
)

const ruleName = "misra_cpp_2008/rule_14_6_1"

func Analyze(srcdir string, opts *options.CheckOptions) (*pb.ResultsList, error) {
	dumpDir := opts.EnvOption.DumpDir
	if _, err := os.Stat(dumpDir); err != nil {
		return nil, fmt.Errorf("scope dumps unavailable: %v", err)
	}
	dumps, err := scopedump.Find(dumpDir)
	if err != nil {
		return nil, err
	}
	return Check(srcdir, dumps, opts), nil
}

// Check evaluates every dump on its own goroutine, at most NumWorkers at a
// time. A dump that cannot be read is logged and contributes nothing.
func Check(srcdir string, dumps []string, opts *options.CheckOptions) *pb.ResultsList {
	var (
		mu       sync.Mutex
		results  []*pb.Result
		verdicts []string
	)
	glog.Infof("%s: %d dumps, options %s", ruleName, len(dumps), opts.JsonOption.ToString())
	g := new(errgroup.Group)
	if opts.EnvOption.NumWorkers > 0 {
		g.SetLimit(int(opts.EnvOption.NumWorkers))
	}
	for _, dump := range dumps {
		dump := dump
		g.Go(func() error {
			tu, err := scopedump.Load(dump)
			if err != nil {
				glog.Errorf("%s: %v", dump, err)
				return nil
			}
			model := cppscope.Build(tu)
			evaluator := NewEvaluator(model, opts.JsonOption.GetUndecidableDependence(), opts.JsonOption.GetFollowInheritedBases())
			findings := evaluator.EvaluateAll()
			unitResults := toResults(srcdir, findings, opts)
			var unitVerdicts []string
			if opts.EnvOption.Debug {
				unitVerdicts = verdictLines(srcdir, findings)
			}
			mu.Lock()
			defer mu.Unlock()
			results = append(results, unitResults...)
			verdicts = append(verdicts, unitVerdicts...)
			return nil
		})
	}
	// workers only ever return nil
	_ = g.Wait()

	if opts.EnvOption.Debug && opts.RuleSpecificOption.RuleSpecificResultDir != "" {
		writeVerdictLog(opts.RuleSpecificOption.RuleSpecificResultDir, verdicts)
	}
	set := pb.NewResultsSetFromList(&pb.ResultsList{Results: results})
	pb.SortResults(&set.ResultsList)
	return &set.ResultsList
}

// reported decides which findings become results. Compliant ones and
// qualified uses are only kept with report-compliant.
func reported(f Finding, reportCompliant bool) bool {
	switch {
	case f.Verdict == NonCompliant:
		return true
	case !reportCompliant:
		return false
	case f.Verdict == Compliant:
		return true
	}
	return f.Reason == Qualified
}

func toResults(srcdir string, findings []Finding, opts *options.CheckOptions) []*pb.Result {
	printer := i18n.GetPrinter(opts.EnvOption.Lang)
	reportCompliant := opts.JsonOption.GetReportCompliant()
	results := []*pb.Result{}
	for _, f := range findings {
		if !reported(f, reportCompliant) {
			continue
		}
		path := sourcePath(srcdir, f.Use.Loc.File)
		r := &pb.Result{
			Path:       path,
			LineNumber: int32(f.Use.Loc.Line),
			Column:     int32(f.Use.Loc.Column),
			Name:       f.Use.Name,
		}
		if f.Verdict == NonCompliant {
			r.BaseClass = f.Base.String()
			r.Verdict = pb.VerdictNonCompliant
			r.ErrorMessage = printer.Sprintf(i18n.MsgDependentBase, r.Name, r.BaseClass)
		} else {
			r.Verdict = pb.VerdictCompliant
			r.ErrorMessage = printer.Sprintf(i18n.MsgCompliant, r.Name)
		}
		r.Id = resultID(r)
		results = append(results, r)
	}
	return results
}

func sourcePath(srcdir, file string) string {
	if file == "" || filepath.IsAbs(file) || srcdir == "" {
		return file
	}
	return filepath.Join(srcdir, file)
}

func resultID(r *pb.Result) string {
	key := strings.Join([]string{
		ruleName, r.Path, strconv.Itoa(int(r.LineNumber)), strconv.Itoa(int(r.Column)), r.Name, r.Verdict,
	}, "\x00")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

func verdictLines(srcdir string, findings []Finding) []string {
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		line := fmt.Sprintf("%s:%d:%d: %s: %s (%s)",
			sourcePath(srcdir, f.Use.Loc.File), f.Use.Loc.Line, f.Use.Loc.Column, f.Use.Name, f.Verdict, f.Reason)
		if f.Base != nil {
			line += " via " + f.Base.String()
		}
		lines = append(lines, line)
	}
	return lines
}

func writeVerdictLog(dir string, lines []string) {
	sort.Strings(lines)
	path := filepath.Join(dir, "verdicts.log")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := atomic.Write(path, []byte(content)); err != nil {
		glog.Errorf("failed to write verdict log: %v", err)
		return
	}
	glog.Infof("%d verdicts written to %s", len(lines), path)
}

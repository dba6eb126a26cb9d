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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/message"
	pb "naive.systems/depbase/analyzer/proto"
	autosar "naive.systems/depbase/autosar/analyzer"
	"naive.systems/depbase/cruleslib/basic"
	"naive.systems/depbase/cruleslib/filter"
	"naive.systems/depbase/cruleslib/i18n"
	"naive.systems/depbase/cruleslib/options"
	"naive.systems/depbase/cruleslib/runner"
	"naive.systems/depbase/cruleslib/stats"
	"naive.systems/depbase/misra/analyzer/analyzerinterface"
	"naive.systems/depbase/misra/checker_integration/checkrule"
	"naive.systems/depbase/misra/checker_integration/compilecommand"
	"naive.systems/depbase/misra/checker_integration/scopedump"
	misra_cpp_2008 "naive.systems/depbase/misra_cpp_2008/analyzer"
)

var ruleSets = []string{"misra_cpp_2008", "autosar"}

func main() {
	sharedOptions := options.NewSharedOptions(nil)
	flag.Parse()
	defer glog.Flush()

	// Do not call any logging functions of glog before this part.
	printer := i18n.GetPrinter(sharedOptions.GetLang())

	logDir := flag.Lookup("log_dir")
	if logDir.Value.String() == "" {
		err := flag.Set("log_dir", filepath.Join(sharedOptions.GetResultsDir(), "logs"))
		if err != nil {
			glog.Fatalf("failed to set default log_dir: %v", err)
		}
	}
	if err := os.MkdirAll(logDir.Value.String(), os.ModePerm); err != nil {
		glog.Fatalf("failed to create log dir: %v", err)
	}

	if !sharedOptions.GetDebugMode() {
		err := flag.Set("stderrthreshold", "FATAL")
		if err != nil {
			glog.Fatalf("failed to set default stderrthreshold: %v", err)
		}
	}

	fmt.Println("(c) 2023 Naive Systems Ltd.")

	numWorkers, err := options.ParseNumWorkers(sharedOptions.GetNumWorkers())
	if err != nil {
		glog.Fatalf("options.ParseNumWorkers: %v", err)
	}
	glog.Info("numWorkers: ", numWorkers)
	glog.Info("configDir: ", sharedOptions.GetConfigDir())

	err = analyzerinterface.CreateResultDir(sharedOptions.GetResultsDir())
	if err != nil {
		glog.Fatalf("failed to create result dir: %v", err)
	}
	if !filepath.IsAbs(sharedOptions.GetConfigDir()) {
		glog.Fatal("configDir must be an absolute path")
	}

	resultsPath := filepath.Join(sharedOptions.GetResultsDir(), "results")
	resultsWithSuffixPath := filepath.Join(sharedOptions.GetResultsDir(), "results.nsa_results")
	resultsJsonPath := filepath.Join(sharedOptions.GetResultsDir(), "nsa_results.json")

	if !filepath.IsAbs(sharedOptions.GetSrcDir()) {
		cwd, err := os.Getwd()
		if err != nil {
			glog.Fatalf("os.Getwd: %v", err)
		}
		srcDir, err := basic.ConvertRelativePathToAbsolute(cwd, sharedOptions.GetSrcDir())
		if err != nil {
			glog.Fatalf("invalid src_dir: %v", err)
		}
		sharedOptions.SetSrcDir(srcDir)
	}

	compileCommandsPath := options.GetCompileCommandsPath(sharedOptions.GetSrcDir())
	sources, err := readSources(compileCommandsPath, sharedOptions.GetIgnoreDirPatterns())
	if err != nil {
		glog.Fatalf("failed to read compilation database: %v", err)
	}

	cpplines, err := options.CheckCodeLines(sources, sharedOptions)
	if err != nil {
		glog.Fatalf("options.CheckCodeLines: %v", err)
	}
	if cpplines == 0 {
		glog.Warning("no C++ code found in the compilation database")
	}

	envOptions := options.NewEnvOptionsFromShared(sharedOptions, numWorkers)

	start := time.Now()
	if envOptions.ExporterBin != "" {
		if err := exportDumps(sources, compileCommandsPath, envOptions, printer); err != nil {
			glog.Fatalf("failed to export scope dumps: %v", err)
		}
	} else {
		glog.Infof("no exporter configured, using dumps under %s", envOptions.DumpDir)
	}

	checkRulesPath := filepath.Join(sharedOptions.GetConfigDir(), "check_rules")
	if _, err := os.Stat(checkRulesPath + ".yaml"); err == nil {
		checkRulesPath += ".yaml"
	}
	checkRules, err := analyzerinterface.ReadCheckRules(checkRulesPath)
	if err != nil {
		glog.Errorf("failed to read check rules from %s: %v", checkRulesPath, err)
	}

	allResults := &pb.ResultsList{}
	for _, ruleSet := range ruleSets {
		filteredCheckRules := analyzerinterface.FilterCheckRules(checkRules, ruleSet)
		results := checkRuleSet(sharedOptions.GetSrcDir(), ruleSet, filteredCheckRules, envOptions, printer)
		if results == nil {
			continue
		}
		results = filter.DeleteCResults(results)
		results = analyzerinterface.FormatResultPath(results, sharedOptions.GetSrcDir())
		results = filter.ProcessIgnoreDir(results, sharedOptions.GetIgnoreDirPatterns())
		results = filter.DeleteExceedResults(results, filteredCheckRules)
		allResults.Results = append(allResults.Results, results.Results...)
	}
	if len(allResults.Results) == 0 {
		glog.Warning("No issue found with the chosen rules.")
	}

	allResults = runner.RemoveDup(allResults)
	runner.SortResult(allResults)
	analyzerinterface.AddID(allResults)

	err = analyzerinterface.WriteResults(allResults, resultsPath)
	if err != nil {
		glog.Fatal(err)
	}
	err = analyzerinterface.WriteResults(allResults, resultsWithSuffixPath)
	if err != nil {
		glog.Fatal(err)
	}
	if sharedOptions.GetShowJsonResults() {
		err = analyzerinterface.WriteJsonResults(allResults, resultsJsonPath)
		if err != nil {
			glog.Fatal(err)
		}
	}

	// count results by severity and save stats to severity_stats.nsa_metadata
	stats.CountSeverityAndWrite(allResults, sharedOptions.GetResultsDir())
	if sharedOptions.GetCheckProgress() {
		stats.WriteProgress(sharedOptions.GetResultsDir(), stats.END, "100%", start)
	}

	glog.Infof("All results have been written to %s and %s (%d in total), exit. ", resultsPath, resultsWithSuffixPath, len(allResults.Results))
	if sharedOptions.GetShowResults() {
		analyzerinterface.PrintResults(os.Stdout, allResults, sharedOptions.GetShowResultsCount(), sharedOptions.GetSourceCharset())
	}
	fmt.Println(printer.Sprintf(i18n.MsgResultsCount, len(allResults.Results)))

	if sharedOptions.GetCheckProgress() {
		timeUsed := basic.FormatTimeDuration(time.Since(start))
		basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgTotalTime, timeUsed))
	}
}

// readSources lists the C++ translation units of the compilation database
// that are not under an ignored directory.
func readSources(compileCommandsPath string, ignoreDirPatterns []string) ([]string, error) {
	commands, err := compilecommand.ReadCompileCommandsFromFile(compileCommandsPath)
	if err != nil {
		return nil, err
	}
	valid := []compilecommand.CompileCommand{}
	for _, cc := range commands {
		if _, err := cc.Args(); err != nil {
			glog.Warningf("skipping %s: %v", cc.SourcePath(), err)
			continue
		}
		valid = append(valid, cc)
	}
	sources := []string{}
	for _, source := range compilecommand.SourceFiles(valid) {
		if !filter.IsCCFile(source) {
			continue
		}
		ignored, err := filter.MatchIgnoreDirPatterns(ignoreDirPatterns, source)
		if err != nil {
			glog.Errorf("MatchIgnoreDirPatterns: %v", err)
		}
		if ignored {
			continue
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func exportDumps(sources []string, compileCommandsPath string, envOptions *options.EnvOptions, printer *message.Printer) error {
	start := time.Now()
	if envOptions.CheckProgress {
		basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgStartExport))
		stats.WriteProgress(envOptions.ResultsDir, stats.EXPORT, "0%", start)
	}
	exporter, err := scopedump.NewExporter(envOptions.ExporterBin, envOptions.ExporterArgs, envOptions.DumpDir, compileCommandsPath, envOptions.TimeoutNormal, int(envOptions.NumWorkers))
	if err != nil {
		return err
	}
	dumps, err := exporter.Export(sources)
	if err != nil {
		return err
	}
	basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgExported, len(dumps), len(sources)))
	if envOptions.CheckProgress {
		stats.WriteProgress(envOptions.ResultsDir, stats.EXPORT, "100%", start)
	}
	return nil
}

type runFuncType = func([]checkrule.CheckRule, string, *options.EnvOptions) (*pb.ResultsList, []error)

func selectRun(rulePrefix string) (runFuncType, error) {
	switch rulePrefix {
	case "autosar":
		return autosar.Run, nil
	case "misra_cpp_2008":
		return misra_cpp_2008.Run, nil
	default:
		return nil, fmt.Errorf("No such rule runner found: %s", rulePrefix)
	}
}

func checkRuleSet(
	srcdir string,
	rulePrefix string,
	checkRules []checkrule.CheckRule,
	envOptions *options.EnvOptions,
	printer *message.Printer) *pb.ResultsList {
	if len(checkRules) == 0 {
		glog.Infof("nothing to check for %s rules", rulePrefix)
		return nil
	}
	start := time.Now()
	if envOptions.CheckProgress {
		basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgStartAnalyze))
		stats.WriteProgress(envOptions.ResultsDir, stats.AC, "0%", start)
	}
	run, err := selectRun(rulePrefix)
	if err != nil {
		glog.Fatal(err)
	}
	results, errors := run(checkRules, srcdir, envOptions)
	for _, err := range errors {
		if err != nil {
			glog.Errorf("errors occur while analyzing: %v", err)
		}
	}
	if envOptions.CheckProgress {
		timeUsed := basic.FormatTimeDuration(time.Since(start))
		basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgAnalyzeDone, timeUsed))
	}
	return results
}

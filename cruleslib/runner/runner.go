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

package runner

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/golang/glog"
	"golang.org/x/text/message"
	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/cruleslib/basic"
	"naive.systems/depbase/cruleslib/i18n"
	"naive.systems/depbase/cruleslib/options"
	"naive.systems/depbase/cruleslib/severity"
	"naive.systems/depbase/cruleslib/stats"
)

// The task for Runner to run in parallels
type AnalyzerTask struct {
	Id      int
	Srcdir  string
	Opts    *options.CheckOptions
	Analyze func(srcdir string, opts *options.CheckOptions) (*pb.ResultsList, error)
	Rule    string
}

type analyzerResult struct {
	id             int
	rule           string
	srcdir         string
	resultsList    *pb.ResultsList
	customSeverity string
	err            error
}

// A goroutine workgroup to run analyzers in parallel.
type ParaTaskRunner struct {
	showProgress   bool
	workerWg       sync.WaitGroup
	collectorWg    sync.WaitGroup
	jobs_chan      chan AnalyzerTask
	results_chan   chan analyzerResult
	sigs           chan os.Signal
	sigs_exiting   chan bool
	results        *pb.ResultsList
	errors         []error
	processPrinter *basic.CheckingProcessPrinter
	printer        *message.Printer
}

// modify the analyzer result.
// eg. add rule name prefix to the report message.
func modifyResult(result *analyzerResult) {
	edition, ruleName, found := strings.Cut(result.rule, "/")
	if !found {
		glog.Warningf("malformed rule name %s", result.rule)
		return
	}
	ruleStr := strings.Join(strings.Split(ruleName, "_")[1:], ".")
	for _, r := range result.resultsList.Results {
		// misra_cpp_2008/rule_X_X_X -> [-][misra-cpp2008-X.X.X]
		// autosar/rule_MX_X_X -> [MX_X_X][autosar-MX.X.X]
		switch edition {
		case "misra_cpp_2008":
			r.ErrorMessage = "[-][misra-cpp2008-" + ruleStr + "]: " + r.ErrorMessage
		case "autosar":
			code := strings.TrimPrefix(ruleName, "rule_")
			r.ErrorMessage = fmt.Sprintf("[%s][%s-%s]: %s", code, edition, ruleStr, r.ErrorMessage)
		default:
			r.ErrorMessage = fmt.Sprintf("[%s][%s-%s]: %s", strings.ToUpper(ruleName), edition, ruleName, r.ErrorMessage)
		}
		r.Ruleset = edition
		r.RuleId = ruleName
	}
}

func (pt *ParaTaskRunner) worker(jobs <-chan AnalyzerTask, results chan<- analyzerResult) {
	defer pt.workerWg.Done()
	for j := range jobs {
		if pt.showProgress {
			pt.processPrinter.StartAnalyzeTask(j.Rule, pt.printer)
		}
		func() {
			defer func() {
				// recover from possible panic
				if r := recover(); r != nil {
					glog.Error("Recovered in analyze: ", r, string(debug.Stack()))
					results <- analyzerResult{id: j.Id, err: errors.New("panic in analyze rule"), resultsList: nil, rule: j.Rule, srcdir: j.Srcdir}
					if pt.showProgress {
						pt.processPrinter.FinishAnalyzeTask(j.Rule, pt.printer)
					}
				}
			}()
			resultList, err := j.Analyze(j.Srcdir, j.Opts)
			customSeverity := ""
			if j.Opts.JsonOption.Severity != nil {
				customSeverity = *j.Opts.JsonOption.Severity
			}
			results <- analyzerResult{id: j.Id, err: err, resultsList: resultList, rule: j.Rule, srcdir: j.Srcdir, customSeverity: customSeverity}
			if pt.showProgress {
				pt.processPrinter.FinishAnalyzeTask(j.Rule, pt.printer)
				stats.WriteProgress(j.Opts.EnvOption.ResultsDir, stats.AC, pt.processPrinter.GetPercentString(), pt.processPrinter.GetStartedAt())
			}
		}()
	}
}

// Create a new task runner and results collectors.
func NewParaTaskRunner(numWorkers int32, taskNums int, showProgress bool, lang string) *ParaTaskRunner {
	printer := i18n.GetPrinter(lang)
	if numWorkers == 0 {
		numWorkers = int32(runtime.NumCPU())
		if showProgress {
			basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgUseCPU, numWorkers))
		}
	}
	paraRunner := &ParaTaskRunner{
		showProgress:   showProgress,
		jobs_chan:      make(chan AnalyzerTask, numWorkers),
		results_chan:   make(chan analyzerResult, numWorkers),
		sigs:           make(chan os.Signal, 1),
		sigs_exiting:   make(chan bool, 1),
		results:        &pb.ResultsList{},
		errors:         make([]error, taskNums),
		processPrinter: basic.NewCheckingProcessPrinter(taskNums),
		printer:        printer,
	}
	for w := 0; w < int(numWorkers); w++ {
		paraRunner.workerWg.Add(1)
		go paraRunner.worker(paraRunner.jobs_chan, paraRunner.results_chan)
	}

	// if a signal is received, notify the loop to stop sending new workers
	signal.Notify(paraRunner.sigs, syscall.SIGINT)
	// collect results
	paraRunner.collectorWg.Add(1)
	go func() {
		defer paraRunner.collectorWg.Done()
		defer signal.Stop(paraRunner.sigs)
		for job_result := range paraRunner.results_chan {
			select {
			case <-paraRunner.sigs:
				// if recived a SIGINT, stop collector and analyze rule loop
				if paraRunner.showProgress {
					basic.PrintfWithTimeStamp(printer.Sprintf(i18n.MsgInterrupted))
				}
				// notifie the 'for i, rule := range rules' loop to exit
				paraRunner.sigs_exiting <- true
				return
			default:
			}
			paraRunner.collect(job_result)
		}
	}()
	return paraRunner
}

func (pt *ParaTaskRunner) collect(job_result analyzerResult) {
	if job_result.err == nil && job_result.resultsList != nil {
		modifyResult(&job_result)
		resultsWithSeverity := severity.AddSeverity(job_result.resultsList, job_result.rule, job_result.customSeverity)
		pt.results.Results = append(pt.results.Results, resultsWithSeverity.Results...)
	} else if job_result.err != nil {
		glog.Errorf("Analyze %v got error %v", job_result.rule, job_result.err)
	}
	if job_result.id >= 0 && job_result.id < len(pt.errors) {
		pt.errors[job_result.id] = job_result.err
	}
}

// check for the SIGINT existing signal
// If the existing signal is received, it will return results and errors.
// results will never be nil if the existing signal is received.
// If the existing signal is not received, it will return nil for results and nil for errors.
func (pt *ParaTaskRunner) CheckSignalExiting() (results *pb.ResultsList, errors []error) {
	select {
	// if recived a SIGINT, stop analyze rule loop
	case <-pt.sigs_exiting:
		// close the jobs_chan to let worker end
		close(pt.jobs_chan)
		pt.collectorWg.Wait()
		// running workers may still report, drain them so they can exit
		go func() {
			pt.workerWg.Wait()
			close(pt.results_chan)
		}()
		for range pt.results_chan {
		}
		return pt.results, pt.errors
	default:
		return nil, nil
	}
}

// Add a task to the task runner and start running the task.
// The rule name will be added to the report message.
func (pt *ParaTaskRunner) AddTask(task AnalyzerTask) {
	pt.jobs_chan <- task
}

// Wait until all the tasks workers and collectors are finished and all results are collected.
// Return the results and errors.
func (pt *ParaTaskRunner) CollectResultsAndErrors() (results *pb.ResultsList, errors []error) {
	go func() {
		pt.workerWg.Wait()
		close(pt.results_chan)
	}()
	close(pt.jobs_chan)
	pt.collectorWg.Wait()
	return pt.results, pt.errors
}

func SortResult(results *pb.ResultsList) *pb.ResultsList {
	pb.SortResults(results)
	return results
}

func RemoveDup(results *pb.ResultsList) *pb.ResultsList {
	return &pb.NewResultsSetFromList(results).ResultsList
}

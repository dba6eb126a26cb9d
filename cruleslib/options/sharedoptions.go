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
	"flag"

	"naive.systems/depbase/misra/analyzer/analyzerinterface"
)

type SharedOptions struct {
	CheckProgress     *bool
	ConfigDir         *string
	DebugMode         *bool
	DumpDir           *string
	ExporterArgs      *string
	ExporterBin       *string
	IgnoreDirPatterns analyzerinterface.ArrayFlags
	Lang              *string
	NumWorkers        *string
	ResultsDir        *string
	ShowJsonResults   *bool
	ShowLineNumber    *bool
	ShowResults       *bool
	ShowResultsCount  *bool
	SourceCharset     *string
	SrcDir            *string
	TimeoutNormal     *int
}

func (s SharedOptions) GetCheckProgress() bool {
	return *s.CheckProgress
}

func (s SharedOptions) GetConfigDir() string {
	return *s.ConfigDir
}

func (s SharedOptions) GetDebugMode() bool {
	return *s.DebugMode
}

func (s SharedOptions) GetDumpDir() string {
	return *s.DumpDir
}

func (s SharedOptions) GetExporterArgs() string {
	return *s.ExporterArgs
}

func (s SharedOptions) GetExporterBin() string {
	return *s.ExporterBin
}

func (s SharedOptions) GetIgnoreDirPatterns() analyzerinterface.ArrayFlags {
	return s.IgnoreDirPatterns
}

func (s SharedOptions) GetLang() string {
	return *s.Lang
}

func (s SharedOptions) GetNumWorkers() string {
	return *s.NumWorkers
}

func (s SharedOptions) GetResultsDir() string {
	return *s.ResultsDir
}

func (s SharedOptions) GetShowJsonResults() bool {
	return *s.ShowJsonResults
}

func (s SharedOptions) GetShowLineNumber() bool {
	return *s.ShowLineNumber
}

func (s SharedOptions) GetShowResults() bool {
	return *s.ShowResults
}

func (s SharedOptions) GetShowResultsCount() bool {
	return *s.ShowResultsCount
}

func (s SharedOptions) GetSourceCharset() string {
	return *s.SourceCharset
}

func (s SharedOptions) GetSrcDir() string {
	return *s.SrcDir
}

func (s SharedOptions) GetTimeoutNormal() int {
	return *s.TimeoutNormal
}

func (s SharedOptions) SetSrcDir(srcdir string) {
	*s.SrcDir = srcdir
}

type DefaultOptionValues struct {
	CheckProgress     bool
	ConfigDir         string
	DebugMode         bool
	DumpDir           string
	ExporterArgs      string
	ExporterBin       string
	IgnoreDirPatterns analyzerinterface.ArrayFlags
	Lang              string
	NumWorkers        string
	ResultsDir        string
	ShowJsonResults   bool
	ShowLineNumber    bool
	ShowResults       bool
	ShowResultsCount  bool
	SourceCharset     string
	SrcDir            string
	TimeoutNormal     int
}

var Defaults = DefaultOptionValues{
	CheckProgress:     true,
	ConfigDir:         "/config",
	DebugMode:         false,
	DumpDir:           "",
	ExporterArgs:      "",
	ExporterBin:       "",
	IgnoreDirPatterns: []string{"/src/output/**"},
	Lang:              "zh",
	NumWorkers:        "0",
	ResultsDir:        "/output",
	ShowJsonResults:   true,
	ShowLineNumber:    true,
	ShowResults:       false,
	ShowResultsCount:  false,
	SourceCharset:     "utf8",
	SrcDir:            "/src",
	TimeoutNormal:     90,
}

// NewSharedOptions registers the flags on fs, flag.CommandLine if fs is nil.
func NewSharedOptions(fs *flag.FlagSet) *SharedOptions {
	if fs == nil {
		fs = flag.CommandLine
	}
	option := &SharedOptions{}

	option.CheckProgress = fs.Bool("check_progress", Defaults.CheckProgress, "Show the checking progress")
	option.ConfigDir = fs.String("config_dir", Defaults.ConfigDir, "Absolute path to a directory containing all configuration files")
	option.DebugMode = fs.Bool("debug_mode", Defaults.DebugMode, "Whether to display error information and keep per rule verdict logs")
	option.DumpDir = fs.String("dump_dir", Defaults.DumpDir, "Directory of scope dumps, <results_dir>/scope when empty")
	option.ExporterArgs = fs.String("exporter_args", Defaults.ExporterArgs, "Extra arguments passed to the scope exporter, split with shell rules")
	option.ExporterBin = fs.String("exporter_bin", Defaults.ExporterBin, "Scope exporter binary location. Dumps already in dump_dir are used when empty")
	option.Lang = fs.String("lang", Defaults.Lang, "Language of messages, en or zh")
	option.NumWorkers = fs.String("num_workers", Defaults.NumWorkers, "Number of parallel workers, 0 means the number of CPUs")
	option.ResultsDir = fs.String("results_dir", Defaults.ResultsDir, "Absolute path to the directory of results files")
	option.ShowJsonResults = fs.Bool("json_results", Defaults.ShowJsonResults, "Whether to output results in protojson format")
	option.ShowLineNumber = fs.Bool("show_line_number", Defaults.ShowLineNumber, "Show line count infomation")
	option.ShowResults = fs.Bool("show_results", Defaults.ShowResults, "Show results after the analysis")
	option.ShowResultsCount = fs.Bool("show_results_count", Defaults.ShowResultsCount, "Show results count group by rules after the analysis")
	option.SourceCharset = fs.String("source_charset", Defaults.SourceCharset, "Charset of source files, used when printing code with show_results")
	option.SrcDir = fs.String("src_dir", Defaults.SrcDir, "Absolute path to the directory of code files")
	option.TimeoutNormal = fs.Int("timeout_normal", Defaults.TimeoutNormal, "Minutes of timeout for exporting one translation unit. Default value is 90")

	fs.Var(&option.IgnoreDirPatterns, "ignore_dir", "Shell file name pattern to a directory that will be ignored")

	return option
}

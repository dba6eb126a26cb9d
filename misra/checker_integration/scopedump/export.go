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

package scopedump

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/google/shlex"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"naive.systems/depbase/cpumem"
	"naive.systems/depbase/cruleslib/basic"
	"naive.systems/depbase/misra/utils"
)

var cppSuffixes = []string{".cpp", ".cc", ".cxx", ".c++", ".C", ".cp", ".CPP"}

func isCppSource(path string) bool {
	ext := filepath.Ext(path)
	for _, s := range cppSuffixes {
		if ext == s {
			return true
		}
	}
	return false
}

// Exporter drives the external AST exporter, one process per translation
// unit, running at most Workers processes at a time.
type Exporter struct {
	Bin                 string
	ExtraArgs           []string
	DumpDir             string
	CompileCommandsPath string
	TimeoutMinutes      int
	Workers             int
}

// NewExporter resolves bin and splits extraArgs the way a shell would.
func NewExporter(bin, extraArgs, dumpDir, compileCommandsPath string, timeoutMinutes, workers int) (*Exporter, error) {
	if bin == "" {
		return nil, fmt.Errorf("no exporter binary configured")
	}
	resolved, err := utils.ResolveBinaryPath(bin)
	if err != nil {
		return nil, err
	}
	args, err := shlex.Split(extraArgs)
	if err != nil {
		return nil, fmt.Errorf("shlex.Split(%q): %v", extraArgs, err)
	}
	if workers < 1 {
		workers = 1
	}
	return &Exporter{
		Bin:                 resolved,
		ExtraArgs:           args,
		DumpDir:             dumpDir,
		CompileCommandsPath: compileCommandsPath,
		TimeoutMinutes:      timeoutMinutes,
		Workers:             workers,
	}, nil
}

// DumpPath names the dump of source by a name-based uuid so reruns
// overwrite instead of accumulate.
func (e *Exporter) DumpPath(source string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+source))
	return filepath.Join(e.DumpDir, id.String()+dumpSuffix)
}

const dumpSuffix = ".scope.json"

func skipNonCpp(sourceFiles []string) []string {
	filtered := []string{}
	for _, sourceFile := range sourceFiles {
		if !isCppSource(sourceFile) {
			glog.Warningf("non C++ file skipped for exporter: %s", sourceFile)
			continue
		}
		filtered = append(filtered, sourceFile)
	}
	return filtered
}

func (e *Exporter) args(source string) []string {
	args := []string{fmt.Sprintf("--output=%s", e.DumpPath(source))}
	if e.CompileCommandsPath != "" {
		args = append(args, fmt.Sprintf("--p=%s", filepath.Dir(e.CompileCommandsPath)))
	}
	args = append(args, e.ExtraArgs...)
	return append(args, source)
}

func (e *Exporter) exportOne(source string) error {
	cmd := exec.Command(e.Bin, e.args(source)...)
	glog.Info("executing: ", cmd.String())
	out, err := basic.CombinedOutput(cmd, filepath.Base(source), e.TimeoutMinutes)
	if err != nil {
		glog.Errorf("in %s, executing: %s, reported:\n%s\n%v\n", e.Bin, cmd.String(), string(out), err)
		return err
	}
	if _, err := os.Stat(e.DumpPath(source)); err != nil {
		glog.Errorf("exporter produced no dump for %s: %v", source, err)
		return err
	}
	return nil
}

// Export writes a dump for each C++ source and returns the dumps that were
// produced, in source order. A translation unit the exporter fails on is
// logged and left out. Dumps in DumpDir that no source produced are removed.
func (e *Exporter) Export(sourceFiles []string) ([]string, error) {
	if err := os.MkdirAll(e.DumpDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s): %v", e.DumpDir, err)
	}
	sources := skipNonCpp(sourceFiles)
	ok := make([]bool, len(sources))
	budget := cpumem.New(e.Workers, 0)
	var g errgroup.Group
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			if err := budget.Acquire(1, 0, filepath.Base(source)); err != nil {
				return err
			}
			defer budget.Release(1, 0)
			ok[i] = e.exportOne(source) == nil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	dumps := []string{}
	failed := []string{}
	for i, source := range sources {
		if ok[i] {
			dumps = append(dumps, e.DumpPath(source))
		} else {
			failed = append(failed, source)
		}
	}
	if len(failed) != 0 {
		glog.Warningf("exporter failed on %d files: %s", len(failed), strings.Join(failed, ", "))
	}
	if err := utils.CleanStaleDumps(e.DumpDir, dumpSuffix, dumps); err != nil {
		glog.Errorf("failed to clean stale dumps in %s: %v", e.DumpDir, err)
	}
	return dumps, nil
}

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

package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/hhatto/gocloc"
	pb "naive.systems/depbase/analyzer/proto"
	"naive.systems/depbase/atomic"
	"naive.systems/depbase/cruleslib/filter"
	"naive.systems/depbase/cruleslib/severity"
)

// analysis stages
const (
	EXPORT int = iota // Scope dump export
	AC                // Analysis check
	END
)

var CppLanguages = []string{"C++", "C++ Header", "C Header"}

type Progress struct {
	StageID   int       `json:"stage_id"`
	DoneRatio string    `json:"done_ratio"`
	StartedAt time.Time `json:"started_at"`
}

type SeverityCount struct {
	Highest int `json:"highest"`
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	Lowest  int `json:"lowest"`
	Unknown int `json:"unknown"`
}

// CountLines sums the code lines of paths (files or directories) written in
// one of langs, leaving out files matched by ignoreDirPatterns.
func CountLines(paths []string, langs []string, ignoreDirPatterns []string) (int, error) {
	clocOpts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range langs {
		if _, exists := languages.Langs[lang]; exists {
			clocOpts.IncludeLangs[lang] = struct{}{}
		}
	}
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(paths)
	if err != nil {
		return 0, fmt.Errorf("gocloc: %v", err)
	}
	sum := 0
	for _, file := range result.Files {
		matched, err := filter.MatchIgnoreDirPatterns(ignoreDirPatterns, file.Name)
		if err != nil {
			glog.Error(err)
			continue
		}
		if matched {
			continue
		}
		sum += int(file.Code)
	}
	return sum, nil
}

func WriteLOC(resultDir string, linesCounter int) {
	path := filepath.Join(resultDir, "loc.nsa_metadata")
	err := atomic.Write(path, []byte(strconv.Itoa(linesCounter)))
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", path, err)
	}
}

func WriteProgress(resultDir string, stageID int, doneRatio string, startedAt time.Time) {
	// skip writing it if resultDir does not exist
	_, err := os.Stat(resultDir)
	if os.IsNotExist(err) {
		glog.Warningf("result dir %s does not exist", resultDir)
		return
	}
	path := filepath.Join(resultDir, "progress.nsa_metadata")
	progress, err := json.Marshal(Progress{StageID: stageID, DoneRatio: doneRatio, StartedAt: startedAt})
	if err != nil {
		glog.Errorf("failed to marshal json stageID %d and doneRatio %s: %v", stageID, doneRatio, err)
		return
	}
	err = atomic.Write(path, progress)
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", path, err)
	}
}

func AccumulateBySeverity(cnt *SeverityCount, resultSeverity int32, resultID string) {
	switch severity.Severity(resultSeverity) {
	case severity.Unknown:
		cnt.Unknown++
	case severity.Highest:
		cnt.Highest++
	case severity.High:
		cnt.High++
	case severity.Medium:
		cnt.Medium++
	case severity.Low:
		cnt.Low++
	case severity.Lowest:
		cnt.Lowest++
	default:
		glog.Warningf("undefined severity of result %s", resultID)
	}
}

func GetSeverityCountBytes(resultsList *pb.ResultsList) ([]byte, error) {
	var cnt SeverityCount
	for _, result := range resultsList.Results {
		AccumulateBySeverity(&cnt, result.Severity, result.Id)
	}
	statsBytes, err := json.Marshal(cnt)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %v", err)
	}
	return statsBytes, nil
}

func CountSeverityAndWrite(resultsList *pb.ResultsList, resultDir string) {
	statsBytes, err := GetSeverityCountBytes(resultsList)
	if err != nil {
		glog.Errorf("failed to get severity count bytes: %v", err)
		return
	}
	statsFile := filepath.Join(resultDir, "severity_stats.nsa_metadata")
	err = atomic.Write(statsFile, statsBytes)
	if err != nil {
		glog.Errorf("failed to write to file %s: %v", statsFile, err)
	}
}

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

/*
This package should not import any packages of other analyzers to
avoid recursive import.
*/
package basic

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/text/message"
)

type combinedOutput struct {
	Output []byte
	Error  error
}

func PrintfWithTimeStamp(format string, arg ...any) {
	prefix := fmt.Sprintf("%v ", time.Now().Format("2006-01-02 15:04:05"))
	message := fmt.Sprintf(prefix+format, arg...)
	fmt.Println(message)
	glog.Info(message)
}

func GetPercentString(v1, v2 int) string {
	if v2 == 0 {
		return "100%"
	}
	percent := (v1 * 100) / v2
	return fmt.Sprintf("%d%%", percent)
}

func FormatTimeDuration(d time.Duration) string {
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	if ms == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%d.%ss", s, strings.TrimRight(fmt.Sprintf("%03d", ms), "0"))
}

// print checking process serialized, goroutine safe
type CheckingProcessPrinter struct {
	mutex                sync.Mutex
	startedAt            time.Time
	timeElapsed          map[string]time.Time
	startAnalyzeTaskNum  int
	finishAnalyzeTaskNum int
	totalTaskNum         int
}

func NewCheckingProcessPrinter(totalTaskNum int) *CheckingProcessPrinter {
	return &CheckingProcessPrinter{
		totalTaskNum: totalTaskNum,
		timeElapsed:  make(map[string]time.Time),
		startedAt:    time.Now(),
	}
}

// Called before start checking a rule
func (c *CheckingProcessPrinter) StartAnalyzeTask(ruleName string, printer *message.Printer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.startAnalyzeTaskNum++
	PrintfWithTimeStamp(printer.Sprintf("Start analyzing for %s (%v/%v)", ruleName, c.startAnalyzeTaskNum, c.totalTaskNum))
	c.timeElapsed[ruleName] = time.Now()
}

// Called after finish checking a rule
func (c *CheckingProcessPrinter) FinishAnalyzeTask(ruleName string, printer *message.Printer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	elapsed := time.Since(c.timeElapsed[ruleName])
	c.finishAnalyzeTaskNum++
	percent := GetPercentString(c.finishAnalyzeTaskNum, c.totalTaskNum)
	timeUsed := FormatTimeDuration(elapsed)
	PrintfWithTimeStamp(printer.Sprintf("Analysis of %s completed (%s, %v/%v) [%s]", ruleName, percent, c.finishAnalyzeTaskNum, c.totalTaskNum, timeUsed))
}

func (c *CheckingProcessPrinter) GetPercentString() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return GetPercentString(c.finishAnalyzeTaskNum, c.totalTaskNum)
}

func (c *CheckingProcessPrinter) GetStartedAt() time.Time {
	return c.startedAt
}

// CombinedOutput runs c and kills it once timeoutMinute has passed.
// A non-positive timeout waits for the command without limit.
func CombinedOutput(c *exec.Cmd, taskName string, timeoutMinute int) ([]byte, error) {
	if timeoutMinute <= 0 {
		return c.CombinedOutput()
	}
	result := make(chan combinedOutput, 1)
	go func() {
		output, err := c.CombinedOutput()
		result <- combinedOutput{Output: output, Error: err}
	}()
	select {
	case <-time.After(time.Duration(timeoutMinute) * time.Minute):
		if c.Process != nil {
			if err := c.Process.Kill(); err != nil {
				return nil, fmt.Errorf("failed to kill %v: %v", c.Process.Pid, err)
			}
		}
		return nil, fmt.Errorf("%v timed out: over %v minutes", taskName, timeoutMinute)
	case result := <-result:
		return result.Output, result.Error
	}
}

func ConvertRelativePathToAbsolute(dir, path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	fullpath := filepath.Join(dir, path)
	_, err := os.Stat(fullpath) // Sanity Check: This file should exist.
	if errors.Is(err, os.ErrNotExist) {
		return path, fmt.Errorf("convertRelativePathToAbsolute: %v", err)
	}
	return fullpath, nil
}

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

package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// CleanStaleDumps removes the files directly under dir whose name carries
// suffix and is not listed in keep. Other entries are left alone.
func CleanStaleDumps(dir, suffix string, keep []string) error {
	keepMap := make(map[string]bool)
	for _, path := range keep {
		keepMap[filepath.Base(path)] = true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	removed := 0
	for _, d := range entries {
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) || keepMap[d.Name()] {
			continue
		}
		glog.Infof("remove stale dump %s", filepath.Join(dir, d.Name()))
		if err := os.Remove(filepath.Join(dir, d.Name())); err != nil {
			return err
		}
		removed++
	}
	glog.Infof("cleaned %d stale dumps in %s", removed, dir)
	return nil
}

func ResolveBinaryPath(binPath string) (string, error) {
	if filepath.IsAbs(binPath) {
		if _, err := os.Stat(binPath); err != nil {
			return binPath, fmt.Errorf("when resolving %s, os.Stat failed: %v", binPath, err)
		}
		return binPath, nil
	}
	// exec.LookPath will silently allow relative path, so we manually check it.
	if strings.Contains(binPath, string(filepath.Separator)) {
		absBinPath, err := filepath.Abs(binPath)
		if err != nil {
			return binPath, fmt.Errorf("when resolving %s, failed to convert to abs path: %v", binPath, err)
		}
		if _, err := os.Stat(absBinPath); err != nil {
			return absBinPath, fmt.Errorf("when resolving %s, os.Stat failed: %v", binPath, err)
		}
		return absBinPath, nil
	}
	if _, err := exec.LookPath(binPath); err != nil {
		return binPath, fmt.Errorf("when resolving %s, not found in $PATH: %v", binPath, err)
	}
	return binPath, nil
}

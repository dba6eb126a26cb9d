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

package compilecommand

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/google/shlex"
)

type CompileCommand struct {
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	File      string   `json:"file"`
	Directory string   `json:"directory"`
	Output    string   `json:"output,omitempty"`
}

// Args returns the argument vector, splitting Command when the database
// only records the shell form.
func (cc CompileCommand) Args() ([]string, error) {
	if len(cc.Arguments) != 0 {
		return cc.Arguments, nil
	}
	args, err := shlex.Split(cc.Command)
	if err != nil {
		return nil, fmt.Errorf("shlex.Split(%q): %v", cc.Command, err)
	}
	return args, nil
}

// SourcePath is the absolute path of the compiled file.
func (cc CompileCommand) SourcePath() string {
	if filepath.IsAbs(cc.File) {
		return filepath.Clean(cc.File)
	}
	return filepath.Join(cc.Directory, cc.File)
}

func ReadCompileCommandsFromFile(compileCommandsPath string) ([]CompileCommand, error) {
	ccFile, err := os.Open(compileCommandsPath)
	if err != nil {
		glog.Error(err)
		return nil, err
	}
	defer ccFile.Close()

	byteContent, err := io.ReadAll(ccFile)
	if err != nil {
		return nil, err
	}

	commands := []CompileCommand{}
	err = json.Unmarshal(byteContent, &commands)
	if err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s): %v", compileCommandsPath, err)
	}
	return commands, nil
}

// SourceFiles lists every compiled file once, in database order.
func SourceFiles(commands []CompileCommand) []string {
	seen := make(map[string]bool)
	files := []string{}
	for _, cc := range commands {
		path := cc.SourcePath()
		if seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}
	return files
}

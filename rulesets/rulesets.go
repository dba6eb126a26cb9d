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

package rulesets

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var GUIDELINES = map[string]string{
	"MISRA C++:2008": "misra-cpp2008",
	"AUTOSAR":        "autosar",
}

// to fix the sequence in GUIDELINES map
var GUIDELINE_NAMES = []string{"MISRA C++:2008", "AUTOSAR"}

var (
	misraRe   = regexp.MustCompile(`\[misra-cpp2008-(\d+\.\d+\.\d+)\]`)
	autosarRe = regexp.MustCompile(`\[autosar-([AM]\d+\.\d+\.\d+)\]`)
)

// GetRuleFullName reads the rule tag off a result message, for example
// 'MISRA C++:2008 Rule 14.6.1' or 'AUTOSAR Rule M14-6-1'. It returns an
// empty string for untagged messages.
func GetRuleFullName(errorMessage string) string {
	if m := misraRe.FindStringSubmatch(errorMessage); m != nil {
		return fmt.Sprintf("%s Rule %s", GUIDELINE_NAMES[0], m[1])
	}
	if m := autosarRe.FindStringSubmatch(errorMessage); m != nil {
		return "AUTOSAR Rule " + strings.ReplaceAll(m[1], ".", "-")
	}
	return ""
}

func convertCharset(b []byte, charset string) string {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		glog.Warning("ianaindex.MIME.Encoding err, the charset is considered as UTF-8 by default")
		return string(b)
	}
	if e == nil {
		glog.Warning("charset not found, the charset is considered as UTF-8 by default")
		return string(b)
	}
	reader := transform.NewReader(bytes.NewReader(b), e.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		glog.Warning("io.ReadAll err, the charset is considered as UTF-8 by default")
		return string(b)
	}
	return string(decoded)
}

// GetCode returns the lines around lineNumber, the line itself marked
// with '>'.
func GetCode(path string, lineNumber int32, charset string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lower := lineNumber - 2
	upper := lineNumber + 2
	var lineCount int32 = 0
	var output strings.Builder
	for scanner.Scan() {
		lineCount++
		if lineCount < lower {
			continue
		} else if lineCount > upper {
			break
		}
		var text string
		if charset == "" || strings.EqualFold(charset, "utf8") || strings.EqualFold(charset, "utf-8") {
			text = scanner.Text()
		} else {
			text = convertCharset(scanner.Bytes(), charset)
		}
		if lineCount == lineNumber {
			fmt.Fprintf(&output, "> %d| %s\n", lineCount, text)
		} else {
			fmt.Fprintf(&output, "%d| %s\n", lineCount, text)
		}
	}
	if err = scanner.Err(); err != nil {
		return "", err
	}
	return output.String(), nil
}

// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text

import (
	"regexp"
	"strings"
)

// IndentWidth is the number of spaces a tab expands to
const IndentWidth = 4

// space is Unicode whitespace: the ASCII \s class plus vertical tab, the
// information separators, NEL, every Zs space and the line/paragraph separators
const space = `[\s\x0b\x1c-\x1f\x{85}\p{Zs}\x{2028}\x{2029}]`

var (
	whitespaceRun  = regexp.MustCompile(space + `+`)
	blankParagraph = regexp.MustCompile(`\n` + space + `*\n`)
)

// 📏 SplitLines splits on \n, \r\n and \r line endings
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	// a trailing terminator does not start another line
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// 🧹 StripBlankLines trims every line and drops the ones left empty
func StripBlankLines(s string) string {
	lines := SplitLines(s)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}

// ↹ ExpandTabs replaces each tab with IndentWidth spaces
func ExpandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", IndentWidth))
}

// BreakAfterBraces inserts a newline after every closing brace
func BreakAfterBraces(s string) string {
	return strings.ReplaceAll(s, "}", "}\n")
}

// RemoveDoubleNewlines deletes every "\n\n" in a single left-to-right pass.
// Runs of three newlines leave one behind.
func RemoveDoubleNewlines(s string) string {
	return strings.ReplaceAll(s, "\n\n", "")
}

// CollapseBlankParagraphs turns a newline, an optional whitespace-only line and
// a newline into a single newline
func CollapseBlankParagraphs(s string) string {
	return blankParagraph.ReplaceAllString(s, "\n")
}

// 🗜️ CollapseWhitespace squeezes every Unicode whitespace run (including
// no-break spaces and U+2028) to one space and drops newlines
func CollapseWhitespace(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.ReplaceAll(s, "\n", "")
}

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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	summaryIndent = 4  // spaces to indent summary rows
	labelWidth    = 10 // width of the outcome label column
)

// 🎯 FormatSummary renders a run summary as colored console rows
func FormatSummary(s Summary) string {
	rows := []struct {
		label string
		count int
		paint func(format string, a ...interface{}) string
	}{
		{"cleaned", s.Cleaned, color.GreenString},
		{"dry-run", s.DryRun, color.CyanString},
		{"skipped", s.Skipped, color.HiBlackString},
		{"failed", s.Failed, color.RedString},
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s%s %d\n",
			strings.Repeat(" ", summaryIndent),
			r.paint("%-*s", labelWidth, r.label),
			r.count,
		)
	}
	fmt.Fprintf(&b, "%s%-*s %s -> %s\n",
		strings.Repeat(" ", summaryIndent),
		labelWidth, "bytes",
		FormatBytes(s.BytesBefore),
		FormatBytes(s.BytesAfter),
	)
	return b.String()
}

// FormatBytes prints n with a binary unit suffix
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

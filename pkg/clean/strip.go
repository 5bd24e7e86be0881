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

package clean

import "regexp"

// ✂️ CommentStripper removes comments from script and stylesheet text.
// Implementations may trade speed for literal awareness; pipelines only rely
// on the method contract.
type CommentStripper interface {
	// StripLineComments removes "//" comments through the end of each line
	StripLineComments(content string) string
	// StripBlockComments removes "/* ... */" comments, including multi-line ones
	StripBlockComments(content string) string
}

var (
	lineComment  = regexp.MustCompile(`(?m)//.*$`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// PatternStripper strips comments with regular expressions. It is not aware of
// string, template or regex literals, so "http://x" inside a string loses its tail.
type PatternStripper struct{}

func (PatternStripper) StripLineComments(content string) string {
	return lineComment.ReplaceAllString(content, "")
}

// StripBlockComments removes each comment up to the nearest closing marker
func (PatternStripper) StripBlockComments(content string) string {
	return blockComment.ReplaceAllString(content, "")
}

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

// 🏷️ Kind classifies a source file
type Kind int

const (
	KindUnhandled Kind = iota
	KindMarkup
	KindStylesheet
	KindScript
)

// String returns a lower-case name for logs and metrics labels
func (k Kind) String() string {
	switch k {
	case KindMarkup:
		return "markup"
	case KindStylesheet:
		return "stylesheet"
	case KindScript:
		return "script"
	default:
		return "unhandled"
	}
}

// Label is the name used in "<label> cleaned: <path>" log lines
func (k Kind) Label() string {
	switch k {
	case KindMarkup:
		return "HTML"
	case KindStylesheet:
		return "CSS"
	case KindScript:
		return "JavaScript"
	default:
		return "Unknown"
	}
}

// ShortLabel is the name used in "Dry run: <label> changes for <path>" log lines
func (k Kind) ShortLabel() string {
	if k == KindScript {
		return "JS"
	}
	return k.Label()
}

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
	"context"

	"github.com/rs/zerolog"
)

// 🔧 Pass is a single named rewrite of a file's full content
type Pass struct {
	Name  string              // Name used in debug logs and results
	Apply func(string) string // Rewrite to run
}

// 📄 Result contains the outcome of running a sequence of passes
type Result struct {
	Original string   // Content before any pass ran
	Modified string   // Content after the last pass
	Changed  []string // Names of the passes that altered the content, in order
}

// 🔍 WasModified reports whether any pass altered the content
func (r *Result) WasModified() bool {
	return r.Original != r.Modified
}

// 🔄 Run applies the passes in order, feeding each the previous output
func Run(ctx context.Context, content string, passes ...Pass) *Result {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		Original: content,
		Modified: content,
	}

	current := content
	for _, p := range passes {
		if p.Apply == nil {
			continue
		}

		next := p.Apply(current)
		if next != current {
			result.Changed = append(result.Changed, p.Name)
			logger.Trace().
				Str("pass", p.Name).
				Int("before", len(current)).
				Int("after", len(next)).
				Msg("pass changed content")
		}
		current = next
	}

	result.Modified = current
	return result
}

// 🎯 When returns the pass if cond holds and an inert pass otherwise
func When(cond bool, p Pass) Pass {
	if !cond {
		return Pass{Name: p.Name}
	}
	return p
}

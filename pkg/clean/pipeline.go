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

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/walteh/webclean/pkg/text"
)

// 🔌 Pipeline cleans the full content of one file kind
type Pipeline interface {
	// Kind reports which file kind the pipeline handles
	Kind() Kind
	// Clean returns the cleaned content with the watermark prepended
	Clean(ctx context.Context, content string, opts Options) (string, error)
}

// 🗺️ Registry maps file extensions to pipelines
type Registry struct {
	byExt map[string]Pipeline
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Pipeline)}
}

// DefaultRegistry handles .html, .css and .js with the pattern comment stripper
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".html", NewMarkupPipeline())
	r.Register(".css", NewStylesheetPipeline(PatternStripper{}))
	r.Register(".js", NewScriptPipeline(PatternStripper{}))
	return r
}

// 📝 Register binds an extension (with its leading dot) to a pipeline,
// replacing any earlier binding. Matching is case sensitive.
func (r *Registry) Register(ext string, p Pipeline) {
	r.byExt[ext] = p
}

// 🎯 Lookup returns the pipeline for path, or false when the file is not handled
func (r *Registry) Lookup(path string) (Pipeline, bool) {
	p, ok := r.byExt[filepath.Ext(path)]
	return p, ok
}

// KindOf classifies path, returning KindUnhandled for unknown extensions
func (r *Registry) KindOf(path string) Kind {
	if p, ok := r.Lookup(path); ok {
		return p.Kind()
	}
	return KindUnhandled
}

// Extensions lists the registered extensions in sorted order
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// formatPass is the last pass of every pipeline. compact differs per pipeline,
// readable always breaks after closing braces.
func formatPass(f Format, compact func(string) string) text.Pass {
	if f == FormatReadable {
		return text.Pass{Name: "readable", Apply: text.BreakAfterBraces}
	}
	return text.Pass{Name: "compact", Apply: compact}
}

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
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// body strips the watermark, failing the test when it is not the prefix
func body(t *testing.T, out string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(out, Watermark), "output should start with the watermark")
	return strings.TrimPrefix(out, Watermark)
}

func TestRegistryLookup(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		path     string
		wantKind Kind
		wantOK   bool
	}{
		{path: "site/index.html", wantKind: KindMarkup, wantOK: true},
		{path: "site/app.js", wantKind: KindScript, wantOK: true},
		{path: "site/style.css", wantKind: KindStylesheet, wantOK: true},
		{path: "notes.txt", wantKind: KindUnhandled},
		{path: "INDEX.HTML", wantKind: KindUnhandled},
		{path: "page.htm", wantKind: KindUnhandled},
		{path: "Makefile", wantKind: KindUnhandled},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, ok := reg.Lookup(tt.path)
			assert.Equal(t, tt.wantOK, ok, "lookup result should match")
			if ok {
				assert.Equal(t, tt.wantKind, p.Kind(), "pipeline kind should match")
			}
			assert.Equal(t, tt.wantKind, reg.KindOf(tt.path), "kind should match")
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := DefaultRegistry()
	assert.Equal(t, []string{".css", ".html", ".js"}, reg.Extensions())

	reg.Register(".mjs", NewScriptPipeline(nil))
	p, ok := reg.Lookup("module.mjs")
	require.True(t, ok, "registered extension should resolve")
	assert.Equal(t, KindScript, p.Kind())
}

func TestWatermarkIsFirst(t *testing.T) {
	ctx := testContext(t)
	inputs := map[Kind]string{
		KindMarkup:     "<div><!-- c --><p>Hello</p></div>",
		KindStylesheet: "/* c */\na { color: red; }\n\n\nb {}",
		KindScript:     "// c\nfunction f() {\n\treturn 1;\n}\n",
	}
	pipelines := []Pipeline{NewMarkupPipeline(), NewStylesheetPipeline(nil), NewScriptPipeline(nil)}

	for _, p := range pipelines {
		for _, format := range []Format{FormatCompact, FormatReadable} {
			t.Run(p.Kind().String()+"_"+string(format), func(t *testing.T) {
				opts := DefaultOptions()
				opts.Format = format

				out, err := p.Clean(ctx, inputs[p.Kind()], opts)
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(out, Watermark), "watermark should be the literal prefix")
			})
		}
	}
}

func TestPrepend(t *testing.T) {
	assert.Equal(t, Watermark+"body", Prepend("body"))
	assert.Equal(t, Watermark, Prepend(""))
}

func TestKindLabels(t *testing.T) {
	tests := []struct {
		kind      Kind
		wantName  string
		wantLabel string
		wantShort string
	}{
		{kind: KindMarkup, wantName: "markup", wantLabel: "HTML", wantShort: "HTML"},
		{kind: KindStylesheet, wantName: "stylesheet", wantLabel: "CSS", wantShort: "CSS"},
		{kind: KindScript, wantName: "script", wantLabel: "JavaScript", wantShort: "JS"},
		{kind: KindUnhandled, wantName: "unhandled", wantLabel: "Unknown", wantShort: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.kind.String())
			assert.Equal(t, tt.wantLabel, tt.kind.Label())
			assert.Equal(t, tt.wantShort, tt.kind.ShortLabel())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "compact", want: FormatCompact},
		{in: "Readable", want: FormatReadable},
		{in: "1", want: FormatCompact},
		{in: "2", want: FormatReadable},
		{in: " compact ", want: FormatCompact},
		{in: "3", wantErr: true},
		{in: "", wantErr: true},
		{in: "pretty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidChoice), "error should be an invalid choice")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())

	opts.Minifier = "uglify"
	err := opts.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidChoice))

	opts = DefaultOptions()
	opts.Format = "dense"
	require.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.Minifier = ""
	require.NoError(t, opts.Validate(), "empty minifier means collapse")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, FormatCompact, opts.Format)
	assert.True(t, opts.RemoveComments)
	assert.True(t, opts.RemoveEmptyLines)
	assert.True(t, opts.NormalizeIndentation)
	assert.False(t, opts.MinifyScript)
	assert.False(t, opts.OptimizeStyle)
	assert.False(t, opts.DryRun)
	assert.Equal(t, MinifierCollapse, opts.Minifier)
}

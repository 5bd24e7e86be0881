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

	"github.com/rs/zerolog"

	"github.com/walteh/webclean/pkg/text"
)

// 📜 ScriptPipeline cleans JavaScript source
type ScriptPipeline struct {
	stripper CommentStripper
}

// NewScriptPipeline creates a script pipeline using stripper for comment removal
func NewScriptPipeline(stripper CommentStripper) *ScriptPipeline {
	if stripper == nil {
		stripper = PatternStripper{}
	}
	return &ScriptPipeline{stripper: stripper}
}

func (p *ScriptPipeline) Kind() Kind {
	return KindScript
}

// 🧹 Clean strips comments, always drops blank lines, optionally minifies, then
// applies the format policy
func (p *ScriptPipeline) Clean(ctx context.Context, content string, opts Options) (string, error) {
	logger := zerolog.Ctx(ctx)
	minifier := minifierFor(opts.Minifier)

	minify := func(s string) string {
		out, err := minifier.Minify(s)
		if err != nil {
			// the tokenizer rejects what it cannot lex; the regex collapse never fails
			logger.Warn().Err(err).Msg("tokenizer minification failed, collapsing whitespace instead")
			return text.CollapseWhitespace(s)
		}
		return out
	}

	result := text.Run(ctx, content,
		text.When(opts.RemoveComments, text.Pass{Name: "strip-line-comments", Apply: p.stripper.StripLineComments}),
		text.When(opts.RemoveComments, text.Pass{Name: "strip-block-comments", Apply: p.stripper.StripBlockComments}),
		// not gated by RemoveEmptyLines
		text.Pass{Name: "strip-blank-lines", Apply: text.StripBlankLines},
		text.When(opts.MinifyScript, text.Pass{Name: "minify", Apply: minify}),
		formatPass(opts.Format, text.CollapseBlankParagraphs),
	)

	return Prepend(result.Modified), nil
}

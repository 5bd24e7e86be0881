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

// 🎨 StylesheetPipeline cleans CSS source
type StylesheetPipeline struct {
	stripper CommentStripper
}

// NewStylesheetPipeline creates a stylesheet pipeline using stripper for comment removal
func NewStylesheetPipeline(stripper CommentStripper) *StylesheetPipeline {
	if stripper == nil {
		stripper = PatternStripper{}
	}
	return &StylesheetPipeline{stripper: stripper}
}

func (p *StylesheetPipeline) Kind() Kind {
	return KindStylesheet
}

// 🧹 Clean strips block comments, always drops blank lines, then applies the
// format policy. Stylesheets have no line comments.
func (p *StylesheetPipeline) Clean(ctx context.Context, content string, opts Options) (string, error) {
	if opts.OptimizeStyle {
		// TODO(webclean): prune selectors that no markup in the walk references
		zerolog.Ctx(ctx).Debug().Msg("style optimization requested but not implemented, content left unchanged")
	}

	result := text.Run(ctx, content,
		text.When(opts.RemoveComments, text.Pass{Name: "strip-block-comments", Apply: p.stripper.StripBlockComments}),
		// not gated by RemoveEmptyLines
		text.Pass{Name: "strip-blank-lines", Apply: text.StripBlankLines},
		formatPass(opts.Format, text.RemoveDoubleNewlines),
	)

	return Prepend(result.Modified), nil
}

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

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/yosssi/gohtml"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/walteh/webclean/pkg/text"
)

// documentMarkers mark input that should be parsed as a whole document rather
// than a body fragment
var documentMarkers = []string{"<html", "<!doctype", "<head", "<body"}

// 🌐 MarkupPipeline cleans HTML by round-tripping it through a forgiving parser
type MarkupPipeline struct{}

// NewMarkupPipeline creates a markup pipeline
func NewMarkupPipeline() *MarkupPipeline {
	return &MarkupPipeline{}
}

func (p *MarkupPipeline) Kind() Kind {
	return KindMarkup
}

// 🧹 Clean parses, optionally drops comments, pretty prints, then applies the
// line passes and the format policy. Malformed markup never fails; the
// parser's error recovery decides what comes out.
func (p *MarkupPipeline) Clean(ctx context.Context, content string, opts Options) (string, error) {
	logger := zerolog.Ctx(ctx)

	doc, err := parseMarkup(content)
	if err != nil {
		return "", errors.Errorf("parsing markup: %w", err)
	}

	if opts.RemoveComments {
		removed := 0
		for _, n := range doc.Nodes {
			removed += removeCommentNodes(n)
		}
		logger.Debug().Int("comments", removed).Msg("removed markup comments")
	}

	rendered, err := doc.Html()
	if err != nil {
		return "", errors.Errorf("rendering markup: %w", err)
	}

	result := text.Run(ctx, rendered,
		text.Pass{Name: "prettify", Apply: gohtml.Format},
		text.When(opts.RemoveEmptyLines, text.Pass{Name: "strip-blank-lines", Apply: text.StripBlankLines}),
		text.When(opts.NormalizeIndentation, text.Pass{Name: "expand-tabs", Apply: text.ExpandTabs}),
		formatPass(opts.Format, text.RemoveDoubleNewlines),
	)

	return Prepend(result.Modified), nil
}

// parseMarkup returns a document whose first node's children are the parsed
// content. Fragments get a detached <body> as their root so no
// html/head/body wrapper is invented.
func parseMarkup(content string) (*goquery.Document, error) {
	lower := strings.ToLower(content)
	for _, marker := range documentMarkers {
		if strings.Contains(lower, marker) {
			return goquery.NewDocumentFromReader(strings.NewReader(content))
		}
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// removeCommentNodes deletes every comment below n and returns how many it removed
func removeCommentNodes(n *html.Node) int {
	removed := 0
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
			removed++
		} else {
			removed += removeCommentNodes(c)
		}
		c = next
	}
	return removed
}

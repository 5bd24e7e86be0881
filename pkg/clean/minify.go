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
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/pkg/text"
)

const scriptMediaType = "application/javascript"

// 🗜️ Minifier reduces script text to a single line
type Minifier interface {
	Minify(content string) (string, error)
}

// CollapseMinifier squeezes whitespace runs into one space and removes newlines.
// Tokens are never rewritten.
type CollapseMinifier struct{}

func (CollapseMinifier) Minify(content string) (string, error) {
	return text.CollapseWhitespace(content), nil
}

// TokenMinifier runs the tdewolff JavaScript minifier, which tokenizes its
// input and therefore leaves string and regex literals intact
type TokenMinifier struct {
	m *minify.M
}

// NewTokenMinifier creates a TokenMinifier for JavaScript
func NewTokenMinifier() *TokenMinifier {
	m := minify.New()
	m.AddFunc(scriptMediaType, js.Minify)
	return &TokenMinifier{m: m}
}

func (t *TokenMinifier) Minify(content string) (string, error) {
	out, err := t.m.String(scriptMediaType, content)
	if err != nil {
		return "", errors.Errorf("minifying script: %w", err)
	}
	return out, nil
}

// minifierFor maps a validated MinifierKind to its implementation
func minifierFor(kind MinifierKind) Minifier {
	if kind == MinifierTokenizer {
		return NewTokenMinifier()
	}
	return CollapseMinifier{}
}

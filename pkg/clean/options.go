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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidChoice is returned for an unrecognized format, minifier or other
// enumerated configuration value
var ErrInvalidChoice = errors.Base("invalid configuration choice")

// 📐 Format controls the final blank-line policy of every pipeline
type Format string

const (
	FormatCompact  Format = "compact"  // drop blank-line separators
	FormatReadable Format = "readable" // break after closing braces
)

// ParseFormat accepts a format name, or the 1/2 menu answers of the interactive prompt
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact", "1":
		return FormatCompact, nil
	case "readable", "2":
		return FormatReadable, nil
	default:
		return "", errors.Errorf("%w: format %q (want compact or readable)", ErrInvalidChoice, s)
	}
}

// 🗜️ MinifierKind selects how MinifyScript minifies
type MinifierKind string

const (
	MinifierCollapse  MinifierKind = "collapse"  // squeeze whitespace with a regex
	MinifierTokenizer MinifierKind = "tokenizer" // tokenizer-aware minification
)

// ParseMinifier accepts a minifier name; empty means collapse
func ParseMinifier(s string) (MinifierKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "collapse":
		return MinifierCollapse, nil
	case "tokenizer":
		return MinifierTokenizer, nil
	default:
		return "", errors.Errorf("%w: minifier %q (want collapse or tokenizer)", ErrInvalidChoice, s)
	}
}

// ⚙️ Options is the cleaning configuration for a whole run. It is passed by value
// and never modified once the run starts.
type Options struct {
	Format               Format
	RemoveComments       bool
	RemoveEmptyLines     bool
	NormalizeIndentation bool // tabs become IndentWidth spaces
	MinifyScript         bool // script pipeline only
	OptimizeStyle        bool // stylesheet pipeline only, currently a no-op
	DryRun               bool // everything happens except the final write
	Minifier             MinifierKind
}

// DefaultOptions returns the settings used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Format:               FormatCompact,
		RemoveComments:       true,
		RemoveEmptyLines:     true,
		NormalizeIndentation: true,
		Minifier:             MinifierCollapse,
	}
}

// 🔍 Validate checks the enumerated fields hold canonical values
func (o Options) Validate() error {
	if o.Format != FormatCompact && o.Format != FormatReadable {
		return errors.Errorf("%w: format %q (want compact or readable)", ErrInvalidChoice, o.Format)
	}
	if o.Minifier != "" && o.Minifier != MinifierCollapse && o.Minifier != MinifierTokenizer {
		return errors.Errorf("%w: minifier %q (want collapse or tokenizer)", ErrInvalidChoice, o.Minifier)
	}
	return nil
}

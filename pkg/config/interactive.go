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

package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultScriptsDir is the folder under the working directory that the
// "current folder" action cleans
const DefaultScriptsDir = "scripts"

// 💬 Prompter asks the interactive questions
type Prompter interface {
	Select(label string, options []string) (string, error)
	Confirm(label string) (bool, error)
	Text(label string) (string, error)
}

// 💬 TerminalPrompter prompts on the terminal with pterm
type TerminalPrompter struct{}

var _ Prompter = TerminalPrompter{}

func (TerminalPrompter) Select(label string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithOptions(options).Show(label)
}

func (TerminalPrompter) Confirm(label string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(label)
}

func (TerminalPrompter) Text(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(label)
}

var (
	actionOptions = []string{
		"1) Clean files in current folder",
		"2) Clean custom folder",
	}
	formatOptions = []string{
		"1) Compact (no empty lines)",
		"2) Readable (with empty lines between functions)",
	}
)

// menuChoice returns the number in front of a "N) ..." menu answer
func menuChoice(answer string) string {
	answer = strings.TrimSpace(answer)
	if n, _, ok := strings.Cut(answer, ")"); ok {
		return strings.TrimSpace(n)
	}
	return answer
}

// 🗣️ Interactive builds a config from the question sequence: action,
// directory, format, then the six yes/no switches. cwd anchors the
// "current folder" action. Values that are not prompted for come from base,
// or from Default() when base is nil.
func Interactive(ctx context.Context, p Prompter, cwd string, base *Config) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	if base == nil {
		base = Default()
	}
	c := *base
	cfg := &c

	action, err := p.Select("Choose an action", actionOptions)
	if err != nil {
		return nil, errors.Errorf("prompting for action: %w", err)
	}
	switch menuChoice(action) {
	case "1":
		cfg.Directory = filepath.Join(cwd, DefaultScriptsDir)
	case "2":
		dir, err := p.Text("Enter the full path of the directory")
		if err != nil {
			return nil, errors.Errorf("prompting for directory: %w", err)
		}
		cfg.Directory = strings.TrimSpace(dir)
	default:
		return nil, errors.Errorf("%w: action %q", ErrInvalidChoice, action)
	}

	format, err := p.Select("Choose cleaning format", formatOptions)
	if err != nil {
		return nil, errors.Errorf("prompting for format: %w", err)
	}
	cfg.Format = menuChoice(format)

	toggles := []struct {
		label string
		dst   *bool
	}{
		{"Remove comments?", &cfg.RemoveComments},
		{"Remove empty lines?", &cfg.RemoveEmptyLines},
		{"Normalize indentation (convert tabs to spaces)?", &cfg.NormalizeIndentation},
		{"Minify JavaScript?", &cfg.JSMinify},
		{"Optimize CSS (remove unused selectors)?", &cfg.OptimizeCSS},
		{"Dry run mode (no actual changes made)?", &cfg.DryRun},
	}
	for _, t := range toggles {
		answer, err := p.Confirm(t.label)
		if err != nil {
			return nil, errors.Errorf("prompting %q: %w", t.label, err)
		}
		*t.dst = answer
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Str("config", cfg.String()).Msg("interactive configuration complete")
	return cfg, nil
}

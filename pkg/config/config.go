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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/webclean/pkg/backup"
	"github.com/walteh/webclean/pkg/clean"
	"github.com/walteh/webclean/pkg/log"
)

// ErrInvalidChoice is returned for an unrecognized format, action, minifier or
// backup policy
var ErrInvalidChoice = clean.ErrInvalidChoice

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, starting from Default()
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration of a run
type Config struct {
	Directory            string   `json:"directory" yaml:"directory" toml:"directory"`
	Format               string   `json:"format" yaml:"format" toml:"format"`
	RemoveComments       bool     `json:"remove_comments" yaml:"remove_comments" toml:"remove_comments"`
	RemoveEmptyLines     bool     `json:"remove_empty_lines" yaml:"remove_empty_lines" toml:"remove_empty_lines"`
	NormalizeIndentation bool     `json:"normalize_indentation" yaml:"normalize_indentation" toml:"normalize_indentation"`
	JSMinify             bool     `json:"js_minify" yaml:"js_minify" toml:"js_minify"`
	OptimizeCSS          bool     `json:"optimize_css" yaml:"optimize_css" toml:"optimize_css"`
	DryRun               bool     `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Minifier             string   `json:"minifier" yaml:"minifier" toml:"minifier"`
	BackupDirectory      string   `json:"backup_directory" yaml:"backup_directory" toml:"backup_directory"`
	BackupPolicy         string   `json:"backup_policy" yaml:"backup_policy" toml:"backup_policy"`
	LogFile              string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	Ignore               []string `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty"`
	Workers              int      `json:"workers" yaml:"workers" toml:"workers"`
}

// 🏭 Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Directory:            ".",
		Format:               string(clean.FormatCompact),
		RemoveComments:       true,
		RemoveEmptyLines:     true,
		NormalizeIndentation: true,
		Minifier:             string(clean.MinifierCollapse),
		BackupDirectory:      backup.DefaultRoot,
		BackupPolicy:         string(backup.PolicyOverwrite),
		LogFile:              log.DefaultEventLogPath,
		Workers:              1,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate normalizes paths and enumerated values, rejecting unknown choices
func (cfg *Config) Validate() error {
	if cfg.Directory == "" {
		return errors.Errorf("directory is required")
	}
	cfg.Directory = filepath.Clean(cfg.Directory)

	format, err := clean.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	cfg.Format = string(format)

	minifier, err := clean.ParseMinifier(cfg.Minifier)
	if err != nil {
		return err
	}
	cfg.Minifier = string(minifier)

	policy, err := backup.ParsePolicy(cfg.BackupPolicy)
	if err != nil {
		return err
	}
	cfg.BackupPolicy = string(policy)

	if cfg.BackupDirectory == "" {
		cfg.BackupDirectory = backup.DefaultRoot
	}
	cfg.BackupDirectory = filepath.Clean(cfg.BackupDirectory)

	if cfg.LogFile == "" {
		cfg.LogFile = log.DefaultEventLogPath
	}
	cfg.LogFile = filepath.Clean(cfg.LogFile)

	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	return nil
}

// CleanOptions converts the config into the options every pipeline receives.
// Call Validate first.
func (cfg *Config) CleanOptions() clean.Options {
	return clean.Options{
		Format:               clean.Format(cfg.Format),
		RemoveComments:       cfg.RemoveComments,
		RemoveEmptyLines:     cfg.RemoveEmptyLines,
		NormalizeIndentation: cfg.NormalizeIndentation,
		MinifyScript:         cfg.JSMinify,
		OptimizeStyle:        cfg.OptimizeCSS,
		DryRun:               cfg.DryRun,
		Minifier:             clean.MinifierKind(cfg.Minifier),
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	mode := cfg.Format
	if cfg.DryRun {
		mode += ", dry run"
	}
	return fmt.Sprintf("%s (%s) -> backup %s, log %s", cfg.Directory, mode, cfg.BackupDirectory, cfg.LogFile)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	// an empty document keeps every default
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return cfg, nil
}

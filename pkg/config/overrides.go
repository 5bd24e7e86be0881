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
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix prefixes every environment override, as in WEBCLEAN_DRY_RUN
const EnvPrefix = "WEBCLEAN"

// 🚩 flag describes one overridable key
type flag struct {
	key   string // config key, also the env suffix
	name  string // command line flag
	usage string
}

var overridable = []flag{
	{"directory", "directory", "directory to clean"},
	{"format", "format", "output format: compact or readable"},
	{"remove_comments", "remove-comments", "strip comments"},
	{"remove_empty_lines", "remove-empty-lines", "drop blank lines"},
	{"normalize_indentation", "normalize-indentation", "convert tabs to four spaces"},
	{"js_minify", "js-minify", "minify JavaScript"},
	{"optimize_css", "optimize-css", "optimize CSS (reserved, no effect yet)"},
	{"dry_run", "dry-run", "log what would change without writing files"},
	{"minifier", "minifier", "JavaScript minifier: collapse or tokenizer"},
	{"backup_directory", "backup-dir", "directory backups are written to"},
	{"backup_policy", "backup-policy", "backup name collisions: overwrite, suffix or mirror"},
	{"log_file", "log-file", "event log file"},
	{"ignore", "ignore", "glob of files to leave alone, relative to the directory (repeatable)"},
	{"workers", "workers", "files cleaned in parallel"},
}

// 🏁 RegisterFlags adds one flag per overridable key. Flag defaults come from
// Default() but only flags the user sets override a config file.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	for _, f := range overridable {
		switch f.key {
		case "directory":
			fs.String(f.name, def.Directory, f.usage)
		case "format":
			fs.String(f.name, def.Format, f.usage)
		case "remove_comments":
			fs.Bool(f.name, def.RemoveComments, f.usage)
		case "remove_empty_lines":
			fs.Bool(f.name, def.RemoveEmptyLines, f.usage)
		case "normalize_indentation":
			fs.Bool(f.name, def.NormalizeIndentation, f.usage)
		case "js_minify":
			fs.Bool(f.name, def.JSMinify, f.usage)
		case "optimize_css":
			fs.Bool(f.name, def.OptimizeCSS, f.usage)
		case "dry_run":
			fs.Bool(f.name, def.DryRun, f.usage)
		case "minifier":
			fs.String(f.name, def.Minifier, f.usage)
		case "backup_directory":
			fs.String(f.name, def.BackupDirectory, f.usage)
		case "backup_policy":
			fs.String(f.name, def.BackupPolicy, f.usage)
		case "log_file":
			fs.String(f.name, def.LogFile, f.usage)
		case "ignore":
			fs.StringSlice(f.name, nil, f.usage)
		case "workers":
			fs.Int(f.name, def.Workers, f.usage)
		}
	}
}

// 🔗 BindFlags binds the flags from RegisterFlags and the WEBCLEAN_ environment
// variables to v
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, f := range overridable {
		if pf := fs.Lookup(f.name); pf != nil {
			if err := v.BindPFlag(f.key, pf); err != nil {
				return errors.Errorf("binding flag %s: %w", f.name, err)
			}
		}
		if err := v.BindEnv(f.key); err != nil {
			return errors.Errorf("binding env for %s: %w", f.key, err)
		}
	}
	return nil
}

// 🎛️ ApplyOverrides copies every key explicitly set on v (changed flag or
// environment variable) into cfg
func ApplyOverrides(cfg *Config, v *viper.Viper) {
	for _, f := range overridable {
		if !v.IsSet(f.key) {
			continue
		}
		switch f.key {
		case "directory":
			cfg.Directory = v.GetString(f.key)
		case "format":
			cfg.Format = v.GetString(f.key)
		case "remove_comments":
			cfg.RemoveComments = v.GetBool(f.key)
		case "remove_empty_lines":
			cfg.RemoveEmptyLines = v.GetBool(f.key)
		case "normalize_indentation":
			cfg.NormalizeIndentation = v.GetBool(f.key)
		case "js_minify":
			cfg.JSMinify = v.GetBool(f.key)
		case "optimize_css":
			cfg.OptimizeCSS = v.GetBool(f.key)
		case "dry_run":
			cfg.DryRun = v.GetBool(f.key)
		case "minifier":
			cfg.Minifier = v.GetString(f.key)
		case "backup_directory":
			cfg.BackupDirectory = v.GetString(f.key)
		case "backup_policy":
			cfg.BackupPolicy = v.GetString(f.key)
		case "log_file":
			cfg.LogFile = v.GetString(f.key)
		case "ignore":
			cfg.Ignore = v.GetStringSlice(f.key)
		case "workers":
			cfg.Workers = v.GetInt(f.key)
		}
	}
}

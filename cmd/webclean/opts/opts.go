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

package opts

import (
	"context"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/pkg/backup"
	"github.com/walteh/webclean/pkg/config"
	"github.com/walteh/webclean/pkg/log"
	"github.com/walteh/webclean/pkg/operation"
	"github.com/walteh/webclean/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile  string
	Debug       bool
	Interactive bool

	// Prompter answers the interactive questions
	Prompter config.Prompter
	// Viper holds flag and WEBCLEAN_ environment overrides
	Viper *viper.Viper
	// Console prints per-file lines and summaries. The root command creates
	// it and stores it in the command context.
	Console *log.Logger
	// Config is the resolved configuration of the current command
	Config *config.Config
}

// 🏭 New returns options prompting on the terminal
func New() *RootOpts {
	return &RootOpts{
		Prompter: config.TerminalPrompter{},
		Viper:    viper.New(),
	}
}

// 🎯 Resolve builds the configuration of a command. Interactive mode asks
// the questions on top of the flag and environment overrides; otherwise the
// config file (if any) is loaded and overridden. A positional directory
// argument beats every other source.
func (o *RootOpts) Resolve(ctx context.Context, flags *pflag.FlagSet, args []string) (*config.Config, error) {
	if err := config.BindFlags(o.Viper, flags); err != nil {
		return nil, err
	}

	var cfg *config.Config
	switch {
	case o.Interactive:
		base := config.Default()
		config.ApplyOverrides(base, o.Viper)

		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		cfg, err = config.Interactive(ctx, o.Prompter, cwd, base)
		if err != nil {
			return nil, err
		}
	case o.ConfigFile != "":
		loaded, err := config.Load(ctx, o.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
		config.ApplyOverrides(cfg, o.Viper)
	default:
		cfg = config.Default()
		config.ApplyOverrides(cfg, o.Viper)
	}

	if len(args) > 0 && !o.Interactive {
		cfg.Directory = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	o.Config = cfg
	return cfg, nil
}

// 🔧 OperationOptions wires the run collaborators described by cfg. The
// console in ctx, if any, receives per-file lines.
func (o *RootOpts) OperationOptions(ctx context.Context, cfg *config.Config, extra ...operation.Option) ([]operation.Option, error) {
	policy, err := backup.ParsePolicy(cfg.BackupPolicy)
	if err != nil {
		return nil, err
	}

	files := status.New(".")
	opts := []operation.Option{
		operation.WithCleanOptions(cfg.CleanOptions()),
		operation.WithStatus(files),
		operation.WithBackup(backup.New(files, cfg.BackupDirectory,
			backup.WithPolicy(policy),
			backup.WithWalkRoot(cfg.Directory),
		)),
		operation.WithEventLog(log.NewEventLog(cfg.LogFile)),
		operation.WithIgnore(cfg.Ignore...),
		operation.WithWorkers(cfg.Workers),
	}
	if console, ok := log.LookupContext(ctx); ok {
		opts = append(opts, operation.WithConsole(console))
	}
	return append(opts, extra...), nil
}

// Options applies OperationOptions to a fresh operation.Options for callers
// that build an operation by hand
func (o *RootOpts) Options(ctx context.Context, cfg *config.Config, extra ...operation.Option) (operation.Options, error) {
	list, err := o.OperationOptions(ctx, cfg, extra...)
	if err != nil {
		return operation.Options{}, err
	}
	opts := operation.Options{Root: cfg.Directory}
	for _, opt := range list {
		opt(&opts)
	}
	return opts, nil
}

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

package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/webclean/cmd/webclean/commands"
	"github.com/walteh/webclean/cmd/webclean/opts"
	"github.com/walteh/webclean/pkg/config"
	"github.com/walteh/webclean/pkg/log"
)

// newRootCmd builds the command tree. Running webclean without a subcommand
// asks the interactive questions and cleans.
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "webclean",
		Short: "Clean HTML, CSS and JavaScript sources in place",
		Long: `webclean strips comments and blank lines from web sources, normalizes
indentation, optionally minifies JavaScript and stamps every file with a
watermark. Originals are backed up first and every step is logged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, o)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Interactive = true
			log.FromContext(cmd.Context()).Header("Welcome to the Enhanced Code Cleaner Tool for HTML, JS, and CSS")
			return commands.RunClean(cmd, o, nil, metricsFile)
		},
	}

	addRootFlags(cmd, o)
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file after the run")

	cmd.AddCommand(
		commands.NewCleanCmd(o),
		commands.NewWatchCmd(o),
		commands.NewRestoreCmd(o),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file (.yaml, .yml, .json, .toml or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.Interactive, "interactive", "i", false, "ask for the settings instead of reading them from flags")
	config.RegisterFlags(cmd.PersistentFlags())
}

// setupLogging puts a zerolog logger in the command context and creates the
// console
func setupLogging(cmd *cobra.Command, o *opts.RootOpts) {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	logger := newLogger(cmd.ErrOrStderr(), level)
	cmd.SetContext(logger.WithContext(cmd.Context()))

	if o.Console == nil {
		o.Console = log.New(cmd.OutOrStdout(), level)
	}
	cmd.SetContext(log.NewContext(cmd.Context(), o.Console))
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

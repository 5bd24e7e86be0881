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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/cmd/webclean/opts"
	"github.com/walteh/webclean/pkg/log"
	"github.com/walteh/webclean/pkg/metrics"
	"github.com/walteh/webclean/pkg/operation"
	"github.com/walteh/webclean/pkg/status"
)

// ErrFilesFailed is returned when a run finished but some files could not be cleaned
var ErrFilesFailed = errors.Base("some files failed")

// NewCleanCmd creates a new clean command
func NewCleanCmd(o *opts.RootOpts) *cobra.Command {
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "clean [directory]",
		Short: "Clean the HTML, CSS and JavaScript files below a directory",
		Long: `Clean walks a directory and rewrites every .html, .css and .js file.
For each file it will:
1. Copy the original into the backup directory
2. Strip comments and blank lines, expand tabs and optionally minify
3. Prepend the watermark and write the result (unless --dry-run)
Every step is appended to the event log.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunClean(cmd, o, args, metricsFile)
		},
	}

	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file after the run")

	return cmd
}

// 🧹 RunClean resolves the configuration, cleans the directory and prints the
// summary
func RunClean(cmd *cobra.Command, o *opts.RootOpts, args []string, metricsFile string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := o.Resolve(ctx, cmd.Flags(), args)
	if err != nil {
		return err
	}
	logger.Debug().Str("config", cfg.String()).Msg("resolved configuration")

	var recorder *metrics.PrometheusRecorder
	var extra []operation.Option
	if metricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		extra = append(extra, operation.WithRecorder(recorder))
	}

	runOpts, err := o.OperationOptions(ctx, cfg, extra...)
	if err != nil {
		return err
	}

	summary, err := operation.CleanDirectory(ctx, cfg.Directory, runOpts...)
	if err != nil {
		return err
	}

	console := log.FromContext(ctx)
	console.LogNewline()
	console.Print(status.FormatSummary(summary))

	if recorder != nil {
		if err := recorder.WriteTextfile(metricsFile); err != nil {
			return errors.Errorf("writing metrics: %w", err)
		}
		logger.Debug().Str("path", metricsFile).Msg("metrics written")
	}

	if summary.Failed > 0 {
		return errors.Errorf("%w: %d of %d, see %s", ErrFilesFailed, summary.Failed, summary.Total, cfg.LogFile)
	}

	if cfg.DryRun {
		console.Info("Dry run mode: No files were modified.")
	} else {
		console.Success("Code cleanup complete.")
	}
	return nil
}

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
	"time"

	"github.com/spf13/cobra"

	"github.com/walteh/webclean/cmd/webclean/opts"
	"github.com/walteh/webclean/pkg/log"
	"github.com/walteh/webclean/pkg/operation"
	"github.com/walteh/webclean/pkg/watch"
)

// NewWatchCmd creates a new watch command
func NewWatchCmd(o *opts.RootOpts) *cobra.Command {
	var debounce, quiet time.Duration

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Clean files as they are created or saved",
		Long: `Watch keeps running and cleans every recognized file below the directory
that is created or written after it starts. Files already present are left
alone; run clean first to handle them. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.Resolve(ctx, cmd.Flags(), args)
			if err != nil {
				return err
			}

			runOpts, err := o.Options(ctx, cfg)
			if err != nil {
				return err
			}
			op := operation.NewCleanOperation(runOpts)

			log.FromContext(ctx).Infof("watching %s", cfg.Directory)
			w := watch.New(cfg.Directory, op, watch.WithDebounce(debounce), watch.WithQuiet(quiet))
			return w.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "wait this long after the last event before cleaning a file")
	cmd.Flags().DurationVar(&quiet, "quiet", watch.DefaultQuiet, "ignore events for a file this long after cleaning it")

	return cmd
}

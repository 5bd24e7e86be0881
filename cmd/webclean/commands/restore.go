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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/cmd/webclean/opts"
	"github.com/walteh/webclean/pkg/log"
	"github.com/walteh/webclean/pkg/operation"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [directory]",
		Short: "Copy backups back over the cleaned files",
		Long: `Restore undoes a clean run. Every recognized file below the directory
that has a backup is overwritten with it. Use the same backup directory and
backup policy as the run being undone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.Resolve(ctx, cmd.Flags(), args)
			if err != nil {
				return err
			}

			runOpts, err := o.OperationOptions(ctx, cfg)
			if err != nil {
				return err
			}

			result, err := operation.RestoreDirectory(ctx, cfg.Directory, runOpts...)
			if err != nil {
				return err
			}

			log.FromContext(ctx).Infof("restored %d, no backup %d, failed %d", result.Restored, result.Missing, result.Failed)
			if result.Failed > 0 {
				return errors.Errorf("%w: %d restores, see %s", ErrFilesFailed, result.Failed, cfg.LogFile)
			}
			return nil
		},
	}

	return cmd
}

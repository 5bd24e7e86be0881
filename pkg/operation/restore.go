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

package operation

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/pkg/backup"
)

// ♻️ RestoreOperation copies backups back over the recognized files below the root
type RestoreOperation struct {
	BaseOperation

	restored atomic.Int64
	missing  atomic.Int64
	failed   atomic.Int64
}

// RestoreResult counts what a restore did
type RestoreResult struct {
	Restored int
	Missing  int
	Failed   int
}

// ♻️ NewRestoreOperation creates a new restore operation
func NewRestoreOperation(opts Options) *RestoreOperation {
	return &RestoreOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🏃 Execute restores every file that has a backup. Files without one are
// left alone.
func (op *RestoreOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	files, err := op.discover(ctx)
	if err != nil {
		return err
	}

	err = ForEach(ctx, op.Workers, files, func(ctx context.Context, path string) error {
		if _, ok := op.Registry.Lookup(path); !ok || op.shouldIgnore(ctx, path) {
			return nil
		}

		src, err := op.Backup.Restore(ctx, path)
		switch {
		case errors.Is(err, backup.ErrNoBackup):
			logger.Debug().Str("path", path).Msg("no backup to restore")
			op.missing.Add(1)
		case err != nil:
			op.record(ctx, "Error restoring %s: %v", path, err)
			op.failed.Add(1)
		default:
			op.record(ctx, "Restored %s from %s", path, src)
			op.restored.Add(1)
		}
		return nil
	})
	if err != nil {
		return errors.Errorf("restoring %s: %w", op.Root, err)
	}
	return nil
}

// Result returns the counters collected by Execute
func (op *RestoreOperation) Result() RestoreResult {
	return RestoreResult{
		Restored: int(op.restored.Load()),
		Missing:  int(op.missing.Load()),
		Failed:   int(op.failed.Load()),
	}
}

// ♻️ RestoreDirectory restores every backed up file below root
func RestoreDirectory(ctx context.Context, root string, opts ...Option) (RestoreResult, error) {
	o := Options{Root: root}
	for _, opt := range opts {
		opt(&o)
	}

	op := NewRestoreOperation(o)
	if err := NewRunner(zerolog.Ctx(ctx), false).Run(ctx, op); err != nil {
		return op.Result(), err
	}
	return op.Result(), nil
}

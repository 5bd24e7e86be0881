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
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/pkg/log"
	"github.com/walteh/webclean/pkg/status"
)

// 🧹 CleanOperation walks a directory and runs every recognized file through
// its pipeline
type CleanOperation struct {
	BaseOperation
}

// 🧹 NewCleanOperation creates a new clean operation
func NewCleanOperation(opts Options) *CleanOperation {
	return &CleanOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🏃 Execute runs the clean operation. Per-file failures are logged and
// counted; only a missing root, invalid options or cancellation return an error.
func (op *CleanOperation) Execute(ctx context.Context) error {
	if err := op.Clean.Validate(); err != nil {
		return errors.Errorf("validating clean options: %w", err)
	}

	files, err := op.discover(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() { op.Recorder.ObserveRunDuration(time.Since(start)) }()

	if op.Console != nil {
		op.Console.StartRun(ctx, log.RunOperation{
			Root:    op.Root,
			Format:  string(op.Clean.Format),
			DryRun:  op.Clean.DryRun,
			Workers: op.Workers,
		})
		defer op.Console.EndRun(ctx)
	}

	op.Status.StartOperation(ctx, len(files))
	defer op.Status.FinishOperation(ctx)

	var processed atomic.Int64
	err = ForEach(ctx, op.Workers, files, func(ctx context.Context, path string) error {
		op.CleanFile(ctx, path)
		op.Status.UpdateProgress(ctx, int(processed.Add(1)))
		return nil
	})
	if err != nil {
		return errors.Errorf("cleaning %s: %w", op.Root, err)
	}
	return nil
}

// Summary aggregates the outcomes tracked so far
func (op *CleanOperation) Summary(ctx context.Context) status.Summary {
	return op.Status.Summary(ctx)
}

// 📄 CleanFile backs up, reads, transforms and (unless dry run) rewrites one
// file. Unhandled and ignored files are skipped without a backup or an event.
func (op *CleanOperation) CleanFile(ctx context.Context, path string) status.FileInfo {
	start := time.Now()

	pipeline, ok := op.Registry.Lookup(path)
	if !ok || op.shouldIgnore(ctx, path) {
		return op.finish(ctx, start, status.FileInfo{
			Path:    path,
			Kind:    op.Registry.KindOf(path).String(),
			Outcome: status.OutcomeSkipped,
		})
	}

	kind := pipeline.Kind()
	info := status.FileInfo{Path: path, Kind: kind.String()}

	fail := func(err error) status.FileInfo {
		op.record(ctx, "Error cleaning %s: %v", path, err)
		info.Outcome = status.OutcomeFailed
		info.Error = err
		return op.finish(ctx, start, info)
	}

	dest, err := op.Backup.Backup(ctx, path)
	if err != nil {
		return fail(err)
	}
	op.record(ctx, "Backup created for %s at %s", path, dest)

	content, err := op.Status.ReadFile(ctx, path)
	if err != nil {
		return fail(err)
	}
	info.SizeBefore = int64(len(content))

	cleaned, err := pipeline.Clean(ctx, string(content), op.Clean)
	if err != nil {
		return fail(errors.Errorf("running %s pipeline: %w", kind, err))
	}
	out := []byte(cleaned)
	info.SizeAfter = int64(len(out))
	info.Checksum = status.Checksum(out)

	if op.Clean.DryRun {
		op.record(ctx, "Dry run: %s changes for %s", kind.ShortLabel(), path)
		info.Outcome = status.OutcomeDryRun
		return op.finish(ctx, start, info)
	}

	if err := op.Status.WriteFile(ctx, path, out); err != nil {
		return fail(err)
	}
	op.record(ctx, "%s cleaned: %s", kind.Label(), path)
	info.Outcome = status.OutcomeCleaned
	return op.finish(ctx, start, info)
}

// finish reports a file outcome to the status manager, metrics and console
func (op *CleanOperation) finish(ctx context.Context, start time.Time, info status.FileInfo) status.FileInfo {
	op.Status.TrackFile(ctx, info)

	op.Recorder.IncFile(info.Kind, info.Outcome.String())
	if info.Outcome != status.OutcomeSkipped {
		op.Recorder.AddBytes(info.Kind, info.SizeBefore, info.SizeAfter)
		op.Recorder.ObserveFileDuration(info.Kind, time.Since(start))
	}

	if op.Console != nil && info.Outcome != status.OutcomeSkipped {
		op.Console.LogFileOperation(ctx, log.FileOperation{
			Path:        info.Path,
			Kind:        info.Kind,
			Status:      info.Outcome.String(),
			BytesBefore: info.SizeBefore,
			BytesAfter:  info.SizeAfter,
		})
	}
	return info
}

// 📂 discover lists the regular files below the root, leaving out the backup
// root and the event log
func (op *BaseOperation) discover(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(op.Root)
	if (err != nil && os.IsNotExist(err)) || (err == nil && !info.IsDir()) {
		op.record(ctx, "Directory %s does not exist!", op.Root)
		return nil, errors.Errorf("%w: %s", ErrMissingDirectory, op.Root)
	}
	if err != nil {
		return nil, errors.Errorf("checking directory: %w", err)
	}

	var files []string
	err = filepath.WalkDir(op.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}

		if d.IsDir() {
			if path != op.Root && op.Backup.Excludes(path) {
				logger.Debug().Str("path", path).Msg("skipping backup directory")
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegular(path, d) || op.isEventLog(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", op.Root, err)
	}

	logger.Debug().Str("root", op.Root).Int("files", len(files)).Msg("discovered files")
	return files, nil
}

// 🔍 shouldIgnore matches the path relative to the root against the ignore globs
func (op *BaseOperation) shouldIgnore(ctx context.Context, path string) bool {
	if len(op.Ignore) == 0 {
		return false
	}
	logger := zerolog.Ctx(ctx)

	rel, err := filepath.Rel(op.Root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range op.Ignore {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// Excludes reports whether path lies in the backup root or is the event log.
// Such paths are never cleaned.
func (op *BaseOperation) Excludes(path string) bool {
	return op.Backup.Excludes(path) || op.isEventLog(path)
}

func (op *BaseOperation) isEventLog(path string) bool {
	logPath, err := filepath.Abs(op.Events.Path())
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == logPath
}

// isRegular accepts regular files and symlinks that resolve to one
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

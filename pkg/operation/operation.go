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
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/pkg/backup"
	"github.com/walteh/webclean/pkg/clean"
	"github.com/walteh/webclean/pkg/log"
	"github.com/walteh/webclean/pkg/metrics"
	"github.com/walteh/webclean/pkg/status"
)

// ErrMissingDirectory is returned when the walk root does not exist
var ErrMissingDirectory = errors.Base("directory does not exist")

// 🎯 Operation is a unit of work executed by a Runner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything an operation needs. Zero values are filled
// in by NewBaseOperation.
type Options struct {
	// Root is the directory to walk
	Root string
	// Clean governs every pipeline call of the walk
	Clean clean.Options
	// Registry maps extensions to pipelines
	Registry *clean.Registry
	// Status reads, writes and tracks files
	Status *status.Manager
	// Backup snapshots originals before they are touched
	Backup *backup.Service
	// Events is the append-only event log
	Events *log.EventLog
	// Console prints per-file lines when set
	Console *log.Logger
	// Recorder receives metrics
	Recorder metrics.Recorder
	// Ignore holds doublestar globs matched against paths relative to Root
	Ignore []string
	// Workers bounds parallel file processing; 1 keeps the walk sequential
	Workers int
}

// Option mutates Options
type Option func(*Options)

// WithCleanOptions sets the cleaning configuration
func WithCleanOptions(o clean.Options) Option {
	return func(opts *Options) { opts.Clean = o }
}

// WithRegistry sets the pipeline registry
func WithRegistry(r *clean.Registry) Option {
	return func(opts *Options) { opts.Registry = r }
}

// WithStatus sets the status manager
func WithStatus(m *status.Manager) Option {
	return func(opts *Options) { opts.Status = m }
}

// WithBackup sets the backup service
func WithBackup(b *backup.Service) Option {
	return func(opts *Options) { opts.Backup = b }
}

// WithEventLog sets the event log
func WithEventLog(l *log.EventLog) Option {
	return func(opts *Options) { opts.Events = l }
}

// WithConsole enables per-file console lines
func WithConsole(l *log.Logger) Option {
	return func(opts *Options) { opts.Console = l }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) Option {
	return func(opts *Options) { opts.Recorder = r }
}

// WithIgnore sets the ignore globs
func WithIgnore(patterns ...string) Option {
	return func(opts *Options) { opts.Ignore = patterns }
}

// WithWorkers sets the number of parallel workers
func WithWorkers(n int) Option {
	return func(opts *Options) { opts.Workers = n }
}

// 🧱 BaseOperation carries the resolved options shared by every operation
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation fills in defaults for unset options
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Root == "" {
		opts.Root = "."
	}
	opts.Root = filepath.Clean(opts.Root)

	if opts.Clean == (clean.Options{}) {
		opts.Clean = clean.DefaultOptions()
	}
	if opts.Registry == nil {
		opts.Registry = clean.DefaultRegistry()
	}
	if opts.Status == nil {
		opts.Status = status.New(".")
	}
	if opts.Backup == nil {
		opts.Backup = backup.New(opts.Status, backup.DefaultRoot, backup.WithWalkRoot(opts.Root))
	}
	if opts.Events == nil {
		opts.Events = log.NewEventLog(log.DefaultEventLogPath)
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return BaseOperation{Options: opts}
}

// record appends to the event log. A failing event log never aborts the walk.
func (op *BaseOperation) record(ctx context.Context, format string, args ...interface{}) {
	if err := op.Events.Recordf(ctx, format, args...); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("writing event log")
	}
}

// 🧹 CleanDirectory cleans every recognized file below root and returns the
// run summary
func CleanDirectory(ctx context.Context, root string, opts ...Option) (status.Summary, error) {
	o := Options{Root: root}
	for _, opt := range opts {
		opt(&o)
	}

	op := NewCleanOperation(o)
	if err := NewRunner(zerolog.Ctx(ctx), false).Run(ctx, op); err != nil {
		return op.Summary(ctx), err
	}
	return op.Summary(ctx), nil
}

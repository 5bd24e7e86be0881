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

package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/pkg/status"
)

const (
	// DefaultDebounce groups the bursts of events an editor produces for one save
	DefaultDebounce = 100 * time.Millisecond
	// DefaultQuiet is how long events for a file the watcher just rewrote are ignored
	DefaultQuiet = time.Second
)

// 🧹 Cleaner runs one file through the cleaning pipeline
type Cleaner interface {
	CleanFile(ctx context.Context, path string) status.FileInfo
	// Excludes reports paths the watcher must never clean, such as backups
	Excludes(path string) bool
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the per-file debounce delay
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithQuiet sets the self-write suppression window
func WithQuiet(d time.Duration) Option {
	return func(w *Watcher) { w.quiet = d }
}

// WithOnClean registers a callback receiving every file outcome
func WithOnClean(fn func(status.FileInfo)) Option {
	return func(w *Watcher) { w.onClean = fn }
}

// 👀 Watcher re-cleans files created or written below a root
type Watcher struct {
	root     string
	cleaner  Cleaner
	debounce time.Duration
	quiet    time.Duration
	onClean  func(status.FileInfo)
	now      func() time.Time

	fsw   *fsnotify.Watcher
	ready chan string

	mu      sync.Mutex
	pending map[string]*time.Timer
	written map[string]time.Time
}

// 🏭 New creates a watcher for root
func New(root string, cleaner Cleaner, opts ...Option) *Watcher {
	w := &Watcher{
		root:     filepath.Clean(root),
		cleaner:  cleaner,
		debounce: DefaultDebounce,
		quiet:    DefaultQuiet,
		now:      time.Now,
		ready:    make(chan string, 64),
		pending:  make(map[string]*time.Timer),
		written:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// 🏃 Run watches until ctx is done. Cancellation is a normal shutdown and
// returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(w.root)
	if err != nil || !info.IsDir() {
		return errors.Errorf("watching %s: not a directory", w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()
	w.fsw = fsw
	defer w.stopTimers()

	if err := w.addRecursive(ctx, w.root); err != nil {
		return err
	}

	logger.Info().Str("root", w.root).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("root", w.root).Msg("watch stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("file watcher error")
		case path := <-w.ready:
			w.process(ctx, path)
		}
	}
}

// addRecursive watches dir and every directory below it, leaving out excluded
// ones. Files already present in a new directory are scheduled too, since
// their create events may have fired before the watch existed.
func (w *Watcher) addRecursive(ctx context.Context, dir string) error {
	logger := zerolog.Ctx(ctx)
	isRoot := dir == w.root

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}
		if w.cleaner.Excludes(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if !isRoot && d.Type().IsRegular() {
				w.schedule(ctx, path)
			}
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Errorf("watching %s: %w", path, err)
		}
		logger.Debug().Str("dir", path).Msg("watching directory")
		return nil
	})
}

// handleEvent turns a create or write into a debounced clean
func (w *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	logger := zerolog.Ctx(ctx)

	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if w.cleaner.Excludes(ev.Name) {
		return
	}

	info, err := os.Stat(ev.Name)
	if err != nil {
		// gone again before we looked
		return
	}
	if info.IsDir() {
		if ev.Has(fsnotify.Create) {
			if err := w.addRecursive(ctx, ev.Name); err != nil {
				logger.Warn().Err(err).Str("dir", ev.Name).Msg("watching new directory")
			}
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}

	if w.suppressed(ev.Name) {
		logger.Debug().Str("path", ev.Name).Msg("ignoring own write")
		return
	}
	w.schedule(ctx, ev.Name)
}

// schedule (re)starts the debounce timer of path
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

// process cleans a file whose debounce timer fired
func (w *Watcher) process(ctx context.Context, path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.mu.Unlock()

	info := w.cleaner.CleanFile(ctx, path)
	if info.Outcome == status.OutcomeCleaned {
		w.mu.Lock()
		w.written[path] = w.now()
		w.mu.Unlock()
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("outcome", info.Outcome.String()).
		Msg("watched file processed")

	if w.onClean != nil {
		w.onClean(info)
	}
}

// suppressed reports whether path was rewritten by the watcher within the
// quiet window
func (w *Watcher) suppressed(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	at, ok := w.written[path]
	if !ok {
		return false
	}
	if w.now().Sub(at) < w.quiet {
		return true
	}
	delete(w.written, path)
	return false
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

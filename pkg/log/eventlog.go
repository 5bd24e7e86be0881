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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultEventLogPath is the event log used when none is configured
const DefaultEventLogPath = "cleanup_log.txt"

// 📒 EventLog appends one "[message]" line per event to a UTF-8 text file.
// Appends are serialized so concurrent workers never interleave lines.
type EventLog struct {
	path  string
	runID string
	echo  io.Writer

	mu sync.Mutex
}

// EventLogOption configures an EventLog
type EventLogOption func(*EventLog)

// WithEcho also prints every event line to w
func WithEcho(w io.Writer) EventLogOption {
	return func(l *EventLog) {
		l.echo = w
	}
}

// WithRunID overrides the generated run id
func WithRunID(id string) EventLogOption {
	return func(l *EventLog) {
		l.runID = id
	}
}

// NewEventLog creates an event log appending to path. The file is created on
// the first event.
func NewEventLog(path string, opts ...EventLogOption) *EventLog {
	if path == "" {
		path = DefaultEventLogPath
	}
	l := &EventLog{
		path:  filepath.Clean(path),
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the log file location
func (l *EventLog) Path() string {
	return l.path
}

// RunID identifies this run in the structured log
func (l *EventLog) RunID() string {
	return l.runID
}

// 📝 Record appends "[msg]" to the file and mirrors the event to the
// structured logger in ctx
func (l *EventLog) Record(ctx context.Context, msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	zerolog.Ctx(ctx).Info().
		Str("run_id", l.runID).
		Str("event_log", l.path).
		Msg(msg)

	line := fmt.Sprintf("[%s]\n", msg)

	if l.echo != nil {
		fmt.Fprint(l.echo, line)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Errorf("opening event log: %w", err)
	}

	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return errors.Errorf("appending to event log: %w", err)
	}

	if err := f.Close(); err != nil {
		return errors.Errorf("closing event log: %w", err)
	}
	return nil
}

// Recordf formats and records an event
func (l *EventLog) Recordf(ctx context.Context, format string, args ...interface{}) error {
	return l.Record(ctx, fmt.Sprintf(format, args...))
}

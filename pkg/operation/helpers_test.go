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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walteh/webclean/pkg/backup"
	"github.com/walteh/webclean/pkg/clean"
	"github.com/walteh/webclean/pkg/log"
	"github.com/walteh/webclean/pkg/status"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// 🧪 fixture is a temp workspace with a site to clean, a backup root and an event log
type fixture struct {
	dir        string
	site       string
	backupRoot string
	logPath    string
	status     *status.Manager
	events     *log.EventLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:        dir,
		site:       filepath.Join(dir, "site"),
		backupRoot: filepath.Join(dir, "backup"),
		logPath:    filepath.Join(dir, "cleanup_log.txt"),
		status:     status.New(dir),
	}
	f.events = log.NewEventLog(f.logPath)
	require.NoError(t, os.MkdirAll(f.site, 0755))
	return f
}

func (f *fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.site, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) options(extra ...Option) []Option {
	opts := []Option{
		WithStatus(f.status),
		WithBackup(backup.New(f.status, f.backupRoot, backup.WithWalkRoot(f.site))),
		WithEventLog(f.events),
	}
	return append(opts, extra...)
}

// logLines returns the event log without its trailing newline, or nil when
// nothing was logged
func (f *fixture) logLines(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// 🔧 MockPipeline is a mock implementation of clean.Pipeline
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Kind() clean.Kind {
	return m.Called().Get(0).(clean.Kind)
}

func (m *MockPipeline) Clean(ctx context.Context, content string, opts clean.Options) (string, error) {
	result := m.Called(ctx, content, opts)
	return result.String(0), result.Error(1)
}

// 🔧 MockRecorder is a mock implementation of metrics.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) IncFile(kind, outcome string) {
	m.Called(kind, outcome)
}

func (m *MockRecorder) AddBytes(kind string, before, after int64) {
	m.Called(kind, before, after)
}

func (m *MockRecorder) ObserveFileDuration(kind string, d time.Duration) {
	m.Called(kind, d)
}

func (m *MockRecorder) ObserveRunDuration(d time.Duration) {
	m.Called(d)
}

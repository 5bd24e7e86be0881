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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:        "index.html",
					Kind:        "markup",
					Status:      "cleaned",
					BytesBefore: 120,
					BytesAfter:  90,
				})
			},
			wantLogs: []string{
				"✓ index.html                          markup       cleaned",
			},
		},
		{
			name: "log_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Root:   "/tmp/site",
					Format: "compact",
					DryRun: true,
				})
			},
			wantLogs: []string{
				"[cleaning /tmp/site]",
				"◆ webclean • compact (dry run)",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("cleaning web sources")
			},
			wantLogs: []string{
				"webclean • cleaning web sources",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")

	found, ok := LookupContext(ctx)
	assert.True(t, ok)
	assert.Same(t, logger, found)

	_, ok = LookupContext(context.Background())
	assert.False(t, ok, "LookupContext should report a missing logger")
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "cleaned_markup",
			op:   FileOperation{Path: "index.html", Kind: "markup", Status: "cleaned"},
			want: "✓ index.html                          markup       cleaned",
		},
		{
			name: "dry_run_script",
			op:   FileOperation{Path: "app.js", Kind: "script", Status: "dry-run"},
			want: "⟳ app.js                              script       dry-run",
		},
		{
			name: "failed_stylesheet",
			op:   FileOperation{Path: "main.css", Kind: "stylesheet", Status: "failed"},
			want: "✗ main.css                            stylesheet   failed",
		},
		{
			name: "skipped_file",
			op:   FileOperation{Path: "notes.txt", Kind: "unhandled", Status: "skipped"},
			want: "- notes.txt                           unhandled    skipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			logger.LogFileOperation(context.Background(), tt.op)

			output := strings.TrimSpace(buf.String())
			assert.Equal(t, tt.want, output, "formatted output should match")
		})
	}
}

func TestRunTracksOperations(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)
	ctx := context.Background()

	logger.StartRun(ctx, RunOperation{Root: "site", Format: "readable"})
	logger.LogFileOperation(ctx, FileOperation{Path: "a.css", Kind: "stylesheet", Status: "cleaned"})
	logger.LogFileOperation(ctx, FileOperation{Path: "b.js", Kind: "script", Status: "failed"})
	assert.Len(t, logger.Operations(), 2)

	logger.EndRun(ctx)
	assert.Empty(t, logger.Operations(), "operations should reset when the run ends")

	// ending twice is harmless
	logger.EndRun(ctx)
}

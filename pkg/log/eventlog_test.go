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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cleanup_log.txt")

	var zbuf bytes.Buffer
	ctx := zerolog.New(&zbuf).WithContext(context.Background())

	echo := &bytes.Buffer{}
	l := NewEventLog(path, WithEcho(echo), WithRunID("run-1"))

	require.NoError(t, l.Record(ctx, "HTML cleaned: site/index.html"))
	require.NoError(t, l.Recordf(ctx, "Backup created for %s at %s", "a.css", "backup/a.css"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[HTML cleaned: site/index.html]\n[Backup created for a.css at backup/a.css]\n",
		string(data),
		"each event should be one bracketed line")

	assert.Equal(t, string(data), echo.String(), "echo should mirror the file")
	assert.Contains(t, zbuf.String(), `"run_id":"run-1"`)
	assert.Contains(t, zbuf.String(), "HTML cleaned: site/index.html")
}

func TestEventLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("[earlier run]\n"), 0644))

	l := NewEventLog(path)
	require.NoError(t, l.Record(context.Background(), "next"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[earlier run]\n[next]\n", string(data))
}

func TestEventLogConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	l := NewEventLog(path)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, l.Recordf(ctx, "event %d", i))
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 40)
	seen := map[string]bool{}
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[event ") && strings.HasSuffix(line, "]"), "line %q should be whole", line)
		seen[line] = true
	}
	for i := 0; i < 40; i++ {
		assert.True(t, seen[fmt.Sprintf("[event %d]", i)])
	}
}

func TestEventLogDefaults(t *testing.T) {
	l := NewEventLog("")
	assert.Equal(t, DefaultEventLogPath, l.Path())
	assert.NotEmpty(t, l.RunID(), "run id should be generated")
	assert.NotEqual(t, l.RunID(), NewEventLog("").RunID(), "run ids should differ")
}

func TestEventLogUnwritable(t *testing.T) {
	l := NewEventLog(filepath.Join(t.TempDir(), "missing", "log.txt"))
	err := l.Record(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening event log")
}

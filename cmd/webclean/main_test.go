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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/cmd/webclean/commands"
	"github.com/walteh/webclean/cmd/webclean/opts"
	"github.com/walteh/webclean/pkg/clean"
	"github.com/walteh/webclean/pkg/config"
	"github.com/walteh/webclean/pkg/operation"
)

// workspace is a temp dir holding a site, its backups and the event log
type workspace struct {
	site      string
	backupDir string
	logFile   string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	w := &workspace{
		site:      filepath.Join(dir, "site"),
		backupDir: filepath.Join(dir, "backup"),
		logFile:   filepath.Join(dir, "cleanup_log.txt"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(w.site, "js"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(w.site, "js", "app.js"), []byte("// note\nlet a = 1;\n\n\nlet b = 2;\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(w.site, "style.css"), []byte("/* c */\na { color: red; }\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(w.site, "notes.txt"), []byte("keep me\n"), 0644))
	return w
}

func (w *workspace) flags() []string {
	return []string{"--backup-dir", w.backupDir, "--log-file", w.logFile}
}

func (w *workspace) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(w.site, rel))
	require.NoError(t, err)
	return string(data)
}

func (w *workspace) log(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(w.logFile)
	require.NoError(t, err)
	return string(data)
}

// execute runs the command line with fresh options and returns stdout
func execute(t *testing.T, o *opts.RootOpts, args ...string) (string, error) {
	t.Helper()
	if o == nil {
		o = opts.New()
	}
	cmd := newRootCmd(o)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCleanCommand(t *testing.T) {
	w := newWorkspace(t)

	out, err := execute(t, nil, append([]string{"clean", w.site}, w.flags()...)...)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(w.read(t, "js/app.js"), clean.Watermark))
	assert.NotContains(t, w.read(t, "js/app.js"), "// note")
	assert.True(t, strings.HasPrefix(w.read(t, "style.css"), clean.Watermark))
	assert.Equal(t, "keep me\n", w.read(t, "notes.txt"))

	assert.FileExists(t, filepath.Join(w.backupDir, "app.js"))
	assert.FileExists(t, filepath.Join(w.backupDir, "style.css"))
	assert.NoFileExists(t, filepath.Join(w.backupDir, "notes.txt"))

	log := w.log(t)
	assert.Contains(t, log, "[JavaScript cleaned: "+filepath.Join(w.site, "js", "app.js")+"]\n")
	assert.Contains(t, log, "[CSS cleaned: "+filepath.Join(w.site, "style.css")+"]\n")

	assert.Contains(t, out, "Code cleanup complete.")
	assert.Contains(t, out, "cleaned")
}

func TestCleanCommandDryRunFromEnv(t *testing.T) {
	w := newWorkspace(t)
	t.Setenv("WEBCLEAN_DRY_RUN", "true")

	before := w.read(t, "js/app.js")
	out, err := execute(t, nil, append([]string{"clean", w.site}, w.flags()...)...)
	require.NoError(t, err)

	assert.Equal(t, before, w.read(t, "js/app.js"), "dry run leaves files alone")
	assert.FileExists(t, filepath.Join(w.backupDir, "app.js"), "dry run still backs up")
	assert.Contains(t, w.log(t), "[Dry run: JS changes for "+filepath.Join(w.site, "js", "app.js")+"]")
	assert.Contains(t, out, "Dry run mode: No files were modified.")
}

func TestCleanCommandConfigFile(t *testing.T) {
	w := newWorkspace(t)

	configPath := filepath.Join(t.TempDir(), "webclean.yaml")
	content := "directory: " + w.site + "\n" +
		"backup_directory: " + w.backupDir + "\n" +
		"log_file: " + w.logFile + "\n" +
		"ignore:\n  - \"**/*.css\"\n" +
		"dry_run: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	// the flag beats the file
	_, err := execute(t, nil, "clean", "--config", configPath, "--dry-run=false")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(w.read(t, "js/app.js"), clean.Watermark))
	assert.Equal(t, "/* c */\na { color: red; }\n", w.read(t, "style.css"), "ignored by the config file")
}

func TestCleanCommandMissingDirectory(t *testing.T) {
	w := newWorkspace(t)
	missing := filepath.Join(w.site, "nope")

	_, err := execute(t, nil, append([]string{"clean", missing}, w.flags()...)...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, operation.ErrMissingDirectory))
	assert.Equal(t, "[Directory "+missing+" does not exist!]\n", w.log(t))
}

func TestCleanCommandInvalidFormat(t *testing.T) {
	w := newWorkspace(t)

	_, err := execute(t, nil, append([]string{"clean", w.site, "--format", "tiny"}, w.flags()...)...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidChoice))
	assert.NoFileExists(t, w.logFile, "nothing is touched")
}

func TestCleanCommandFailures(t *testing.T) {
	w := newWorkspace(t)
	// a file where the backup directory should be makes every backup fail
	require.NoError(t, os.WriteFile(w.backupDir, []byte("x"), 0644))

	out, err := execute(t, nil, append([]string{"clean", w.site}, w.flags()...)...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, commands.ErrFilesFailed))
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, out, "failed")
	assert.Contains(t, w.log(t), "[Error cleaning ")
}

func TestCleanCommandMetricsFile(t *testing.T) {
	w := newWorkspace(t)
	metricsPath := filepath.Join(t.TempDir(), "webclean.prom")

	_, err := execute(t, nil, append([]string{"clean", w.site, "--metrics-file", metricsPath}, w.flags()...)...)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `webclean_files_total{kind="script",outcome="cleaned"} 1`)
	assert.Contains(t, string(data), "webclean_run_duration_seconds")
}

func TestRestoreCommand(t *testing.T) {
	w := newWorkspace(t)
	original := w.read(t, "js/app.js")

	_, err := execute(t, nil, append([]string{"clean", w.site}, w.flags()...)...)
	require.NoError(t, err)
	require.NotEqual(t, original, w.read(t, "js/app.js"))

	out, err := execute(t, nil, append([]string{"restore", w.site}, w.flags()...)...)
	require.NoError(t, err)
	assert.Equal(t, original, w.read(t, "js/app.js"))
	assert.Contains(t, out, "restored 2, no backup 0, failed 0")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, nil, "version", "--json")
	require.NoError(t, err)

	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
	assert.NotEmpty(t, info.Version)

	out, err = execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "webclean version info")
}

// scriptedPrompter answers the interactive questions from fixed values
type scriptedPrompter struct {
	dir string
}

func (p scriptedPrompter) Select(label string, options []string) (string, error) {
	if strings.Contains(label, "action") {
		return options[1], nil
	}
	return options[0], nil
}

func (p scriptedPrompter) Confirm(label string) (bool, error) {
	return label != "Dry run mode (no actual changes made)?", nil
}

func (p scriptedPrompter) Text(label string) (string, error) {
	return p.dir, nil
}

func TestInteractiveRoot(t *testing.T) {
	w := newWorkspace(t)

	o := opts.New()
	o.Prompter = scriptedPrompter{dir: w.site}

	out, err := execute(t, o, w.flags()...)
	require.NoError(t, err)

	assert.Contains(t, out, "Welcome to the Enhanced Code Cleaner Tool for HTML, JS, and CSS")
	assert.Equal(t, w.site, o.Config.Directory)
	assert.Equal(t, "compact", o.Config.Format)
	assert.True(t, o.Config.JSMinify)
	assert.False(t, o.Config.DryRun)
	assert.Equal(t, w.backupDir, o.Config.BackupDirectory, "flags still set what is not prompted")

	js := w.read(t, "js/app.js")
	assert.True(t, strings.HasPrefix(js, clean.Watermark))
	assert.NotContains(t, strings.TrimPrefix(js, clean.Watermark), "\n", "minified to one line")
}

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

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverrides(t *testing.T, args ...string) *viper.Viper {
	t.Helper()

	fs := pflag.NewFlagSet("webclean", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	v := viper.New()
	require.NoError(t, BindFlags(v, fs))
	return v
}

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("webclean", pflag.ContinueOnError)
	RegisterFlags(fs)

	for _, f := range overridable {
		assert.NotNil(t, fs.Lookup(f.name), "flag %s should be registered", f.name)
	}

	def := Default()
	assert.Equal(t, def.Format, fs.Lookup("format").DefValue)
	assert.Equal(t, "true", fs.Lookup("remove-comments").DefValue)
	assert.Equal(t, "1", fs.Lookup("workers").DefValue)
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "unchanged_flags_keep_file_values",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, fileConfig(), cfg)
			},
		},
		{
			name: "changed_flags_win",
			args: []string{"--dry-run", "--workers=3", "--remove-comments=false", "--ignore=vendor/**", "--ignore=*.min.js"},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.DryRun)
				assert.Equal(t, 3, cfg.Workers)
				assert.False(t, cfg.RemoveComments)
				assert.Equal(t, []string{"vendor/**", "*.min.js"}, cfg.Ignore)
				assert.Equal(t, "readable", cfg.Format, "untouched keys keep the file value")
			},
		},
		{
			name: "environment",
			env: map[string]string{
				"WEBCLEAN_DRY_RUN":          "true",
				"WEBCLEAN_BACKUP_DIRECTORY": "/tmp/bk",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.DryRun)
				assert.Equal(t, "/tmp/bk", cfg.BackupDirectory)
				assert.Equal(t, "site", cfg.Directory)
			},
		},
		{
			name: "flag_beats_environment",
			args: []string{"--format=compact"},
			env:  map[string]string{"WEBCLEAN_FORMAT": "2"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "compact", cfg.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			v := newOverrides(t, tt.args...)

			cfg := fileConfig()
			ApplyOverrides(cfg, v)
			tt.check(t, cfg)
		})
	}
}

// fileConfig stands in for a loaded config file
func fileConfig() *Config {
	cfg := Default()
	cfg.Directory = "site"
	cfg.Format = "readable"
	cfg.Workers = 2
	return cfg
}

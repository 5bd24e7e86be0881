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
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. Attributes that are absent keep their
// defaults, so every field is optional and decoded through a pointer.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "webclean.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// environment lookups are available as env.NAME
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	type hclConfig struct {
		Directory            *string  `hcl:"directory,optional"`
		Format               *string  `hcl:"format,optional"`
		RemoveComments       *bool    `hcl:"remove_comments,optional"`
		RemoveEmptyLines     *bool    `hcl:"remove_empty_lines,optional"`
		NormalizeIndentation *bool    `hcl:"normalize_indentation,optional"`
		JSMinify             *bool    `hcl:"js_minify,optional"`
		OptimizeCSS          *bool    `hcl:"optimize_css,optional"`
		DryRun               *bool    `hcl:"dry_run,optional"`
		Minifier             *string  `hcl:"minifier,optional"`
		BackupDirectory      *string  `hcl:"backup_directory,optional"`
		BackupPolicy         *string  `hcl:"backup_policy,optional"`
		LogFile              *string  `hcl:"log_file,optional"`
		Ignore               []string `hcl:"ignore,optional"`
		Workers              *int     `hcl:"workers,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	setString(&cfg.Directory, hclCfg.Directory)
	setString(&cfg.Format, hclCfg.Format)
	setBool(&cfg.RemoveComments, hclCfg.RemoveComments)
	setBool(&cfg.RemoveEmptyLines, hclCfg.RemoveEmptyLines)
	setBool(&cfg.NormalizeIndentation, hclCfg.NormalizeIndentation)
	setBool(&cfg.JSMinify, hclCfg.JSMinify)
	setBool(&cfg.OptimizeCSS, hclCfg.OptimizeCSS)
	setBool(&cfg.DryRun, hclCfg.DryRun)
	setString(&cfg.Minifier, hclCfg.Minifier)
	setString(&cfg.BackupDirectory, hclCfg.BackupDirectory)
	setString(&cfg.BackupPolicy, hclCfg.BackupPolicy)
	setString(&cfg.LogFile, hclCfg.LogFile)
	if hclCfg.Ignore != nil {
		cfg.Ignore = hclCfg.Ignore
	}
	if hclCfg.Workers != nil {
		cfg.Workers = *hclCfg.Workers
	}

	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// envObject exposes the process environment to HCL expressions
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

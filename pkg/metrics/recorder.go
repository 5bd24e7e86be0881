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

// Package metrics records per-file cleaning metrics.
//
// Components receive a Recorder and default to NoopRecorder so no nil checks
// are needed. PrometheusRecorder backs the recorder with a registry that can
// be written to a node-exporter textfile after a run.
package metrics

import "time"

// Recorder receives one observation per processed file
type Recorder interface {
	// IncFile counts a file by kind (markup, stylesheet, script, unhandled)
	// and outcome (cleaned, dry-run, skipped, failed)
	IncFile(kind, outcome string)
	// AddBytes adds the bytes read and produced for a file of kind
	AddBytes(kind string, before, after int64)
	// ObserveFileDuration records how long a file took end to end
	ObserveFileDuration(kind string, d time.Duration)
	// ObserveRunDuration records a whole walk
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured)
type NoopRecorder struct{}

func (NoopRecorder) IncFile(string, string)                     {}
func (NoopRecorder) AddBytes(string, int64, int64)              {}
func (NoopRecorder) ObserveFileDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}

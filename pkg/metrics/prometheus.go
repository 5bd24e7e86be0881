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

package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"gitlab.com/tozd/go/errors"
)

const namespace = "webclean"

var _ Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements Recorder using Prometheus metrics
type PrometheusRecorder struct {
	reg          *prom.Registry
	files        *prom.CounterVec
	bytesIn      *prom.CounterVec
	bytesOut     *prom.CounterVec
	fileDuration *prom.HistogramVec
	runDuration  prom.Histogram
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		files: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files processed by kind and outcome",
		}, []string{"kind", "outcome"}),
		bytesIn: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Bytes read from source files",
		}, []string{"kind"}),
		bytesOut: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_produced_total",
			Help:      "Bytes produced by the cleaning pipelines",
		}, []string{"kind"}),
		fileDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent on a single file",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"kind"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a directory walk",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.files, pr.bytesIn, pr.bytesOut, pr.fileDuration, pr.runDuration)
	return pr
}

// Registry returns the registry the metrics live in
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

func (p *PrometheusRecorder) IncFile(kind, outcome string) {
	if p == nil {
		return
	}
	p.files.WithLabelValues(kind, outcome).Inc()
}

func (p *PrometheusRecorder) AddBytes(kind string, before, after int64) {
	if p == nil {
		return
	}
	p.bytesIn.WithLabelValues(kind).Add(float64(before))
	p.bytesOut.WithLabelValues(kind).Add(float64(after))
}

func (p *PrometheusRecorder) ObserveFileDuration(kind string, d time.Duration) {
	if p == nil {
		return
	}
	p.fileDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

// 📤 WriteTextfile writes the registry in the Prometheus text format, for the
// node exporter textfile collector
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return errors.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

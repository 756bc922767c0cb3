// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prom measures the parking spots use cases with Prometheus
// collectors and exposes them in the Prometheus text format.
package prom

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pkweb"

// Observer implements the spotsuc.Observer interface.
// Its collectors are registered in a dedicated registry instead of
// the global one, so multiple observers may coexist in tests.
type Observer struct {
	reg *prometheus.Registry

	refreshes       *prometheus.CounterVec
	refreshLatency  prometheus.Histogram
	snapshotSpots   prometheus.Gauge
	arranges        prometheus.Counter
	arrangeLatency  prometheus.Histogram
	arrangeFiltered prometheus.Histogram
}

// New creates an Observer with its own registry. The Go runtime and
// process collectors are registered too.
func New() *Observer {
	o := &Observer{
		reg: prometheus.NewRegistry(),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Number of spots refresh attempts by result.",
		}, []string{"result"}),
		refreshLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Latency of fetching and storing a spots snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshotSpots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_spots",
			Help:      "Number of spots in the latest stored snapshot.",
		}),
		arranges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arranges_total",
			Help:      "Number of filter and rank pipeline runs.",
		}),
		arrangeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "arrange_duration_seconds",
			Help:      "Latency of the filter and rank pipeline.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		arrangeFiltered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "arrange_filtered_ratio",
			Help:      "Ratio of spots which were dropped by filters.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
	o.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		o.refreshes, o.refreshLatency, o.snapshotSpots,
		o.arranges, o.arrangeLatency, o.arrangeFiltered,
	)
	return o
}

// ObserveRefresh records one refresh attempt which fetched n spots
// and took d. The snapshot size gauge is only set when err is nil.
func (o *Observer) ObserveRefresh(n int, d time.Duration, err error) {
	o.refreshLatency.Observe(d.Seconds())
	if err != nil {
		o.refreshes.WithLabelValues("error").Inc()
		return
	}
	o.refreshes.WithLabelValues("ok").Inc()
	o.snapshotSpots.Set(float64(n))
}

// ObserveArrange records one pipeline run which reduced in spots
// to out spots and took d.
func (o *Observer) ObserveArrange(in, out int, d time.Duration) {
	o.arranges.Inc()
	o.arrangeLatency.Observe(d.Seconds())
	if in > 0 {
		o.arrangeFiltered.Observe(float64(in-out) / float64(in))
	}
}

// Registry returns the registry which holds the Observer collectors.
func (o *Observer) Registry() *prometheus.Registry {
	return o.reg
}

// Handler returns an http.Handler which serves the collected metrics.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.reg, promhttp.HandlerOpts{
		Registry: o.reg,
	})
}

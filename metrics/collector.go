// Copyright 2025 Contriboss
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

// Package metrics exports timeres cache statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/contriboss/timeres"
)

// StatsSource is anything reporting cache statistics, such as *timeres.Cache
// and *timeres.PeriodCache.
type StatsSource interface {
	Stats() timeres.CacheStats
}

// CacheCollector is a prometheus.Collector reading a cache's statistics on
// every scrape. The cache keeps its own counters, so the collector holds no
// state beyond the descriptors.
//
// Example:
//
//	cache := timeres.NewPeriodCache[timeres.Day, float64]()
//	prometheus.MustRegister(metrics.NewCacheCollector("prices", "daily", cache))
type CacheCollector struct {
	src StatsSource

	requests *prometheus.Desc
	hits     *prometheus.Desc
	misses   *prometheus.Desc
	hitRatio *prometheus.Desc
}

// NewCacheCollector creates a collector for src. Metric names are prefixed
// with namespace and every series carries a cache=cacheName label.
func NewCacheCollector(namespace, cacheName string, src StatsSource) *CacheCollector {
	labels := prometheus.Labels{"cache": cacheName}
	return &CacheCollector{
		src: src,
		requests: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "requests_total"),
			"Total number of cache lookups.",
			nil, labels,
		),
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Total number of lookups answered entirely from the cache.",
			nil, labels,
		),
		misses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "misses_total"),
			"Total number of lookups that reported gaps.",
			nil, labels,
		),
		hitRatio: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hit_ratio"),
			"Fraction of lookups answered entirely from the cache.",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requests
	ch <- c.hits
	ch <- c.misses
	ch <- c.hitRatio
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(stats.Calls))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(c.hitRatio, prometheus.GaugeValue, stats.HitRate)
}

var _ prometheus.Collector = (*CacheCollector)(nil)

// Package metrics exposes watcher counters and the entry count over a
// prometheus /metrics endpoint.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"folderdock/internal/core/watch"
)

// Collector reads a counter snapshot at scrape time, so there is no push
// loop to keep in sync with the watcher.
type Collector struct {
	counters func() watch.CounterSnapshot
	entries  func() int

	published     *prometheus.Desc
	created       *prometheus.Desc
	removed       *prometheus.Desc
	modified      *prometheus.Desc
	stalls        *prometheus.Desc
	droppedOldest *prometheus.Desc
	droppedNewest *prometheus.Desc
	entriesDesc   *prometheus.Desc
}

// NewCollector builds a collector over the given sources. entries may be
// nil when no state engine is attached.
func NewCollector(counters func() watch.CounterSnapshot, entries func() int) *Collector {
	return &Collector{
		counters: counters,
		entries:  entries,

		published: prometheus.NewDesc("folderdock_watch_events_published_total",
			"Events published to the watch channel", nil, nil),
		created: prometheus.NewDesc("folderdock_watch_created_total",
			"Created events published", nil, nil),
		removed: prometheus.NewDesc("folderdock_watch_removed_total",
			"Removed events published", nil, nil),
		modified: prometheus.NewDesc("folderdock_watch_modified_total",
			"Modified events published", nil, nil),
		stalls: prometheus.NewDesc("folderdock_watch_publish_stalls_total",
			"Publishes that blocked on a full channel", nil, nil),
		droppedOldest: prometheus.NewDesc("folderdock_watch_dropped_oldest_total",
			"Events evicted from the head of a full channel", nil, nil),
		droppedNewest: prometheus.NewDesc("folderdock_watch_dropped_newest_total",
			"Events discarded on arrival at a full channel", nil, nil),
		entriesDesc: prometheus.NewDesc("folderdock_entries",
			"Entries currently in the launcher state", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.published
	ch <- c.created
	ch <- c.removed
	ch <- c.modified
	ch <- c.stalls
	ch <- c.droppedOldest
	ch <- c.droppedNewest
	if c.entries != nil {
		ch <- c.entriesDesc
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.counters()
	ch <- prometheus.MustNewConstMetric(c.published, prometheus.CounterValue, float64(s.Published))
	ch <- prometheus.MustNewConstMetric(c.created, prometheus.CounterValue, float64(s.Created))
	ch <- prometheus.MustNewConstMetric(c.removed, prometheus.CounterValue, float64(s.Removed))
	ch <- prometheus.MustNewConstMetric(c.modified, prometheus.CounterValue, float64(s.Modified))
	ch <- prometheus.MustNewConstMetric(c.stalls, prometheus.CounterValue, float64(s.Stalls))
	ch <- prometheus.MustNewConstMetric(c.droppedOldest, prometheus.CounterValue, float64(s.DroppedOldest))
	ch <- prometheus.MustNewConstMetric(c.droppedNewest, prometheus.CounterValue, float64(s.DroppedNewest))
	if c.entries != nil {
		ch <- prometheus.MustNewConstMetric(c.entriesDesc, prometheus.GaugeValue, float64(c.entries()))
	}
}

// Handler serves the given collectors from a private registry.
func Handler(cs ...prometheus.Collector) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(cs...)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr and returns the server so the caller
// can shut it down. Metrics are non-critical, so listen failures are logged
// rather than propagated.
func StartServer(addr string, cs ...prometheus.Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(cs...))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics: server stopped: %v", err)
		}
	}()
	return srv
}

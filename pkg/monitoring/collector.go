package monitoring

import (
	"github.com/giongto35/gfxstate/pkg/state"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is anything reporting state counters, usually a *state.State.
type StatsSource interface {
	Stats() state.Stats
}

// Collector exports the counters of a graphics state. The counters are
// read on every scrape.
type Collector struct {
	src StatsSource

	binds   *prometheus.Desc
	toggles *prometheus.Desc
	uploads *prometheus.Desc
	scrubs  *prometheus.Desc
	objects *prometheus.Desc
}

func NewCollector(src StatsSource, namespace string) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil)
	}
	return &Collector{
		src:     src,
		binds:   desc("binds_total", "Bind requests by result.", "result"),
		toggles: desc("toggles_total", "Fixed-function value requests by result.", "result"),
		uploads: desc("uploads_total", "Buffer and texture uploads."),
		scrubs:  desc("scrubs_total", "Cached bindings forgotten on object deletion."),
		objects: desc("objects_total", "Driver objects by operation.", "op"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.binds
	ch <- c.toggles
	ch <- c.uploads
	ch <- c.scrubs
	ch <- c.objects
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	counter := func(d *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), labels...)
	}
	counter(c.binds, s.BindsIssued, "issued")
	counter(c.binds, s.BindsElided, "elided")
	counter(c.toggles, s.TogglesIssued, "issued")
	counter(c.toggles, s.TogglesElided, "elided")
	counter(c.uploads, s.Uploads)
	counter(c.scrubs, s.Scrubs)
	counter(c.objects, s.Creates, "create")
	counter(c.objects, s.Deletes, "delete")
}

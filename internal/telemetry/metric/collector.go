package metric

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// gaugeCollector reports gauges whose values are sampled at scrape time,
// such as the remote sink queue depth.
type gaugeCollector struct {
	mu     sync.RWMutex
	gauges map[string]sampledGauge
}

type sampledGauge struct {
	desc *prometheus.Desc
	fn   func() float64
}

func newGaugeCollector() *gaugeCollector {
	return &gaugeCollector{gauges: make(map[string]sampledGauge)}
}

// Describe implements prometheus.Collector. The set of gauges grows at
// runtime, so the collector is unchecked and sends no descriptors.
func (c *gaugeCollector) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector.
func (c *gaugeCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.gauges {
		ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, g.fn())
	}
}

// SampleGauge registers a gauge named reqlog_<name> whose value is read
// from fn on every scrape. Registering a name again replaces it.
func (r *Registry) SampleGauge(name, help string, fn func() float64) {
	desc := prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)

	r.gauges.mu.Lock()
	r.gauges.gauges[name] = sampledGauge{desc: desc, fn: fn}
	r.gauges.mu.Unlock()
}

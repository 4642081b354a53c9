package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ZooStats is a snapshot of the zoo's population.
type ZooStats struct {
	Animals            int
	Enclosures         int
	Staff              int
	UnderTreatment     int
	ActiveHealthIssues int
}

// ZooStatsSource produces population snapshots on demand.
type ZooStatsSource interface {
	Stats() ZooStats
}

// ZooCollector exposes zoo population gauges to Prometheus. Values are read
// from the source at scrape time.
type ZooCollector struct {
	source ZooStatsSource

	animals        *prometheus.Desc
	enclosures     *prometheus.Desc
	staff          *prometheus.Desc
	underTreatment *prometheus.Desc
	activeIssues   *prometheus.Desc
}

// NewZooCollector creates a collector labelled with the zoo name.
func NewZooCollector(zooName string, source ZooStatsSource) *ZooCollector {
	labels := prometheus.Labels{"zoo": zooName}

	return &ZooCollector{
		source: source,
		animals: prometheus.NewDesc("zoo_animals",
			"Number of registered animals.", nil, labels),
		enclosures: prometheus.NewDesc("zoo_enclosures",
			"Number of registered enclosures.", nil, labels),
		staff: prometheus.NewDesc("zoo_staff",
			"Number of registered staff members.", nil, labels),
		underTreatment: prometheus.NewDesc("zoo_animals_under_treatment",
			"Number of animals currently under treatment.", nil, labels),
		activeIssues: prometheus.NewDesc("zoo_active_health_issues",
			"Number of unresolved health records across all animals.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *ZooCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.animals
	ch <- c.enclosures
	ch <- c.staff
	ch <- c.underTreatment
	ch <- c.activeIssues
}

// Collect implements prometheus.Collector.
func (c *ZooCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.animals, prometheus.GaugeValue, float64(s.Animals))
	ch <- prometheus.MustNewConstMetric(c.enclosures, prometheus.GaugeValue, float64(s.Enclosures))
	ch <- prometheus.MustNewConstMetric(c.staff, prometheus.GaugeValue, float64(s.Staff))
	ch <- prometheus.MustNewConstMetric(c.underTreatment, prometheus.GaugeValue, float64(s.UnderTreatment))
	ch <- prometheus.MustNewConstMetric(c.activeIssues, prometheus.GaugeValue, float64(s.ActiveHealthIssues))
}

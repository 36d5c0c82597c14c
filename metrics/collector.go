package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aptpod/iomonitor-go/ratecounter"
)

const (
	labelStream    = "stream"
	labelDirection = "direction"

	directionSent     = "sent"
	directionReceived = "received"
)

var _ prometheus.Collector = (*Collector)(nil)

// Collectorは、登録されたProviderのスループットをPrometheusのメトリクスとして公開します。
//
// ストリームごと、方向ごとに個別の系列を出力し、ストリーム間での集計は行いません。
type Collector struct {
	total   *prometheus.Desc
	average *prometheus.Desc
	latest  *prometheus.Desc

	mu        sync.RWMutex
	providers map[string]Provider
}

// NewCollectorは、Collectorを生成します。namespaceはメトリクス名の接頭辞です。
func NewCollector(namespace string) *Collector {
	labels := []string{labelStream, labelDirection}
	return &Collector{
		total: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "bytes_total"),
			"Total bytes transferred through the stream.",
			labels, nil,
		),
		average: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "average_velocity_bytes"),
			"Average bytes per second since the counter was reset.",
			labels, nil,
		),
		latest: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "latest_velocity_bytes"),
			"Bytes per second over the latest update interval.",
			labels, nil,
		),
		providers: map[string]Provider{},
	}
}

// Registerは、idをstreamラベルとしてProviderを登録します。同じidは上書きされます。
func (c *Collector) Register(id string, p Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[id] = p
}

// Unregisterは、Providerの登録を解除します。
func (c *Collector) Unregister(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.providers, id)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.total
	ch <- c.average
	ch <- c.latest
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	ids := make([]string, 0, len(c.providers))
	for id := range c.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	providers := make([]Provider, len(ids))
	for i, id := range ids {
		providers[i] = c.providers[id]
	}
	c.mu.RUnlock()

	for i, p := range providers {
		tp := p.Throughput()
		c.collectSnapshot(ch, ids[i], directionSent, tp.Sent)
		c.collectSnapshot(ch, ids[i], directionReceived, tp.Received)
	}
}

func (c *Collector) collectSnapshot(ch chan<- prometheus.Metric, id, direction string, s ratecounter.Snapshot) {
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.CounterValue, float64(s.Total), id, direction)
	ch <- prometheus.MustNewConstMetric(c.average, prometheus.GaugeValue, float64(s.AverageVelocity), id, direction)
	ch <- prometheus.MustNewConstMetric(c.latest, prometheus.GaugeValue, float64(s.LatestVelocity), id, direction)
}

package report

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/aptpod/iomonitor-go/internal/ch"
	"github.com/aptpod/iomonitor-go/log"
	"github.com/aptpod/iomonitor-go/metrics"
)

// Reportは、ある時点で取得した1つのProviderのスループットです。
type Report struct {
	Name       string
	Time       time.Time
	Throughput metrics.Throughput
}

type source struct {
	name     string
	provider metrics.Provider
}

// Reporterは、登録されたProviderのスループットを定期的に取得し、ログ出力します。
type Reporter struct {
	interval time.Duration
	logger   log.Logger
	reportC  chan<- Report
	clock    clock.Clock

	mu      sync.Mutex
	sources []source
}

// Newは、Reporterを生成します。
func New(c Config) *Reporter {
	return &Reporter{
		interval: c.intervalOrDefault(),
		logger:   c.loggerOrDefault(),
		reportC:  c.Reports,
		clock:    c.clockOrDefault(),
	}
}

// Addは、Providerを名前付きで登録します。Runの実行中でも登録できます。
func (r *Reporter) Add(name string, p metrics.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, source{name: name, provider: p})
}

// Runは、ctxが終了するまで定期的にスループットを取得します。
func (r *Reporter) Run(ctx context.Context) error {
	ctx = log.WithTrackReportID(ctx)
	ticker := r.clock.Ticker(r.interval)
	defer ticker.Stop()

	r.logger.Debugf(ctx, "start reporter: interval[%v]", r.interval)
	defer r.logger.Debugf(ctx, "stop reporter")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		for _, rep := range r.collect() {
			r.output(ctx, rep)
			if r.reportC == nil {
				continue
			}
			if !ch.WriteOrDone(ctx, rep, r.reportC) {
				return nil
			}
		}
	}
}

func (r *Reporter) collect() []Report {
	r.mu.Lock()
	sources := make([]source, len(r.sources))
	copy(sources, r.sources)
	r.mu.Unlock()

	now := r.clock.Now()
	res := make([]Report, 0, len(sources))
	for _, s := range sources {
		res = append(res, Report{
			Name:       s.name,
			Time:       now,
			Throughput: s.provider.Throughput(),
		})
	}
	return res
}

func (r *Reporter) output(ctx context.Context, rep Report) {
	sent, recv := rep.Throughput.Sent, rep.Throughput.Received
	r.logger.Infof(ctx, "%s: sent total[%d] average[%dB/s] latest[%dB/s] received total[%d] average[%dB/s] latest[%dB/s]",
		rep.Name,
		sent.Total, sent.AverageVelocity, sent.LatestVelocity,
		recv.Total, recv.AverageVelocity, recv.LatestVelocity,
	)
}

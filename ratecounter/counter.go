package ratecounter

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/aptpod/iomonitor-go/errors"
)

// DefaultUpdateIntervalは、更新間隔に0以下が指定された場合に使用する直近レートの再計算間隔です。
const DefaultUpdateInterval = time.Second

// Counterは、サンプル数を積算し、累計平均レートと直近レートを算出するカウンターです。
//
// Addはロックを取らずにアトミックに加算するため、複数のゴルーチンから同時に呼び出せます。
// レートの読み出しはAddをブロックしません。
type Counter struct {
	interval time.Duration
	clock    clock.Clock
	origin   time.Time

	total  atomic.Int64
	recent atomic.Int64
	latest atomic.Int64

	// originからの経過ナノ秒
	totalStart  atomic.Int64
	recentStart atomic.Int64
}

// Newは、Counterを生成します。
//
// intervalは直近レートを再計算する最小間隔です。0以下の場合は DefaultUpdateInterval を使用します。
func New(interval time.Duration, opts ...Option) *Counter {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	c := &Counter{
		interval: interval,
		clock:    clock.New(),
	}
	for _, o := range opts {
		o(c)
	}
	c.origin = c.clock.Now()
	return c
}

// Addは、サンプル数nを加算します。
//
// nが0の場合は何もしません。負の値は呼び出し側の契約違反であり、panicします。
func (c *Counter) Add(n int64) {
	if n < 0 {
		panic(errors.Errorf("add %d: %w", n, errors.ErrNegativeCount))
	}
	if n == 0 {
		return
	}
	c.total.Add(n)
	c.recent.Add(n)
}

// Totalは、累計のサンプル数を返却します。
func (c *Counter) Total() int64 {
	return c.total.Load()
}

// Intervalは、直近レートの再計算間隔を返却します。
func (c *Counter) Interval() time.Duration {
	return c.interval
}

// AverageVelocityは、リセット以降の平均レート（サンプル数/秒）を返却します。
//
// 経過時間が1ミリ秒に満たない場合は0を返却します。
func (c *Counter) AverageVelocity() int64 {
	elapsed := time.Duration(c.now() - c.totalStart.Load())
	return velocity(c.total.Load(), elapsed)
}

// LatestVelocityは、直近のレート（サンプル数/秒）を返却します。
//
// 前回の再計算から更新間隔を超えて経過している場合のみ、その間に加算されたサンプル数から
// レートを再計算します。それ以外はキャッシュしている値をそのまま返却します。
func (c *Counter) LatestVelocity() int64 {
	now := c.now()
	last := c.recentStart.Load()
	elapsed := time.Duration(now - last)
	if elapsed <= c.interval {
		return c.latest.Load()
	}
	// 同時に読み出された場合、再計算するのはCASに成功した1つだけ
	if !c.recentStart.CompareAndSwap(last, now) {
		return c.latest.Load()
	}
	v := velocity(c.recent.Swap(0), elapsed)
	c.latest.Store(v)
	return v
}

// Resetは、サンプル数とレートを0に戻し、経過時間の計測を再開します。
//
// ResetはAddと排他されません。Addと同時に呼び出さないでください。
func (c *Counter) Reset() {
	now := c.now()
	c.total.Store(0)
	c.recent.Store(0)
	c.latest.Store(0)
	c.totalStart.Store(now)
	c.recentStart.Store(now)
}

// Snapshotは、現在の累計サンプル数とレートを返却します。
func (c *Counter) Snapshot() Snapshot {
	return Snapshot{
		Total:           c.Total(),
		AverageVelocity: c.AverageVelocity(),
		LatestVelocity:  c.LatestVelocity(),
	}
}

func (c *Counter) now() int64 {
	return int64(c.clock.Since(c.origin))
}

func velocity(count int64, elapsed time.Duration) int64 {
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		return 0
	}
	if count > math.MaxInt64/1000 {
		// count*1000がオーバーフローするため先に除算する
		return count/ms*1000 + count%ms*1000/ms
	}
	return count * 1000 / ms
}

// Snapshotは、ある時点でのカウンターの値です。
type Snapshot struct {
	// Totalは、累計のサンプル数です。
	Total int64
	// AverageVelocityは、累計の平均レート（サンプル数/秒）です。
	AverageVelocity int64
	// LatestVelocityは、直近のレート（サンプル数/秒）です。
	LatestVelocity int64
}

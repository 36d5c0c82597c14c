package stream

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/aptpod/iomonitor-go/log"
	"github.com/aptpod/iomonitor-go/ratecounter"
)

type options struct {
	updateInterval time.Duration
	clock          clock.Clock
	logger         log.Logger
	id             string
	leaveOpen      bool
}

func defaultOptions() options {
	return options{
		updateInterval: ratecounter.DefaultUpdateInterval,
		clock:          clock.New(),
		logger:         log.NewNop(),
	}
}

// Optionは、Streamのオプションです。
type Option func(*options)

// WithUpdateIntervalは、カウンターの直近レートの再計算間隔を設定します。
func WithUpdateInterval(d time.Duration) Option {
	return func(o *options) {
		o.updateInterval = d
	}
}

// WithClockは、カウンターが使用するクロックを設定します。
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}

// WithLoggerは、ロガーを設定します。デフォルトは何も出力しません。
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithIDは、ストリームの識別子を設定します。指定しない場合はUUIDを採番します。
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithLeaveOpenは、Close時に下位ストリームをクローズしないようにします。
func WithLeaveOpen() Option {
	return func(o *options) {
		o.leaveOpen = true
	}
}

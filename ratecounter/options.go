package ratecounter

import "github.com/benbjohnson/clock"

// Optionは、Counterのオプションです。
type Option func(*Counter)

// WithClockは、経過時間の計測に使用するクロックを設定します。
//
// デフォルトは実時間のモノトニッククロックです。
func WithClock(clk clock.Clock) Option {
	return func(c *Counter) {
		c.clock = clk
	}
}

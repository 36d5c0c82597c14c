package report

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/aptpod/iomonitor-go/log"
)

/*
Config は、Reporter に関する設定です。
*/
type Config struct {
	// Interval は、スループットを取得する間隔です。
	// 0 に設定された場合は、 DefaultInterval の値が使用されます。
	Interval time.Duration

	// Logger は、取得したスループットを出力するロガーです。
	// nil の場合は出力しません。
	Logger log.Logger

	// Reports は、取得したスループットの送信先です。
	// nil の場合は送信しません。送信はコンテキストが終了するまでブロックします。
	Reports chan<- Report

	// Clock は、ティッカーに使用するクロックです。
	// nil の場合は実時間のクロックを使用します。
	Clock clock.Clock
}

/*
Config のデフォルト値は以下のように定義されています。
*/
const (
	DefaultInterval = time.Second
)

func (c Config) intervalOrDefault() time.Duration {
	if c.Interval <= 0 {
		return DefaultInterval
	}
	return c.Interval
}

func (c Config) loggerOrDefault() log.Logger {
	if c.Logger == nil {
		return log.NewNop()
	}
	return c.Logger
}

func (c Config) clockOrDefault() clock.Clock {
	if c.Clock == nil {
		return clock.New()
	}
	return c.Clock
}

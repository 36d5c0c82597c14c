package metrics

import "github.com/aptpod/iomonitor-go/ratecounter"

// Throughputは、ストリームの送信方向と受信方向それぞれのカウンターの値です。
type Throughput struct {
	// Sentは、書き込み方向のカウンターの値です。
	Sent ratecounter.Snapshot
	// Receivedは、読み込み方向のカウンターの値です。
	Received ratecounter.Snapshot
}

// Providerは、スループットを取得するためのインターフェースです。
//
// 実装は並行アクセスに対して安全である必要があります。
type Provider interface {
	// Throughputは、現在のスループットを返却します。
	Throughput() Throughput
}

// ProviderFuncは、関数をProviderとして扱うためのアダプターです。
type ProviderFunc func() Throughput

// Throughput implements Provider.
func (f ProviderFunc) Throughput() Throughput {
	return f()
}

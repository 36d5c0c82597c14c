package metrics

var _ Provider = (*noopProvider)(nil)

// noopProvider は Provider の何もしない実装です。
//
// この実装は Null Object Pattern に従い、常にゼロ値を返します。これにより、呼び出し側で nil チェックが不要になります。
type noopProvider struct{}

// NewNopProvider は新しい noopProvider を作成します。
func NewNopProvider() Provider {
	return &noopProvider{}
}

// Throughput always returns the zero value.
func (n *noopProvider) Throughput() Throughput {
	return Throughput{}
}

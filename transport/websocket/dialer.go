package websocket

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/aptpod/iomonitor-go/errors"
	"github.com/aptpod/iomonitor-go/internal/retry"
)

// DialConfigは、WebSocket接続の設定です。
type DialConfig struct {
	// URLは、接続先URLです。 `http(s)://` と `ws(s)://` のどちらも指定できます。
	URL string

	// TokenSourceは、接続時に認証ヘッダーへ設定するトークンの取得元です。
	// nilの場合、認証ヘッダーは設定しません。
	TokenSource oauth2.TokenSource

	// HTTPHeaderは、接続時に追加するHTTPヘッダーです。
	HTTPHeader http.Header

	// TLSConfigは、TLS設定です。
	TLSConfig *tls.Config

	// DialTimeoutは、WebSocket接続のタイムアウトです。
	// 0に設定された場合、タイムアウトは設定されません。
	DialTimeout time.Duration

	// ReadLimitは、受信するメッセージの最大バイト数です。
	// 0に設定された場合、各ライブラリのデフォルト値を使用します。
	ReadLimit int64

	// MaxAttemptsは、 Redial の最大試行回数です。
	// 0に設定された場合、コンテキストが終了するまでリトライします。
	MaxAttempts int

	// RetryIntervalは、 Redial の基準リトライ間隔です。
	// 0に設定された場合、100ミリ秒を使用します。
	RetryInterval time.Duration
}

// DialFuncは、DialConfigに従ってWebSocket接続を確立する関数です。
type DialFunc func(ctx context.Context, c DialConfig) (Conn, error)

// Redialは、接続に成功するまでExponential Backoff and Jitter方式でdialをリトライします。
func Redial(ctx context.Context, c DialConfig, dial DialFunc) (Conn, error) {
	var conn Conn
	r := retry.Retry{
		MaxAttempt:   c.MaxAttempts,
		BaseInterval: c.RetryInterval,
	}
	if err := r.Do(ctx, func(ctx context.Context) error {
		var err error
		conn, err = dial(ctx, c)
		return err
	}); err != nil {
		return nil, err
	}
	return conn, nil
}

// Headerは、接続時に送信するHTTPヘッダーを生成します。
func (c DialConfig) Header() (http.Header, error) {
	header := c.HTTPHeader.Clone()
	if header == nil {
		header = http.Header{}
	}
	if c.TokenSource == nil {
		return header, nil
	}
	tk, err := c.TokenSource.Token()
	if err != nil {
		return nil, errors.Errorf("failed to retrieve token: %w", err)
	}
	header.Set("Authorization", tk.Type()+" "+tk.AccessToken)
	return header, nil
}

// WebSocketURLは、スキームを `ws(s)://` に変換したURLを返却します。
func (c DialConfig) WebSocketURL() string {
	if strings.HasPrefix(c.URL, "http") {
		return strings.Replace(c.URL, "http", "ws", 1)
	}
	return c.URL
}

// Contextは、DialTimeoutを反映したコンテキストを返却します。
func (c DialConfig) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.DialTimeout > 0 {
		return context.WithTimeout(ctx, c.DialTimeout)
	}
	return context.WithCancel(ctx)
}

package gorilla

import (
	"context"
	"net/http/httputil"

	gwebsocket "github.com/gorilla/websocket"

	"github.com/aptpod/iomonitor-go/errors"
	"github.com/aptpod/iomonitor-go/transport/websocket"
)

// Dialは、WebSocketのコネクションを開きます。
func Dial(ctx context.Context, c websocket.DialConfig) (*Conn, error) {
	header, err := c.Header()
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.Context(ctx)
	defer cancel()

	dialer := gwebsocket.Dialer{
		TLSClientConfig:  c.TLSConfig,
		HandshakeTimeout: c.DialTimeout,
	}
	//nolint
	wsconn, resp, err := dialer.DialContext(ctx, c.WebSocketURL(), header)
	if err != nil {
		if resp == nil {
			return nil, err
		}

		dump, _ := httputil.DumpResponse(resp, true)
		return nil, errors.Errorf("dial failed with error response[%s]: %w", dump, err)
	}
	if c.ReadLimit > 0 {
		wsconn.SetReadLimit(c.ReadLimit)
	}
	return New(wsconn), nil
}

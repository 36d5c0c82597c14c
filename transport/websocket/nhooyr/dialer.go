package nhooyr

import (
	"context"
	"net/http"

	nwebsocket "nhooyr.io/websocket"

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

	tr := http.DefaultTransport.(*http.Transport).Clone()
	if c.TLSConfig != nil {
		tr.TLSClientConfig = c.TLSConfig
	}
	dialOpts := nwebsocket.DialOptions{
		HTTPHeader: header,
		HTTPClient: &http.Client{Transport: tr},
	}

	//nolint
	wsconn, _, err := nwebsocket.Dial(ctx, c.WebSocketURL(), &dialOpts)
	if err != nil {
		return nil, err
	}
	if c.ReadLimit > 0 {
		wsconn.SetReadLimit(c.ReadLimit)
	}
	return New(wsconn), nil
}

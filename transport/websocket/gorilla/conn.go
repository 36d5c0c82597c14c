package gorilla

import (
	"context"
	"io"
	"time"

	gwebsocket "github.com/gorilla/websocket"

	"github.com/aptpod/iomonitor-go/transport/websocket"
)

var _ websocket.Conn = (*Conn)(nil)

// closeTimeoutは、Close時にクローズメッセージを送信する際のタイムアウトです。
const closeTimeout = time.Second

// Connは、 gorilla/websocketのConnのラッパーです。
type Conn struct {
	wsconn *gwebsocket.Conn
}

// Newは、Connを返却します。
func New(wsconn *gwebsocket.Conn) *Conn {
	return &Conn{
		wsconn: wsconn,
	}
}

// Pingは、WebSocketのPingを送信します。
func (c *Conn) Ping(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(time.Second)
	}
	return c.wsconn.WriteControl(gwebsocket.PingMessage, []byte{}, deadline)
}

// Readerは、WebSocketのReaderを取得します。
func (c *Conn) Reader(ctx context.Context) (websocket.MessageType, io.Reader, error) {
	tp, rd, err := c.wsconn.NextReader()
	if err != nil {
		return 0, nil, err
	}
	switch tp {
	case gwebsocket.TextMessage:
		return websocket.MessageText, rd, nil
	default:
		return websocket.MessageBinary, rd, nil
	}
}

// Writerは、WebSocketのWriterを取得します。
func (c *Conn) Writer(ctx context.Context, tp websocket.MessageType) (io.WriteCloser, error) {
	switch tp {
	case websocket.MessageText:
		return c.wsconn.NextWriter(gwebsocket.TextMessage)
	default:
		return c.wsconn.NextWriter(gwebsocket.BinaryMessage)
	}
}

// Closeは、正常終了のクローズメッセージを送信し、WebSocketをクローズします。
func (c *Conn) Close() error {
	msg := gwebsocket.FormatCloseMessage(gwebsocket.CloseNormalClosure, "")
	if err := c.wsconn.WriteControl(gwebsocket.CloseMessage, msg, time.Now().Add(closeTimeout)); err != nil && err != gwebsocket.ErrCloseSent {
		c.wsconn.Close()
		return err
	}
	return c.wsconn.Close()
}

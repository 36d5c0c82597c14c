package websocket

import (
	"context"
	"io"

	"github.com/aptpod/iomonitor-go/stream"
)

// MessageTypeは、WebSocketのメッセージタイプを表します。
type MessageType int

const (
	MessageText   MessageType = iota + 1 // テキストメッセージ
	MessageBinary                        // バイナリメッセージ
)

// Connは、WebSocketのコネクションインターフェースです。
//
// gorilla、nhooyrパッケージがgorilla/websocket、nhooyr.io/websocketを使用した実装を提供します。
type Conn interface {
	// Closeは、コネクションを正常終了のステータスでクローズします。
	Close() error

	// Pingは、Pingを送信します。
	Ping(context.Context) error

	// Readerは、次に受信するWebSocketメッセージのReaderを返却します。
	Reader(context.Context) (MessageType, io.Reader, error)

	// Writerは、WebSocketメッセージのWriterを返却します。Closeでメッセージの送信が完了します。
	Writer(context.Context, MessageType) (io.WriteCloser, error)
}

var _ stream.Capabilities = (*Stream)(nil)

// Streamは、メッセージ単位のWebSocketコネクションをバイトストリームとして扱うアダプターです。
//
// Writeの呼び出し1回が1つのバイナリメッセージになります。Readは受信したメッセージを順に読み出し、
// メッセージの境界は保持しません。相手側が正常にクローズした場合、Readは io.EOF を返却します。
//
// Read同士、Write同士の並行呼び出しには対応していません。ReadとWriteは並行して呼び出せます。
type Stream struct {
	ctx  context.Context
	conn Conn
	rd   io.Reader
}

// NewStreamは、Streamを生成します。ctxは内部のメッセージの読み書きに使用します。
func NewStream(ctx context.Context, conn Conn) *Stream {
	return &Stream{
		ctx:  ctx,
		conn: conn,
	}
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if s.rd == nil {
			_, rd, err := s.conn.Reader(s.ctx)
			if err != nil {
				if isErrTransportClosed(err) {
					return 0, io.EOF
				}
				return 0, err
			}
			s.rd = rd
		}
		n, err := s.rd.Read(p)
		if err == io.EOF {
			s.rd = nil
			if n == 0 {
				continue
			}
			return n, nil
		}
		return n, err
	}
}

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	wr, err := s.conn.Writer(s.ctx, MessageBinary)
	if err != nil {
		return 0, err
	}
	n, err := wr.Write(p)
	if err != nil {
		wr.Close()
		return n, err
	}
	if err := wr.Close(); err != nil {
		return 0, err
	}
	return n, nil
}

// Closeは、WebSocketコネクションをクローズします。
func (s *Stream) Close() error {
	return s.conn.Close()
}

// CanRead implements stream.Capabilities.
func (s *Stream) CanRead() bool { return true }

// CanWrite implements stream.Capabilities.
func (s *Stream) CanWrite() bool { return true }

// CanSeekは、シークできないため常にfalseを返却します。
func (s *Stream) CanSeek() bool { return false }

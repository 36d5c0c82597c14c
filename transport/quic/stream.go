package quic

import (
	"context"
	"crypto/tls"

	quic "github.com/quic-go/quic-go"

	"github.com/aptpod/iomonitor-go/stream"
)

// NextProtoは、TLSConfig.NextProtosが未指定の場合に使用するALPNです。
const NextProto = "iomonitor"

var _ stream.Capabilities = (*Stream)(nil)

// Streamは、QUICの双方向ストリームです。Closeでストリームとコネクションの両方をクローズします。
type Stream struct {
	quic.Stream
	conn quic.Connection
}

// Closeは、ストリームの送信側をクローズした後、コネクションをクローズします。
func (s *Stream) Close() error {
	err := s.Stream.Close()
	if cerr := s.conn.CloseWithError(0, ""); err == nil {
		err = cerr
	}
	return err
}

// Connectionは、ストリームが属するQUICコネクションを返却します。
func (s *Stream) Connection() quic.Connection {
	return s.conn
}

// CanRead implements stream.Capabilities.
func (s *Stream) CanRead() bool { return true }

// CanWrite implements stream.Capabilities.
func (s *Stream) CanWrite() bool { return true }

// CanSeekは、シークできないため常にfalseを返却します。
func (s *Stream) CanSeek() bool { return false }

// DialerConfigは、Dialの設定です。
type DialerConfig struct {
	// TLSConfigは、TLS接続の設定です。
	//
	// NextProtosが空の場合、 NextProto を設定します。
	TLSConfig *tls.Config

	// QUICConfigは、QUICの設定です。nilの場合はquic-goのデフォルト値を使用します。
	QUICConfig *quic.Config

	// StreamOptionsは、生成するstream.Streamのオプションです。
	StreamOptions []stream.Option
}

func (c DialerConfig) tlsConfigOrDefault() *tls.Config {
	var res *tls.Config
	if c.TLSConfig == nil {
		res = &tls.Config{}
	} else {
		res = c.TLSConfig.Clone()
	}
	if len(res.NextProtos) == 0 {
		res.NextProtos = []string{NextProto}
	}
	return res
}

// Dialは、QUICコネクションを開き、最初の双方向ストリームを計測対象としてラップします。
func Dial(ctx context.Context, addr string, c DialerConfig) (*stream.Stream, error) {
	conn, err := quic.DialAddr(ctx, addr, c.tlsConfigOrDefault(), c.QUICConfig)
	if err != nil {
		return nil, err
	}
	s, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(0, "")
		return nil, err
	}
	return stream.New(&Stream{Stream: s, conn: conn}, c.StreamOptions...), nil
}

// Acceptは、QUICコネクションを受け付け、相手側が開いた最初の双方向ストリームを計測対象としてラップします。
//
// 相手側がストリームにデータを書き込むまで、ストリームは受け付けられません。
func Accept(ctx context.Context, ln *quic.Listener, opts ...stream.Option) (*stream.Stream, error) {
	conn, err := ln.Accept(ctx)
	if err != nil {
		return nil, err
	}
	s, err := conn.AcceptStream(ctx)
	if err != nil {
		conn.CloseWithError(0, "")
		return nil, err
	}
	return stream.New(&Stream{Stream: s, conn: conn}, opts...), nil
}

// Listenは、QUICのリスナーを開きます。NextProtosが空の場合、 NextProto を設定します。
func Listen(addr string, tlsConf *tls.Config, quicConf *quic.Config) (*quic.Listener, error) {
	return quic.ListenAddr(addr, DialerConfig{TLSConfig: tlsConf}.tlsConfigOrDefault(), quicConf)
}

package stream

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/aptpod/iomonitor-go/errors"
	"github.com/aptpod/iomonitor-go/internal/xio"
	"github.com/aptpod/iomonitor-go/log"
	"github.com/aptpod/iomonitor-go/metrics"
	"github.com/aptpod/iomonitor-go/ratecounter"
)

var _ metrics.Provider = (*Stream)(nil)

// Streamは、下位ストリームへの操作をそのまま委譲し、読み書きしたバイト数を計測するラッパーです。
//
// 下位ストリームが返却したエラーはラップせずにそのまま返却します。
type Stream struct {
	rw   io.ReadWriter
	base any

	canRead  bool
	canWrite bool

	sent     *ratecounter.Counter
	received *ratecounter.Counter

	id        string
	ctx       context.Context
	logger    log.Logger
	leaveOpen bool
}

// Newは、読み書き可能なストリームをラップします。
func New(rw io.ReadWriter, opts ...Option) *Stream {
	return newStream(rw, rw, true, true, opts)
}

// NewReaderは、読み込みのみ可能なストリームをラップします。
//
// 書き込み系の操作は errors.ErrUnsupported を返却します。
func NewReader(r io.Reader, opts ...Option) *Stream {
	return newStream(xio.ReadOnly{Reader: r}, r, true, false, opts)
}

// NewWriterは、書き込みのみ可能なストリームをラップします。
//
// 読み込み系の操作は errors.ErrUnsupported を返却します。
func NewWriter(w io.Writer, opts ...Option) *Stream {
	return newStream(xio.WriteOnly{Writer: w}, w, false, true, opts)
}

func newStream(rw io.ReadWriter, base any, canRead, canWrite bool, opts []Option) *Stream {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	return &Stream{
		rw:        rw,
		base:      base,
		canRead:   canRead,
		canWrite:  canWrite,
		sent:      ratecounter.New(o.updateInterval, ratecounter.WithClock(o.clock)),
		received:  ratecounter.New(o.updateInterval, ratecounter.WithClock(o.clock)),
		id:        o.id,
		ctx:       log.WithTrackStreamID(context.Background(), o.id),
		logger:    o.logger,
		leaveOpen: o.leaveOpen,
	}
}

// Readは、下位ストリームから読み込みます。
//
// 読み込んだバイト数が1以上の場合、エラーの有無にかかわらず受信カウンターに加算します。
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.rw.Read(p)
	if n > 0 {
		s.received.Add(int64(n))
	}
	return n, err
}

// Writeは、下位ストリームへ書き込みます。
//
// 書き込みが成功した場合のみ送信カウンターに加算します。失敗した場合、カウンターは変化しません。
func (s *Stream) Write(p []byte) (int, error) {
	n, err := s.rw.Write(p)
	if err != nil {
		return n, err
	}
	if n > 0 {
		s.sent.Add(int64(n))
	}
	return n, nil
}

// Seek implements io.Seeker.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	sk, ok := s.base.(io.Seeker)
	if !ok {
		return 0, errors.ErrUnsupported
	}
	return sk.Seek(offset, whence)
}

// Positionは、下位ストリームの現在のオフセットを返却します。
func (s *Stream) Position() (int64, error) {
	sk, ok := s.base.(io.Seeker)
	if !ok {
		return 0, errors.ErrUnsupported
	}
	return xio.Position(sk)
}

// SetPositionは、下位ストリームのオフセットを先頭からposの位置に設定します。
func (s *Stream) SetPosition(pos int64) error {
	_, err := s.Seek(pos, io.SeekStart)
	return err
}

// Lengthは、下位ストリームの長さを返却します。
func (s *Stream) Length() (int64, error) {
	sk, ok := s.base.(io.Seeker)
	if !ok {
		return 0, errors.ErrUnsupported
	}
	return xio.Length(sk)
}

// SetLengthは、下位ストリームの長さを変更します。
func (s *Stream) SetLength(size int64) error {
	tr, ok := s.base.(Truncater)
	if !ok {
		return errors.ErrUnsupported
	}
	return tr.Truncate(size)
}

// Flushは、下位ストリームが Flusher を実装している場合に委譲します。実装していない場合は何もしません。
func (s *Stream) Flush() error {
	f, ok := s.base.(Flusher)
	if !ok {
		return nil
	}
	return f.Flush()
}

// CanReadは、読み込み可能な場合にtrueを返却します。
func (s *Stream) CanRead() bool {
	if c, ok := s.base.(Capabilities); ok {
		return s.canRead && c.CanRead()
	}
	return s.canRead
}

// CanWriteは、書き込み可能な場合にtrueを返却します。
func (s *Stream) CanWrite() bool {
	if c, ok := s.base.(Capabilities); ok {
		return s.canWrite && c.CanWrite()
	}
	return s.canWrite
}

// CanSeekは、下位ストリームが io.Seeker を実装し、シーク可能な場合にtrueを返却します。
func (s *Stream) CanSeek() bool {
	if _, ok := s.base.(io.Seeker); !ok {
		return false
	}
	if c, ok := s.base.(Capabilities); ok {
		return c.CanSeek()
	}
	return true
}

// Closeは、下位ストリームが io.Closer を実装している場合にクローズします。
//
// WithLeaveOpen を指定した場合、下位ストリームはクローズしません。
func (s *Stream) Close() error {
	s.logger.Debugf(s.ctx, "close stream: sent[%d] received[%d]", s.sent.Total(), s.received.Total())
	if s.leaveOpen {
		return nil
	}
	c, ok := s.base.(io.Closer)
	if !ok {
		return nil
	}
	return c.Close()
}

// Resetは、送信・受信カウンターをリセットします。
//
// カウンターのリセットは読み書きと排他されないため、ストリームがアイドル状態の時に呼び出してください。
func (s *Stream) Reset() {
	s.logger.Debugf(s.ctx, "reset counters: sent[%d] received[%d]", s.sent.Total(), s.received.Total())
	s.sent.Reset()
	s.received.Reset()
}

// Sentは、書き込み方向のカウンターを返却します。
func (s *Stream) Sent() *ratecounter.Counter {
	return s.sent
}

// Receivedは、読み込み方向のカウンターを返却します。
func (s *Stream) Received() *ratecounter.Counter {
	return s.received
}

// IDは、ストリームの識別子を返却します。
func (s *Stream) ID() string {
	return s.id
}

// Unwrapは、下位ストリームを返却します。
func (s *Stream) Unwrap() any {
	return s.base
}

// Throughput implements metrics.Provider.
func (s *Stream) Throughput() metrics.Throughput {
	return metrics.Throughput{
		Sent:     s.sent.Snapshot(),
		Received: s.received.Snapshot(),
	}
}

package stream_test

import (
	"bytes"
	"io"
	stdlog "log"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/mattetti/filebuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/aptpod/iomonitor-go/errors"
	"github.com/aptpod/iomonitor-go/log"
	"github.com/aptpod/iomonitor-go/metrics"
	"github.com/aptpod/iomonitor-go/ratecounter"
	. "github.com/aptpod/iomonitor-go/stream"
	"github.com/aptpod/iomonitor-go/stream/streammock"
)

var errBoom = errors.New("boom")

func payload(n int) []byte {
	res := make([]byte, n)
	for i := range res {
		res[i] = byte(i % 251)
	}
	return res
}

func TestStream_RoundTrip(t *testing.T) {
	msg := payload(500)

	buf := filebuffer.New(nil)
	testee := New(buf)

	n, err := testee.Write(msg)
	require.NoError(t, err)
	require.Equal(t, 500, n)

	require.NoError(t, testee.SetPosition(0))
	got := make([]byte, 500)
	_, err = io.ReadFull(testee, got)
	require.NoError(t, err)

	assert.Equal(t, msg, got)
	assert.Equal(t, int64(500), testee.Sent().Total())
	assert.Equal(t, int64(500), testee.Received().Total())

	length, err := testee.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(500), length)
	pos, err := testee.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(500), pos)

	direct := filebuffer.New(nil)
	_, err = direct.Write(msg)
	require.NoError(t, err)
	assert.Equal(t, direct.Bytes(), buf.Bytes())
}

func TestStream_Write_ZeroLength(t *testing.T) {
	var buf bytes.Buffer
	testee := New(&buf)

	n, err := testee.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = testee.Write([]byte{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, testee.Sent().Total())
}

func TestStream_Read_EOF(t *testing.T) {
	var buf bytes.Buffer
	testee := New(&buf)

	n, err := testee.Read(make([]byte, 16))
	assert.Zero(t, n)
	assert.Equal(t, io.EOF, err)
	assert.Zero(t, testee.Received().Total())
}

func TestStream_Read_DataWithEOF(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := streammock.NewMockFile(ctrl)
	f.EXPECT().Read(gomock.Any()).Return(3, io.EOF)

	testee := New(f)
	n, err := testee.Read(make([]byte, 8))
	assert.Equal(t, 3, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(3), testee.Received().Total())
}

func TestStream_PropagatesErrors(t *testing.T) {
	tests := []struct {
		name string
		prep func(f *streammock.MockFile)
		call func(s *Stream) error
	}{
		{
			name: "write",
			prep: func(f *streammock.MockFile) { f.EXPECT().Write(gomock.Any()).Return(0, errBoom) },
			call: func(s *Stream) error { _, err := s.Write([]byte("abc")); return err },
		},
		{
			name: "partial write",
			prep: func(f *streammock.MockFile) { f.EXPECT().Write(gomock.Any()).Return(2, errBoom) },
			call: func(s *Stream) error { _, err := s.Write([]byte("abc")); return err },
		},
		{
			name: "read",
			prep: func(f *streammock.MockFile) { f.EXPECT().Read(gomock.Any()).Return(0, errBoom) },
			call: func(s *Stream) error { _, err := s.Read(make([]byte, 3)); return err },
		},
		{
			name: "seek",
			prep: func(f *streammock.MockFile) { f.EXPECT().Seek(int64(10), io.SeekStart).Return(int64(0), errBoom) },
			call: func(s *Stream) error { return s.SetPosition(10) },
		},
		{
			name: "position",
			prep: func(f *streammock.MockFile) { f.EXPECT().Seek(int64(0), io.SeekCurrent).Return(int64(0), errBoom) },
			call: func(s *Stream) error { _, err := s.Position(); return err },
		},
		{
			name: "length",
			prep: func(f *streammock.MockFile) {
				gomock.InOrder(
					f.EXPECT().Seek(int64(0), io.SeekCurrent).Return(int64(4), nil),
					f.EXPECT().Seek(int64(0), io.SeekEnd).Return(int64(0), errBoom),
				)
			},
			call: func(s *Stream) error { _, err := s.Length(); return err },
		},
		{
			name: "set length",
			prep: func(f *streammock.MockFile) { f.EXPECT().Truncate(int64(7)).Return(errBoom) },
			call: func(s *Stream) error { return s.SetLength(7) },
		},
		{
			name: "flush",
			prep: func(f *streammock.MockFile) { f.EXPECT().Flush().Return(errBoom) },
			call: func(s *Stream) error { return s.Flush() },
		},
		{
			name: "close",
			prep: func(f *streammock.MockFile) { f.EXPECT().Close().Return(errBoom) },
			call: func(s *Stream) error { return s.Close() },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := streammock.NewMockFile(ctrl)
			tt.prep(f)

			testee := New(f)
			err := tt.call(testee)
			assert.True(t, err == errBoom, "error must not be wrapped: %v", err)
			assert.Zero(t, testee.Sent().Total())
			assert.Zero(t, testee.Received().Total())
		})
	}
}

func TestStream_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := streammock.NewMockFile(ctrl)
	gomock.InOrder(
		f.EXPECT().Write([]byte("abc")).Return(3, nil),
		f.EXPECT().Flush().Return(nil),
		f.EXPECT().Truncate(int64(2)).Return(nil),
		f.EXPECT().Seek(int64(1), io.SeekStart).Return(int64(1), nil),
		f.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, "b"), nil
		}),
		f.EXPECT().Close().Return(nil),
	)

	testee := New(f)
	assert.True(t, testee.CanRead())
	assert.True(t, testee.CanWrite())
	assert.True(t, testee.CanSeek())

	_, err := testee.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, testee.Flush())
	require.NoError(t, testee.SetLength(2))
	off, err := testee.Seek(1, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), off)
	p := make([]byte, 4)
	n, err := testee.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "b", string(p[:n]))
	require.NoError(t, testee.Close())

	assert.Equal(t, int64(3), testee.Sent().Total())
	assert.Equal(t, int64(1), testee.Received().Total())
	assert.Same(t, f, testee.Unwrap())
}

func TestStream_LeaveOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := streammock.NewMockFile(ctrl)

	testee := New(f, WithLeaveOpen())
	require.NoError(t, testee.Close())
}

func TestStream_Capabilities(t *testing.T) {
	ctrl := gomock.NewController(t)
	caps := streammock.NewMockCapabilities(ctrl)
	caps.EXPECT().CanRead().Return(true)
	caps.EXPECT().CanWrite().Return(false)
	caps.EXPECT().CanSeek().Return(false)

	testee := New(struct {
		*streammock.MockFile
		*streammock.MockCapabilities
	}{streammock.NewMockFile(ctrl), caps})
	assert.True(t, testee.CanRead())
	assert.False(t, testee.CanWrite())
	assert.False(t, testee.CanSeek())
}

func TestNewReader(t *testing.T) {
	testee := NewReader(strings.NewReader("hello"))
	assert.True(t, testee.CanRead())
	assert.False(t, testee.CanWrite())
	assert.True(t, testee.CanSeek())

	n, err := testee.Write([]byte("x"))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, errors.ErrUnsupported)
	assert.ErrorIs(t, testee.SetLength(0), errors.ErrUnsupported)
	assert.NoError(t, testee.Flush())

	length, err := testee.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(5), length)

	got, err := io.ReadAll(testee)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	assert.Equal(t, int64(5), testee.Received().Total())
	assert.Zero(t, testee.Sent().Total())
	assert.NoError(t, testee.Close())
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	testee := NewWriter(&buf)
	assert.False(t, testee.CanRead())
	assert.True(t, testee.CanWrite())
	assert.False(t, testee.CanSeek())

	n, err := testee.Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, errors.ErrUnsupported)

	_, err = testee.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, errors.ErrUnsupported)
	_, err = testee.Position()
	assert.ErrorIs(t, err, errors.ErrUnsupported)
	_, err = testee.Length()
	assert.ErrorIs(t, err, errors.ErrUnsupported)
	assert.ErrorIs(t, testee.SetPosition(0), errors.ErrUnsupported)

	_, err = io.Copy(testee, strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
	assert.Equal(t, int64(5), testee.Sent().Total())
	assert.Zero(t, testee.Received().Total())
}

func TestStream_ResetAndThroughput(t *testing.T) {
	clk := clock.NewMock()
	var buf bytes.Buffer
	testee := New(&buf, WithClock(clk), WithUpdateInterval(100*time.Millisecond))

	_, err := testee.Write(payload(1000))
	require.NoError(t, err)
	_, err = io.ReadFull(testee, make([]byte, 500))
	require.NoError(t, err)
	clk.Add(time.Second)

	assert.Equal(t, metrics.Throughput{
		Sent:     ratecounter.Snapshot{Total: 1000, AverageVelocity: 1000, LatestVelocity: 1000},
		Received: ratecounter.Snapshot{Total: 500, AverageVelocity: 500, LatestVelocity: 500},
	}, testee.Throughput())

	testee.Reset()
	assert.Equal(t, metrics.Throughput{}, testee.Throughput())
	assert.Equal(t, 500, buf.Len(), "reset does not touch the underlying stream")

	_, err = testee.Write(payload(10))
	require.NoError(t, err)
	assert.Equal(t, int64(10), testee.Sent().Total())
}

func TestStream_ID(t *testing.T) {
	assert.Equal(t, "s1", New(&bytes.Buffer{}, WithID("s1")).ID())
	a, b := New(&bytes.Buffer{}), New(&bytes.Buffer{})
	assert.Len(t, a.ID(), 36)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestStream_Logger(t *testing.T) {
	var out bytes.Buffer
	testee := New(&bytes.Buffer{},
		WithID("s1"),
		WithLogger(log.NewStdWith(stdlog.New(&out, "", 0))),
	)
	_, err := testee.Write([]byte("abc"))
	require.NoError(t, err)
	testee.Reset()
	require.NoError(t, testee.Close())

	assert.Equal(t,
		"DEBUG: track-stream-id:s1\treset counters: sent[3] received[0]\n"+
			"DEBUG: track-stream-id:s1\tclose stream: sent[0] received[0]\n",
		out.String())
}

func TestStream_ConcurrentWrite(t *testing.T) {
	const (
		writers   = 16
		perWriter = 1000
	)
	testee := NewWriter(io.Discard)

	var eg errgroup.Group
	for i := 0; i < writers; i++ {
		eg.Go(func() error {
			for j := 0; j < perWriter; j++ {
				if _, err := testee.Write([]byte{1}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, int64(writers*perWriter), testee.Sent().Total())
}

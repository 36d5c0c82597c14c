package log_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"

	. "github.com/aptpod/iomonitor-go/log"
	"github.com/stretchr/testify/require"
)

func Test_stdLogger(t *testing.T) {
	testee := NewStd()
	ctx := context.Background()
	require.NotPanics(t, func() { testee.Infof(ctx, "message") })
	require.NotPanics(t, func() { testee.Warnf(ctx, "message") })
	require.NotPanics(t, func() { testee.Errorf(ctx, "message") })
	require.NotPanics(t, func() { testee.Debugf(ctx, "message") })
}

func Example_stdLogger() {
	ctx := context.Background()
	testee := NewStd()
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Lshortfile)
	testee.Infof(ctx, "message %s", "info")
	testee.Warnf(ctx, "message %s", "warn")
	testee.Errorf(ctx, "message %s", "error")
	testee.Debugf(ctx, "message %s", "debug")

	// Output:
	// logger_std_test.go:27: INFO: message info
	// logger_std_test.go:28: WARN: message warn
	// logger_std_test.go:29: ERROR: message error
	// logger_std_test.go:30: DEBUG: message debug
}

func Example_stdLoggerWithTrackStreamID() {
	ctx := WithTrackStreamID(context.Background(), "7e0f")
	testee := NewStdWith(log.New(os.Stdout, "", 0))
	testee.Infof(ctx, "sent %d bytes", 500)

	// Output:
	// INFO: track-stream-id:7e0f	sent 500 bytes
}

func Test_stdLogger_TrackStreamIDWithVerb(t *testing.T) {
	var out bytes.Buffer
	ctx := WithTrackStreamID(context.Background(), "upload-50%")
	testee := NewStdWith(log.New(&out, "", 0))
	testee.Debugf(ctx, "reset counters: sent[%d] received[%d]", 1, 2)
	require.Equal(t, "DEBUG: track-stream-id:upload-50%\treset counters: sent[1] received[2]\n", out.String())
}

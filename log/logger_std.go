package log

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type stdLogger struct {
	l *log.Logger
}

func (l *stdLogger) Infof(ctx context.Context, format string, args ...any) {
	outputLogf(ctx, l.l, "INFO", format, args...)
}

func (l *stdLogger) Warnf(ctx context.Context, format string, args ...any) {
	outputLogf(ctx, l.l, "WARN", format, args...)
}

func (l *stdLogger) Errorf(ctx context.Context, format string, args ...any) {
	outputLogf(ctx, l.l, "ERROR", format, args...)
}

func (l *stdLogger) Debugf(ctx context.Context, format string, args ...any) {
	outputLogf(ctx, l.l, "DEBUG", format, args...)
}

func outputLogf(ctx context.Context, l *log.Logger, prefix, format string, args ...any) {
	b := strings.Builder{}
	sID := TrackStreamID(ctx)
	if sID != "" {
		b.WriteString("track-stream-id:" + sID + "\t")
	}
	rID := TrackReportID(ctx)
	if rID != "" {
		b.WriteString("track-report-id:" + rID + "\t")
	}
	l.Output(3, fmt.Sprintf("%s: %s%s", prefix, b.String(), fmt.Sprintf(format, args...)))
}

// NewStdは、`log` パッケージのロガーを返却します。
func NewStd() Logger {
	return &stdLogger{
		l: log.Default(),
	}
}

// NewStdWithは、指定した `log.Logger` を使用するロガーを返却します。
func NewStdWith(l *log.Logger) Logger {
	return &stdLogger{
		l: l,
	}
}

package log

import (
	"context"

	"go.uber.org/zap"
)

type zapLogger struct {
	l *zap.SugaredLogger
}

func (l *zapLogger) Infof(ctx context.Context, format string, args ...any) {
	l.with(ctx).Infof(format, args...)
}

func (l *zapLogger) Warnf(ctx context.Context, format string, args ...any) {
	l.with(ctx).Warnf(format, args...)
}

func (l *zapLogger) Errorf(ctx context.Context, format string, args ...any) {
	l.with(ctx).Errorf(format, args...)
}

func (l *zapLogger) Debugf(ctx context.Context, format string, args ...any) {
	l.with(ctx).Debugf(format, args...)
}

func (l *zapLogger) with(ctx context.Context) *zap.SugaredLogger {
	res := l.l
	if id := TrackStreamID(ctx); id != "" {
		res = res.With("track_stream_id", id)
	}
	if id := TrackReportID(ctx); id != "" {
		res = res.With("track_report_id", id)
	}
	return res
}

// NewZapは、zapのロガーを使用するロガーを返却します。
//
// コンテキストにセットされたトラックIDは構造化フィールドとして出力します。
func NewZap(l *zap.Logger) Logger {
	return &zapLogger{
		l: l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

package log

import (
	"context"
	"fmt"
	"math/rand"
)

// Loggerは、iomonitor-go内で使用するロガーインターフェースです。
type Logger interface {
	Infof(context.Context, string, ...interface{})
	Warnf(context.Context, string, ...interface{})
	Errorf(context.Context, string, ...interface{})
	Debugf(context.Context, string, ...interface{})
}

var (
	trackStreamIDKey = "trackStreamIDKey"
	trackReportIDKey = "trackReportIDKey"
)

// WithTrackStreamIDは、ストリームIDをコンテキストにセットします。
//
// ストリームIDはストリームのラップ時に決定されます。
// ここで設定されたストリームIDは常にログ出力します。
func WithTrackStreamID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, &trackStreamIDKey, id)
}

// TrackStreamIDは、コンテキストにセットされたストリームIDを取得します。
func TrackStreamID(ctx context.Context) string {
	v, ok := ctx.Value(&trackStreamIDKey).(string)
	if !ok {
		return ""
	}
	return v
}

// WithTrackReportIDは、新たにレポートIDを採番しコンテキストにセットします。
//
// レポートIDはレポーターの起動ごとに採番します。
func WithTrackReportID(ctx context.Context) context.Context {
	return context.WithValue(ctx, &trackReportIDKey, genTrackID())
}

// TrackReportIDは、コンテキストにセットされたレポートIDを取得します。
func TrackReportID(ctx context.Context) string {
	v, ok := ctx.Value(&trackReportIDKey).(string)
	if !ok {
		return ""
	}
	return v
}

func genTrackID() string {
	return fmt.Sprintf("%04d-%04d-%04d", rand.Int31n(10000), rand.Int31n(10000), rand.Int31n(10000))
}

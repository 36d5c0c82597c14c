package log

import "context"

var _ Logger = nopLogger{}

// nopLoggerは、全てのログを破棄します。ストリームとレポーターのデフォルトのロガーです。
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}
func (nopLogger) Debugf(context.Context, string, ...any) {}

// NewNopは、何も出力しないロガーを返却します。
func NewNop() Logger {
	return nopLogger{}
}

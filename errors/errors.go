package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrIOMonitorは、iomonitorライブラリで定義されている基底エラーです。
	ErrIOMonitor = errors.New("iomonitor")
	// ErrUnsupportedは、下位ストリームが持たない機能を呼び出した場合のエラーです。
	ErrUnsupported = fmt.Errorf("unsupported stream operation: %w", ErrIOMonitor)
	// ErrNegativeCountは、カウンターに負のサンプル数を加算しようとした場合のエラーです。
	ErrNegativeCount = fmt.Errorf("negative sample count: %w", ErrIOMonitor)
)

func New(text string) error {
	return errors.New(text)
}

func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

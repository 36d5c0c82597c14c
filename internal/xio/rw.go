package xio

import (
	"io"

	"github.com/aptpod/iomonitor-go/errors"
)

// ReadOnlyは、読み込みのみ可能な io.ReadWriter です。Writeは常に errors.ErrUnsupported を返却します。
type ReadOnly struct {
	io.Reader
}

func (ReadOnly) Write([]byte) (int, error) {
	return 0, errors.ErrUnsupported
}

// WriteOnlyは、書き込みのみ可能な io.ReadWriter です。Readは常に errors.ErrUnsupported を返却します。
type WriteOnly struct {
	io.Writer
}

func (WriteOnly) Read([]byte) (int, error) {
	return 0, errors.ErrUnsupported
}

// Positionは、現在のオフセットを返却します。
func Position(s io.Seeker) (int64, error) {
	return s.Seek(0, io.SeekCurrent)
}

// Lengthは、末尾までシークしてストリーム長を取得し、元のオフセットに戻します。
func Length(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

package ch

import "context"

// WriteOrDoneは、ctxが終了するまでcへの送信を試みます。送信できた場合はtrueを返却します。
func WriteOrDone[T any](ctx context.Context, v T, c chan<- T) bool {
	select {
	case c <- v:
		return true
	case <-ctx.Done():
		return false
	}
}


package websocket

import (
	"io"
	"net"
	"os"
	"syscall"

	gwebsocket "github.com/gorilla/websocket"
	nwebsocket "nhooyr.io/websocket"

	"github.com/aptpod/iomonitor-go/errors"
)

// isErrTransportClosedは、相手側からの正常なクローズ、または既に切断済みであることを表すエラーかどうかを判定します。
func isErrTransportClosed(err error) bool {
	if err, ok := err.(*net.OpError); ok {
		if errors.Is(err, syscall.EPIPE) {
			return true
		}
		if err, ok := err.Unwrap().(*os.SyscallError); ok {
			return err.Unwrap().Error() == "connection reset by peer"
		}
		return err.Unwrap().Error() == "use of closed network connection"
	}

	switch nwebsocket.CloseStatus(err) {
	case nwebsocket.StatusNormalClosure, nwebsocket.StatusGoingAway:
		return true
	}
	if gwebsocket.IsCloseError(err, gwebsocket.CloseNormalClosure, gwebsocket.CloseGoingAway) {
		return true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, gwebsocket.ErrCloseSent) {
		return true
	}
	return false
}

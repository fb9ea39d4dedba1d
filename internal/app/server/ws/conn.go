package ws

import (
	"context"
	"huddle/internal/config"
	"huddle/pkg/logging"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket wraps a gorilla connection with deadlines and keepalive. Writes
// are serialized; reads happen only in ReadLoop.
type WebSocket struct {
	*websocket.Conn
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     config.SocketConfig
	log     *slog.Logger
	writeMu sync.Mutex
}

func NewWebSocket(parent context.Context, log *slog.Logger, conn *websocket.Conn, cfg config.SocketConfig) *WebSocket {
	ctx, cancel := context.WithCancel(parent)
	return &WebSocket{Conn: conn, ctx: ctx, cancel: cancel, cfg: cfg, log: log}
}

func (w *WebSocket) WriteMessage(data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	_ = w.Conn.SetWriteDeadline(time.Now().Add(w.cfg.WriteWait))
	return w.Conn.WriteMessage(websocket.TextMessage, data)
}

func (w *WebSocket) Ping() error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	_ = w.Conn.SetWriteDeadline(time.Now().Add(w.cfg.WriteWait))
	return w.Conn.WriteMessage(websocket.PingMessage, nil)
}

// ReadLoop blocks until the peer goes away or the connection is closed,
// handing every non-empty text frame to onMsg.
func (w *WebSocket) ReadLoop(onMsg func([]byte)) {
	defer w.Close()

	w.Conn.SetReadLimit(w.cfg.ReadLimit)
	_ = w.Conn.SetReadDeadline(time.Now().Add(w.cfg.PongWait))
	w.Conn.SetPongHandler(func(string) error {
		return w.Conn.SetReadDeadline(time.Now().Add(w.cfg.PongWait))
	})
	for {
		_, data, err := w.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				w.log.Warn("ws conn - read loop - unexpected close", logging.Err(err))
			}
			return
		}
		if len(data) > 0 {
			onMsg(data)
		}
	}
}

func (w *WebSocket) Done() <-chan struct{} {
	return w.ctx.Done()
}

func (w *WebSocket) Close() {
	w.cancel()
	_ = w.Conn.Close()
}

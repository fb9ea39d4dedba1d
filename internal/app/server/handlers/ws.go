package handlers

import (
	"context"
	"huddle/internal/app/server/ws"
	"huddle/internal/config"
	"huddle/pkg/logging"
	"huddle/pkg/middleware"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type WSHandler struct {
	log       *slog.Logger
	deps      ws.Deps
	cfg       config.SocketConfig
	heartbeat time.Duration
	upgrader  websocket.Upgrader
}

// NewWSHandler serves the realtime endpoint. heartbeat is how often a
// connected user's shared presence entry is refreshed; zero disables it.
func NewWSHandler(log *slog.Logger, deps ws.Deps, cfg config.SocketConfig, heartbeat time.Duration) *WSHandler {
	return &WSHandler{
		log:       log,
		deps:      deps,
		cfg:       cfg,
		heartbeat: heartbeat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || lo.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || lo.Contains(allowed, origin)
	}
}

func (h *WSHandler) Handler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	span := trace.SpanFromContext(r.Context())

	authUserID, _ := middleware.UserIDFromContext(r.Context())
	hs := ws.ParseHandshake(r.URL.Query(), authUserID)
	span.SetAttributes(
		attribute.String("user.id", hs.UserID),
		attribute.Int("chat.groups", len(hs.Groups)),
	)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ErrorContext(r.Context(), "ws handler - upgrade - ws upgrade failed", logging.Err(err))
		return
	}
	// The session outlives the request context once the connection is hijacked.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	sock := ws.NewWebSocket(ctx, h.log, conn, h.cfg)
	client := ws.NewClient(ctx, sock, hs.UserID, h.cfg.SendBuffer)
	ctx, log = logging.Scoped(ctx, logging.User(hs.UserID), logging.Conn(client.ID()))
	session := ws.NewSession(h.log, h.deps, client, hs)

	session.Open(ctx)
	defer session.Close(ctx)
	log.InfoContext(ctx, "ws handler - connection established")

	go client.WriteLoop(h.cfg.PingPeriod)
	go session.Heartbeat(ctx, h.heartbeat)

	sock.ReadLoop(func(data []byte) {
		session.Handle(ctx, data)
	})
	log.InfoContext(ctx, "ws handler - connection closed")
}

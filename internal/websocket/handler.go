package websocket

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"meddash/internal/config"
	"meddash/internal/infrastructure"
)

// Handler upgrades HTTP requests to websocket connections.
type Handler struct {
	hub            *Hub
	upgrader       websocket.Upgrader
	timing         Timing
	allowedOrigins []string
	logger         *slog.Logger
}

// NewHandler creates an upgrade handler. Origins are checked against
// allowedOrigins; "*" allows any origin and requests without an Origin
// header are always accepted.
func NewHandler(hub *Hub, cfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	h := &Handler{
		hub:            hub,
		timing:         Timing{PingPeriod: cfg.PingPeriod, PongWait: cfg.PongWait},
		allowedOrigins: allowedOrigins,
		logger:         logger.With(slog.String("component", "websocket.handler")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	// Same host is always accepted.
	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return false
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Upgrade writes its own error response on failure.
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "WebSocket upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("origin", r.Header.Get("Origin")),
			slog.String("error", err.Error()))
		return
	}

	client := NewClient(ctx, h.hub, conn, h.timing, h.logger)
	if err := h.hub.Register(client); err != nil {
		h.logger.WarnContext(ctx, "WebSocket hub not running", slog.String("error", err.Error()))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

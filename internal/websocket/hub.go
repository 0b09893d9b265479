package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"meddash/internal/infrastructure"
)

// ErrHubStopped is returned when broadcasting to a hub that is not running.
var ErrHubStopped = errors.New("websocket hub stopped")

// Hub maintains the set of active clients and broadcasts messages to them.
// The client set is owned by the Run goroutine.
type Hub struct {
	clients map[*Client]struct{}

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	// count mirrors len(clients) for readers outside Run
	mu    sync.RWMutex
	count int

	done    chan struct{}
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewHub creates a hub. Call Run to start it.
func NewHub(metrics *infrastructure.Metrics, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		metrics:    metrics,
		logger:     logger.With(slog.String("component", "websocket.hub")),
	}
}

// Run serves registrations and broadcasts until ctx is done. All clients
// are disconnected on return.
func (h *Hub) Run(ctx context.Context) error {
	h.logger.InfoContext(ctx, "Hub started")
	defer func() {
		for client := range h.clients {
			h.remove(ctx, client)
		}
		close(h.done)
		h.logger.InfoContext(ctx, "Hub shutting down")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.setCount(ctx, 1)

			h.logger.InfoContext(ctx, "Client registered",
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr),
				slog.Int("total_clients", len(h.clients)))

			welcome, err := encode(Message{
				Type: TypeConnection,
				Data: map[string]string{
					"status":    "connected",
					"client_id": client.id,
				},
				TraceID: client.traceID,
			})
			if err == nil {
				select {
				case client.send <- welcome:
				default:
				}
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.remove(ctx, client)
				h.logger.InfoContext(ctx, "Client unregistered",
					slog.String("client_id", client.id),
					slog.Int("total_clients", len(h.clients)))
			}

		case message := <-h.broadcast:
			delivered, dropped := 0, 0
			for client := range h.clients {
				select {
				case client.send <- message:
					delivered++
				default:
					dropped++
					h.remove(ctx, client)
					h.logger.WarnContext(ctx, "Client send buffer full, disconnecting",
						slog.String("client_id", client.id))
				}
			}
			h.logger.DebugContext(ctx, "Broadcast delivered",
				slog.Int("delivered", delivered),
				slog.Int("dropped", dropped),
				slog.Int("message_size", len(message)))
		}
	}
}

func (h *Hub) remove(ctx context.Context, client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.setCount(ctx, -1)
}

func (h *Hub) setCount(ctx context.Context, delta int) {
	h.mu.Lock()
	h.count += delta
	h.mu.Unlock()
	h.metrics.RecordWebSocketClients(ctx, int64(delta))
}

// Register adds a client. It returns ErrHubStopped once Run has returned.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister removes a client. Unknown clients are ignored.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a message for every connected client.
func (h *Hub) Broadcast(ctx context.Context, msgType string, data interface{}) error {
	payload, err := encode(Message{
		Type:    msgType,
		Data:    data,
		TraceID: infrastructure.GetTraceID(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", msgType, err)
	}

	select {
	case h.broadcast <- payload:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NotifyDocumentUpdate broadcasts a document_update event.
func (h *Hub) NotifyDocumentUpdate(ctx context.Context, change, path string) error {
	return h.Broadcast(ctx, TypeDocumentUpdate, DocumentUpdate{Change: change, Path: path})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

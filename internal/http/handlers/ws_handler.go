package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/agency-content/backend/internal/auth"
	"github.com/agency-content/backend/internal/config"
	"github.com/agency-content/backend/internal/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// messageWriter is the slice of *websocket.Conn the hub needs.
type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// wsClient wraps one socket with a write mutex: the websocket library
// forbids concurrent writers, and two events can fan out to the same
// owner at once.
type wsClient struct {
	mu     sync.Mutex
	writer messageWriter
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writer.WriteMessage(websocket.TextMessage, data)
}

// WSHub pushes content lifecycle events to the owning user's open
// sockets, so the UI doesn't have to poll the record while a
// generation job runs.
type WSHub struct {
	cfg         *config.Config
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[string][]*wsClient // keyed by owner user id
}

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:         cfg,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[string][]*wsClient),
	}
}

func (h *WSHub) Start(ctx context.Context) {
	_ = h.subscriber.Subscribe(ctx, events.ContentStream, func(event events.Event) {
		h.sendToOwner(event.OwnerUserID, event)
	})
}

func (h *WSHub) addClient(ownerUserID string, w messageWriter) *wsClient {
	client := &wsClient{writer: w}
	h.mu.Lock()
	h.connections[ownerUserID] = append(h.connections[ownerUserID], client)
	h.mu.Unlock()
	return client
}

func (h *WSHub) removeClient(ownerUserID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.connections[ownerUserID]
	for i, c := range conns {
		if c == client {
			h.connections[ownerUserID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.connections[ownerUserID]) == 0 {
		delete(h.connections, ownerUserID)
	}
}

func (h *WSHub) sendToOwner(ownerUserID string, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := append([]*wsClient{}, h.connections[ownerUserID]...)
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.log.Debug("websocket write failed", zap.Error(err))
		}
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.VerifyToken(h.cfg.AuthJWTSecret, tokenStr)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	ownerID := claims.Subject
	client := h.addClient(ownerID, conn)
	defer func() {
		h.removeClient(ownerID, client)
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/reuniteapp/reunite-api/api"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks live websocket connections keyed by user id
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

// Register replaces any existing connection for userID
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[userID]; ok {
		old.Close()
	}
	h.clients[userID] = conn
}

func (h *Hub) remove(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, userID)
}

// Send pushes an event to userID's connection if one is open.
// Dead connections are dropped from the registry.
func (h *Hub) Send(userID string, data interface{}) {
	h.mu.Lock()
	conn, ok := h.clients[userID]
	h.mu.Unlock()
	if !ok {
		return
	}

	err := conn.WriteJSON(map[string]interface{}{
		"event": "notification",
		"data":  data,
	})
	if err != nil {
		zap.S().Warnw("dropping dead websocket connection", "userId", userID, "error", err)
		conn.Close()
		h.remove(userID)
	}
}

// NotificationStream upgrades authenticated requests to a websocket that
// receives notification events as they are created
type NotificationStream struct {
	Hub  *Hub
	Auth api.Auth
}

// StreamHandler authenticates via the token query parameter since browser
// websocket clients cannot set an Authorization header
func (s NotificationStream) StreamHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		api.WriteAuthError(w, api.ErrNoToken)
		return
	}
	user, err := api.Authenticate(r.Context(), token, s.Auth.Secret, s.Auth.Lookup)
	if err != nil {
		api.WriteAuthError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	userID := user.ID.Hex()
	s.Hub.Register(userID, conn)
	zap.S().Infow("notification stream opened", "userId", userID)

	conn.SetCloseHandler(func(code int, text string) error {
		s.Hub.remove(userID)
		return nil
	})

	go func() {
		defer func() {
			s.Hub.remove(userID)
			conn.Close()
		}()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

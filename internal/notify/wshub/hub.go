package wshub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
	"github.com/BlendB5/OnTrackr-sub001/internal/notify"
)

// Hub is a notification channel backed by connected browser subscribers.
// Each subscriber reports its own notification permission.
type Hub struct {
	auth     *Authenticator
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

var _ notify.Channel = (*Hub)(nil)

func NewHub(auth *Authenticator, allowedOrigins ...string) *Hub {
	h := &Hub{
		auth:    auth,
		clients: make(map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

func (h *Hub) Name() string {
	return "websocket"
}

// HandleWebSocket upgrades the request and registers the subscriber.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subscriber := r.RemoteAddr
	if h.auth != nil {
		sub, err := h.auth.Subscriber(r.URL.Query().Get("token"))
		if err != nil {
			slog.WarnContext(ctx, "websocket subscription rejected",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("error", err.Error()),
			)
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		subscriber = sub
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade failed",
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("error", err.Error()),
		)
		return
	}

	c := &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		subscriber: subscriber,
		permission: domain.PermissionDefault,
	}

	if !h.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}

	h.sendTo(c, serverMessage{
		Type:    TypeWelcome,
		Payload: welcomePayload{Subscriber: subscriber, Permission: domain.PermissionDefault},
	})

	slog.InfoContext(ctx, "websocket subscriber connected",
		slog.String("subscriber", subscriber),
		slog.Int("subscribers", h.Count()),
	)

	go c.writePump()
	// the request context ends when the handler returns
	go c.readPump(context.WithoutCancel(ctx))
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	remaining := len(h.clients)
	h.mu.Unlock()

	slog.Info("websocket subscriber disconnected",
		slog.String("subscriber", c.subscriber),
		slog.Int("subscribers", remaining),
	)
}

func (h *Hub) setPermission(c *client, state domain.Permission) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		c.permission = state
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Permission is granted if any subscriber granted, denied if every subscriber
// that answered denied, and default otherwise.
func (h *Hub) Permission(context.Context) domain.Permission {
	h.mu.RLock()
	defer h.mu.RUnlock()

	answered := 0
	for c := range h.clients {
		switch c.permission {
		case domain.PermissionGranted:
			return domain.PermissionGranted
		case domain.PermissionDenied:
			answered++
		}
	}

	if answered > 0 {
		return domain.PermissionDenied
	}
	return domain.PermissionDefault
}

// RequestPermission asks every undecided subscriber to report its permission.
// Answers arrive asynchronously, so the current aggregate is returned.
func (h *Hub) RequestPermission(ctx context.Context) (domain.Permission, error) {
	sent := h.broadcast(serverMessage{Type: TypePermissionRequest}, func(c *client) bool {
		return !c.permission.IsDecided()
	})

	slog.InfoContext(ctx, "permission requested from subscribers",
		slog.Int("sent", sent),
	)

	if sent == 0 && h.Count() == 0 {
		return domain.PermissionDefault, ErrNoSubscribers
	}
	return h.Permission(ctx), nil
}

// Notify pushes n to every subscriber that granted permission.
func (h *Hub) Notify(ctx context.Context, n domain.Notification) error {
	sent := h.broadcast(serverMessage{Type: TypeNotification, Payload: n}, func(c *client) bool {
		return c.permission.IsGranted()
	})

	if sent == 0 {
		return ErrNoSubscribers
	}

	slog.DebugContext(ctx, "notification pushed to subscribers",
		slog.String("tag", n.Tag),
		slog.Int("sent", sent),
	)
	return nil
}

// broadcast queues msg for every client matching filter and drops clients
// whose send buffer is full.
func (h *Hub) broadcast(msg serverMessage, filter func(c *client) bool) int {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal websocket message",
			slog.String("type", msg.Type),
			slog.String("error", err.Error()),
		)
		return 0
	}

	sent := 0
	var stale []*client

	h.mu.RLock()
	for c := range h.clients {
		if !filter(c) {
			continue
		}
		select {
		case c.send <- data:
			sent++
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	if len(stale) > 0 {
		h.mu.Lock()
		for _, c := range stale {
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		}
		h.mu.Unlock()
		slog.Warn("dropped stale websocket subscribers", slog.Int("count", len(stale)))
	}

	return sent
}

func (h *Hub) sendTo(c *client, msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	return nil
}

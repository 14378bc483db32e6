package wshub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BlendB5/OnTrackr-sub001/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

type client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	subscriber string

	// guarded by hub.mu
	permission domain.Permission
}

func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "websocket closed unexpectedly",
					slog.String("subscriber", c.subscriber),
					slog.String("error", err.Error()),
				)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.DebugContext(ctx, "ignoring malformed websocket message",
				slog.String("subscriber", c.subscriber),
			)
			continue
		}

		switch msg.Type {
		case TypePermission:
			state, ok := domain.ParsePermission(msg.State)
			if !ok {
				slog.DebugContext(ctx, "ignoring unknown permission state",
					slog.String("subscriber", c.subscriber),
					slog.String("state", msg.State),
				)
				continue
			}
			c.hub.setPermission(c, state)
			slog.InfoContext(ctx, "subscriber permission updated",
				slog.String("subscriber", c.subscriber),
				slog.String("state", state.String()),
			)
		default:
			slog.DebugContext(ctx, "ignoring websocket message",
				slog.String("subscriber", c.subscriber),
				slog.String("type", msg.Type),
			)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					slog.Debug("websocket ping failed",
						slog.String("subscriber", c.subscriber),
						slog.String("error", err.Error()),
					)
				}
				return
			}
		}
	}
}

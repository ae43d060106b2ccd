package handlers

import (
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/realtime"
)

// ======================================================
// LIVE UPDATES (SSE)
// ======================================================

type LiveHandler struct {
	hub    *realtime.Hub
	config *config.Config
}

func NewLiveHandler(hub *realtime.Hub, cfg *config.Config) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		config: cfg,
	}
}

// Stream keeps one SSE connection open for the client. Auth happens
// once, before any connection resources exist; EventSource cannot
// set headers, so the token rides a query parameter.
func (h *LiveHandler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		httperr.Unauthorized(c, "missing_token", "Token obrigatório.")
		return
	}

	if _, err := middleware.ParseToken(h.config, token); err != nil {
		httperr.Unauthorized(c, "invalid_token", "Token inválido.")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	conn := realtime.NewStreamConn()
	h.hub.Register(conn)

	// teardown is safe to hit twice: unregister of a pruned
	// connection is a no-op
	defer func() {
		h.hub.Unregister(conn)
		conn.Close()
	}()

	// greet only this client, never the room
	if err := h.write(c, realtime.NewEvent(realtime.KindConnected)); err != nil {
		return
	}

	heartbeat := time.NewTicker(h.config.HeartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case <-conn.Done():
			// the hub pruned this connection as a slow consumer
			return

		case <-heartbeat.C:
			// keeps proxies from declaring the stream idle
			if err := h.write(c, realtime.NewEvent(realtime.KindHeartbeat)); err != nil {
				return
			}

		case ev := <-conn.Events():
			if err := h.write(c, ev); err != nil {
				return
			}
		}
	}
}

func (h *LiveHandler) write(c *gin.Context, ev realtime.Event) error {
	if err := sse.Encode(c.Writer, sse.Event{
		Event: "message",
		Data:  ev,
	}); err != nil {
		return err
	}

	c.Writer.Flush()
	return nil
}

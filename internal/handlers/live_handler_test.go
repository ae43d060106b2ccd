package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/realtime"
)

func liveTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		HeartbeatInterval: 20 * time.Millisecond,
	}
}

func liveToken(t *testing.T, cfg *config.Config) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(1),
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

// runStream drives the handler with a cancelable request and returns
// the recorded body once the handler goroutine has exited.
func runStream(t *testing.T, cfg *config.Config, hub *realtime.Hub, during func()) string {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/queue/live?token="+liveToken(t, cfg), nil)
	c.Request = req.WithContext(ctx)

	handler := NewLiveHandler(hub, cfg)

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.Stream(c)
	}()

	during()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream handler did not stop after cancellation")
	}

	return w.Body.String()
}

func TestStreamEmitsConnectedAndHeartbeats(t *testing.T) {
	cfg := liveTestConfig()
	hub := realtime.NewHub()

	body := runStream(t, cfg, hub, func() {
		// wait through at least two heartbeat intervals
		time.Sleep(3 * cfg.HeartbeatInterval)
	})

	assert.Contains(t, body, `"kind":"connected"`)
	assert.Contains(t, body, `"kind":"heartbeat"`)

	// teardown happened
	assert.Equal(t, 0, hub.Len())
}

func TestStreamReceivesBroadcasts(t *testing.T) {
	cfg := liveTestConfig()
	hub := realtime.NewHub()

	body := runStream(t, cfg, hub, func() {
		// let the connection register before broadcasting
		require.Eventually(t, func() bool { return hub.Len() == 1 },
			time.Second, time.Millisecond)

		hub.Broadcast(realtime.NewEvent(realtime.KindQueueUpdate))
		time.Sleep(2 * cfg.HeartbeatInterval)
	})

	assert.Contains(t, body, `"kind":"queue_update"`)
	assert.Equal(t, 0, hub.Len())
}

// gatedRecorder holds every write until released, standing in for a
// client whose socket has stopped draining.
type gatedRecorder struct {
	*httptest.ResponseRecorder
	gate chan struct{}
	once sync.Once
}

func newGatedRecorder() *gatedRecorder {
	return &gatedRecorder{
		ResponseRecorder: httptest.NewRecorder(),
		gate:             make(chan struct{}),
	}
}

func (g *gatedRecorder) Write(b []byte) (int, error) {
	<-g.gate
	return g.ResponseRecorder.Write(b)
}

func (g *gatedRecorder) release() {
	g.once.Do(func() { close(g.gate) })
}

// a consumer that stops draining gets pruned by the hub, and the
// handler must then exit instead of keeping the stream half-alive
// on heartbeats
func TestStreamStopsAfterSlowConsumerPrune(t *testing.T) {
	cfg := liveTestConfig()
	cfg.HeartbeatInterval = time.Hour

	hub := realtime.NewHub()

	gin.SetMode(gin.TestMode)
	rec := newGatedRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/queue/live?token="+liveToken(t, cfg), nil)

	handler := NewLiveHandler(hub, cfg)

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.Stream(c)
	}()

	require.Eventually(t, func() bool { return hub.Len() == 1 },
		time.Second, time.Millisecond)

	// the greeting is stuck on the gated writer, so nothing drains
	// the connection buffer; broadcast until the hub gives up on it
	for hub.Len() == 1 {
		hub.Broadcast(realtime.NewEvent(realtime.KindQueueUpdate))
	}
	assert.Equal(t, 0, hub.Len())

	rec.release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream handler kept running after being pruned")
	}
}

func TestStreamRejectsMissingToken(t *testing.T) {
	cfg := liveTestConfig()
	hub := realtime.NewHub()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/queue/live", nil)

	NewLiveHandler(hub, cfg).Stream(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// no connection resources were allocated
	assert.Equal(t, 0, hub.Len())
}

func TestStreamRejectsInvalidToken(t *testing.T) {
	cfg := liveTestConfig()
	hub := realtime.NewHub()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/queue/live?token=bogus", nil)

	NewLiveHandler(hub, cfg).Stream(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, hub.Len())
}

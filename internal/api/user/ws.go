package user

import (
	"net/http"

	"github.com/rhhsscico/motherfucking-ctf/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: implement a proper origin check in production
		return true
	},
}

// handleSolveFeedWs streams accepted solves to the client as they happen.
func (h *Handler) handleSolveFeedWs(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Errorf("failed to upgrade solve feed websocket: %v", err)
		return
	}
	defer conn.Close()

	metrics.SolveFeedSubscribers.Inc()
	defer metrics.SolveFeedSubscribers.Dec()

	ch, unsubscribe := h.broker.Subscribe()
	defer unsubscribe()

	// Drain client reads so a closed connection is noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

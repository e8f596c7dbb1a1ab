package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dataset-cutter/log"
)

// The server only listens on loopback, so cross-origin upgrades from the
// local UI are fine.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RepairProgressWS streams repair progress events to the UI over a
// websocket. The connection closes when the client goes away; a finished
// repair keeps the socket open so the client sees the terminal event.
func (h *Handler) RepairProgressWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, cancel := h.RepairRunner.Subscribe()
	defer cancel()

	// Reader goroutine: we never expect client messages, but reading is the
	// only way to notice the peer closing the connection.
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
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				log.GetLogger().Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}

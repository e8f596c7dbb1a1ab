package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"dataset-cutter/internal/response"
	"dataset-cutter/log"
)

// Ping is the readiness probe the desktop launcher polls before opening the
// browser.
func (h *Handler) Ping(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// QuitApp shuts the server down. The response is sent first; the shutdown
// fires after a short delay so the client gets its ack.
func (h *Handler) QuitApp(c *gin.Context) {
	response.Success(c, gin.H{"quitting": true})

	if h.Quit == nil {
		log.GetLogger().Warn("quit requested but no shutdown hook is set")
		return
	}
	go func() {
		time.Sleep(200 * time.Millisecond)
		h.Quit()
	}()
}

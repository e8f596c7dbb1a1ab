package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset-cutter/internal/appdirs"
	"dataset-cutter/internal/handler"
	"dataset-cutter/log"
)

func SetupRouter(r *gin.Engine, hdl *handler.Handler) {
	api := r.Group("/api")
	{
		api.GET("/ping", hdl.Ping)
		api.POST("/quit", hdl.QuitApp)

		api.GET("/settings", hdl.GetSettings)
		api.POST("/settings", hdl.UpdateSettings)

		api.POST("/upload", hdl.UploadVideo)
		api.GET("/videos", hdl.ListVideos)
		api.GET("/video/:filename", hdl.GetVideo)

		api.GET("/labels", hdl.GetLabels)

		api.POST("/clip", hdl.ExportClip)
		api.POST("/undo", hdl.UndoClip)
		api.GET("/stats", hdl.GetStats)
		api.GET("/history", hdl.GetHistory)

		api.POST("/repair", hdl.StartRepair)
		api.GET("/repair/status", hdl.RepairStatus)
		api.GET("/repair/ws", hdl.RepairProgressWS)
	}

	// Source videos are served straight off disk so the player can seek.
	if dirs, err := appdirs.Resolve(); err == nil {
		r.Static("/videos", dirs.VideosDir)
	} else {
		log.GetLogger().Warn("cannot resolve videos directory, /videos not mounted", zap.Error(err))
	}

	if _, err := os.Stat("static"); err == nil {
		log.GetLogger().Info("Using local static directory")
		r.Static("/static", "static")
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/static")
		})
	} else {
		r.GET("/", func(c *gin.Context) {
			c.String(http.StatusOK, "dataset-cutter is running")
		})
	}
}

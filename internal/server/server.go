package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dataset-cutter/config"
	"dataset-cutter/internal/handler"
	"dataset-cutter/internal/router"
	"dataset-cutter/log"
)

var (
	shutdownOnce sync.Once
	shutdownCh   = make(chan struct{})
)

// RequestShutdown asks a running StartBackend to stop. Safe to call more
// than once and from any goroutine.
func RequestShutdown() {
	shutdownOnce.Do(func() {
		close(shutdownCh)
	})
}

// StartBackend builds the HTTP stack and serves it until RequestShutdown is
// called or the listener fails.
func StartBackend() error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	hdl := handler.NewHandler()
	hdl.Quit = RequestShutdown
	router.SetupRouter(engine, hdl)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.GetLogger().Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-shutdownCh:
	}

	log.GetLogger().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

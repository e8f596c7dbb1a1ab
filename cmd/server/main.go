package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"dataset-cutter/config"
	"dataset-cutter/internal/deps"
	"dataset-cutter/internal/server"
	"dataset-cutter/internal/storage"
	"dataset-cutter/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	var err error
	if !config.LoadConfig() {
		return
	}

	if err = config.CheckConfig(); err != nil {
		log.GetLogger().Error("invalid configuration", zap.Error(err))
		return
	}

	storage.InitDB()

	if err = deps.CheckDependency(); err != nil {
		log.GetLogger().Error("dependency check failed", zap.Error(err))
		return
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		server.RequestShutdown()
	}()

	if err = server.StartBackend(); err != nil {
		log.GetLogger().Error("backend failed", zap.Error(err))
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"dataset-cutter/config"
	"dataset-cutter/internal/deps"
	"dataset-cutter/internal/server"
	"dataset-cutter/internal/storage"
	"dataset-cutter/log"
)

const portScanTries = 20

func main() {
	if handled, exitCode := handleCLIFlags(); handled {
		os.Exit(exitCode)
	}

	log.InitLogger()
	defer log.GetLogger().Sync()

	if !config.LoadConfig() {
		return
	}
	if err := config.CheckConfig(); err != nil {
		log.GetLogger().Error("invalid configuration", zap.Error(err))
		return
	}

	storage.InitDB()

	if err := deps.CheckDependency(); err != nil {
		log.GetLogger().Error("dependency check failed", zap.Error(err))
		return
	}

	// The configured port may be taken by another instance; walk forward
	// until a free one turns up.
	port, err := pickFreePort(config.Conf.Server.Host, config.Conf.Server.Port)
	if err != nil {
		log.GetLogger().Error("no free port found", zap.Error(err))
		return
	}
	config.Conf.Server.Port = port

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.StartBackend()
	}()

	baseURL := fmt.Sprintf("http://%s:%d", config.Conf.Server.Host, port)
	if err = waitForReady(baseURL); err != nil {
		log.GetLogger().Error("backend never became ready", zap.Error(err))
		server.RequestShutdown()
		<-serverErr
		os.Exit(1)
	}

	if err = openBrowser(baseURL); err != nil {
		log.GetLogger().Warn("cannot open browser, open it manually",
			zap.String("url", baseURL), zap.Error(err))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sig:
		server.RequestShutdown()
		<-serverErr
	case err = <-serverErr:
		if err != nil {
			log.GetLogger().Error("backend failed", zap.Error(err))
			os.Exit(1)
		}
	}
}

func pickFreePort(host string, start int) (int, error) {
	for port := start; port < start+portScanTries; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
		if err != nil {
			continue
		}
		ln.Close()
		return port, nil
	}
	return 0, fmt.Errorf("no free port in [%d, %d)", start, start+portScanTries)
}

func waitForReady(baseURL string) error {
	client := resty.New().SetTimeout(500 * time.Millisecond)

	var lastErr error
	for i := 0; i < 40; i++ {
		resp, err := client.R().Get(baseURL + "/api/ping")
		if err == nil && resp.StatusCode() == 200 {
			return nil
		}
		lastErr = err
		time.Sleep(250 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("ping never returned 200")
	}
	return lastErr
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

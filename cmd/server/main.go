package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/socraticlabs/council/backend/internal/config"
	"github.com/socraticlabs/council/backend/internal/logging"
	"github.com/socraticlabs/council/backend/internal/server"
)

func main() {
	dev := flag.Bool("dev", false, "Development mode (debug inspector, verbose logs)")
	addr := flag.String("addr", "", "Listen address (overrides HOST/PORT)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *dev {
		cfg.Server.Development = true
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		l, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: false,
			OutputPaths: []string{"stdout"},
		})
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		logger = l
	}
	defer logger.Sync()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	listenAddr := *addr
	if listenAddr == "" {
		listenAddr = cfg.Server.Host + ":" + cfg.Server.Port
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(listenAddr); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutting down")
		if err := srv.Close(); err != nil {
			logger.Warn("error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		logger.Fatal("server error", zap.Error(err))
	}
}

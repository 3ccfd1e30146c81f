package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"customer_extract/internal/application/extract"
	"customer_extract/internal/config"
	ginserver "customer_extract/internal/infrastructure/http/gin"
	"customer_extract/internal/interfaces/http/handler"
	"customer_extract/internal/interfaces/http/router"
	"customer_extract/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = appLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The API transforms request bodies only, so no sources or sinks are wired.
	svc := extract.NewService(nil, nil, appLog)

	extractHandler := handler.NewExtractHandler(svc)
	engine := ginserver.NewEngine(appLog)
	router.RegisterRoutes(engine, extractHandler)

	server := ginserver.NewServer(cfg.Server, engine, appLog)
	if err := server.Run(ctx); err != nil {
		appLog.Fatal("server run failed", logger.Error(err))
	}
}

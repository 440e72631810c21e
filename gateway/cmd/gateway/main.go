package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/trustbasket/gateway/internal/config"
	"github.com/Skotchmaster/trustbasket/gateway/internal/httpserver"
	pkgconfig "github.com/Skotchmaster/trustbasket/pkg/config"
	"github.com/Skotchmaster/trustbasket/pkg/logging"
	loggingmw "github.com/Skotchmaster/trustbasket/pkg/middleware/logging"
)

func main() {
	pkgconfig.LoadEnvFiles("gateway/.env")
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "gateway")
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Secure())

	if err := httpserver.Register(e, &httpserver.Deps{
		CartURL:         cfg.CartURL,
		RegistrationURL: cfg.RegistrationURL,
		DialTimeout:     cfg.ProxyTimeout,
		JWTSecret:       cfg.JWTSecret,
	}); err != nil {
		log.Fatal(err)
	}

	go func() {
		logger.Info("gateway_listening", "addr", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
}

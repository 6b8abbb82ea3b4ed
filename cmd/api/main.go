package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/documedix/documedix/internal/adapters/http"
	"github.com/documedix/documedix/internal/bootstrap"
	"github.com/documedix/documedix/internal/config"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, "api", cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	mux := http.NewServeMux()
	httpadapter.NewHandler(app.Drafts, app.Chat, app.Logger).Routes(mux)
	mux.Handle("GET /metrics", app.Metrics.Handler())

	var handler http.Handler = mux
	handler = httpadapter.RateLimit(cfg.APIRateLimitRPS, cfg.APIRateLimitBurst, handler)
	handler = app.Metrics.Middleware("api", handler)
	handler = httpadapter.AccessLog(app.Logger, handler)
	handler = httpadapter.RequestID(handler)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: handler,
		// Generation calls block for minutes; write timeout must cover them.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		app.Logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("api_shutdown_error", "error", err)
	}
}

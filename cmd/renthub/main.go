// Package main запускает HTTP-сервер сервиса аренды жилья.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dkravets/renthub-system/internal/config"
	"github.com/dkravets/renthub-system/internal/flow"
	"github.com/dkravets/renthub-system/internal/geo"
	"github.com/dkravets/renthub-system/internal/handler"
	"github.com/dkravets/renthub-system/internal/middleware"
	"github.com/dkravets/renthub-system/internal/payment"
	"github.com/dkravets/renthub-system/internal/repository"
	"github.com/dkravets/renthub-system/internal/service"
	"github.com/dkravets/renthub-system/internal/session"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	repo := repository.NewMemory()
	defer repo.Close()

	svc := service.NewService(repo)
	defer svc.Close()

	var gateway flow.Gateway
	if cfg.PaymentGatewayAddress != "" {
		gateway = payment.NewClient(cfg.PaymentGatewayAddress, logger)
	} else {
		gateway = payment.NewStub(cfg.PaymentDelay)
	}

	provider := geo.NewStatic(geo.Position{Lat: 40.7128, Lng: -74.006}, 0)

	flows := flow.NewManager(svc, gateway, svc)

	sessions := session.NewStore()
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.SessionSecret, sessions)

	h := handler.NewHandler(svc, flows, provider, logger, sessionMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting renthub server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

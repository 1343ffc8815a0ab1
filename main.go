package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zoobzio/capitan"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/storage/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, _ := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	logging.HookSignals(logger)
	defer logging.Shutdown()

	gin.SetMode(cfg.GinMode)

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	src, err := content.NewSource(cfg.ContentPath, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		To:   cfg.SMTP.Inbox(),
	})
	go verifySender(ctx, sender, logger)

	srv := newServer(deps{cfg: cfg, logger: logger, store: store, content: src, sender: sender})
	srv.background(ctx)
	defer srv.sessions.closeAll()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("portfolio listening", "port", cfg.Port, "mode", cfg.NavMode().String())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// verifySender checks the SMTP login once at startup. A failure is logged and
// the server keeps running.
func verifySender(ctx context.Context, sender *mailer.SMTPSender, logger *slog.Logger) {
	if err := sender.Verify(ctx); err != nil {
		logger.Error("email server verification failed", "error", err)
		return
	}
	capitan.Emit(ctx, mailer.SenderVerified)
}

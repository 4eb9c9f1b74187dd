package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mvanrooyen/officeloader/internal/config"
	"github.com/mvanrooyen/officeloader/internal/core"
	"github.com/mvanrooyen/officeloader/internal/logging"
	"github.com/mvanrooyen/officeloader/internal/store"
	"github.com/mvanrooyen/officeloader/internal/web"
	"github.com/mvanrooyen/officeloader/internal/xlsx"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"row_offset", cfg.Import.RowOffset,
	)

	// The database connection is established lazily by the connection tool
	// call, so startup needs no reachable database.
	reader := xlsx.NewReader(cfg.Import.RowOffset)
	service := core.NewService(reader, store.Connect)
	defer service.Close()

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		service.Close()
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/band-planner/cliparse"
	"github.com/danielhkuo/band-planner/middleware"
	"github.com/danielhkuo/band-planner/notify"
	"github.com/danielhkuo/band-planner/router"
	"github.com/danielhkuo/band-planner/store"
	"github.com/danielhkuo/band-planner/store/mongostore"
	"github.com/danielhkuo/band-planner/store/sqlstore"
)

const (
	connectTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Environment from .env, if present. Real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	st, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	slog.Info("Store ready", "type", cfg.DatabaseType)

	var notifier notify.Notifier = notify.Noop{}
	if cfg.NotificationsEnabled() {
		notifier = notify.NewResend(cfg.ResendAPIKey, cfg.NotifyFrom, cfg.NotifyTo, cfg.PublicURL)
		slog.Info("Email notifications enabled", "to", cfg.NotifyTo)
	}

	// Create router
	mux := router.NewRouter(st, cfg, notifier)

	// Create server
	server := http.Server{
		Handler:           middleware.Stack(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		st.Close(context.Background())
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	slog.Info("Listening", "port", cfg.Port)
	if err := run(&server, ln, st, ctrlc); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
}

// run serves on ln until stop fires, then drains in-flight requests and
// pending notifications before closing the store.
func run(server *http.Server, ln net.Listener, st store.Store, stop <-chan os.Signal) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
		if err := notify.Wait(ctx); err != nil {
			slog.Warn("pending notifications dropped", "error", err)
		}
	}()

	err := server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		st.Close(context.Background())
		return err
	}
	// Serve returns as soon as Shutdown starts; handlers may still be running
	<-drained
	slog.Info("Server closed")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := st.Close(ctx); err != nil {
		slog.Error("store close failed", "error", err)
	}
	return nil
}

// openStore connects the backend named by cfg.DatabaseType
func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseSQLite:
		return sqlstore.Open(ctx, sqlstore.DriverSQLite, cfg.DatabaseURL)
	case cliparse.DatabasePostgres:
		return sqlstore.Open(ctx, sqlstore.DriverPostgres, cfg.DatabaseURL)
	case cliparse.DatabaseMongo:
		return mongostore.Open(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}

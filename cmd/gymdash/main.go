package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/gymdash/internal/config"
	"github.com/claude/gymdash/internal/ingest/alpha"
	gymmcp "github.com/claude/gymdash/internal/mcp"
	"github.com/claude/gymdash/internal/registry"
	"github.com/claude/gymdash/internal/server"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("GymDash starting", "version", Version)

	// Build the initial dashboard state
	reg, err := registry.Seed(cfg.Seed.All())
	if err != nil {
		log.Error("failed to seed dashboard", "error", err)
		os.Exit(1)
	}
	store := registry.NewStore(reg, log)
	log.Info("dashboard seeded", "workouts", len(reg.Workouts))

	alphaProvider := alpha.NewProvider(store, log)
	if cfg.Seed.AlphaCSV != "" {
		if err := importAlpha(alphaProvider, cfg.Seed.AlphaCSV); err != nil {
			log.Error("alpha seed import failed", "path", cfg.Seed.AlphaCSV, "error", err)
			os.Exit(1)
		}
	}

	// Create server
	srv := server.New(store, alphaProvider, log)
	srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(gymmcp.New(store, Version, log)))

	// Start server on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func importAlpha(p *alpha.Provider, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = p.Ingest(context.Background(), f)
	return err
}

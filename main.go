package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lab1702/fleetcommand/config"
	"github.com/lab1702/fleetcommand/server"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	configPath := flag.String("config", "", "Path to YAML config file")
	debug := flag.Bool("debug", false, "Log every AI state transition")
	telemetryDir := flag.String("telemetry", "", "Directory for the AI transition CSV (overrides config)")
	flag.Parse()

	server.SetDebugAI(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading config", "err", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *telemetryDir != "" {
		cfg.Server.TelemetryDir = *telemetryDir
	}

	telemetry, err := server.NewTelemetry(cfg.Server.TelemetryDir)
	if err != nil {
		log.Fatal("opening telemetry", "err", err)
	}

	log.Info("starting fleet command server", "port", cfg.Server.Port, "sector", cfg.Server.Sector)

	gameServer := server.NewServer(cfg, telemetry)
	go gameServer.Run()

	// Hot reload the config file if one was given
	if *configPath != "" {
		watcher, err := config.Watch(*configPath)
		if err != nil {
			log.Warn("config hot reload disabled", "err", err)
		} else {
			defer watcher.Close()
			go func() {
				for {
					select {
					case next, ok := <-watcher.Updates:
						if !ok {
							return
						}
						log.Info("config reloaded", "path", *configPath)
						gameServer.SetConfig(next)
					case err, ok := <-watcher.Errors:
						if !ok {
							return
						}
						log.Warn("config reload failed", "err", err)
					}
				}
			}()
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gameServer.HandleWebSocket)
	mux.HandleFunc("/api/fleet", gameServer.HandleFleet)
	mux.HandleFunc("/api/factions", gameServer.HandleFactions)
	mux.HandleFunc("/health", gameServer.HandleHealth)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", "err", err)
		}
	}()
	log.Info("server running", "url", "http://localhost:"+strconv.Itoa(cfg.Server.Port))

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("shutting down", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop the simulation first so telemetry is flushed
	gameServer.Shutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", "err", err)
	}

	log.Info("server stopped")
}

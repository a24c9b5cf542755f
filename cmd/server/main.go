// Package main is the entry point for the stockholm-public-transport MCP
// server. It serves over stdio by default and over streamable HTTP with the
// -http flag.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/config"
	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/journey"
	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/server"
	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/transit"
)

func main() {
	// A missing .env is fine; the host environment may carry the settings.
	_ = godotenv.Load()

	httpMode := flag.Bool("http", false, "serve MCP over streamable HTTP instead of stdio")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Configuration error: ", err)
	}

	// Logs go to stderr: in stdio mode stdout belongs to the protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	planner := journey.NewService(cfg.JourneyPlannerURL, cfg.HTTPTimeout)
	departures := transit.NewDepartureService(cfg.TransportAPIURL, cfg.HTTPTimeout, cfg.CacheTTL)
	sites := transit.NewSiteService(cfg.TransportAPIURL, cfg.HTTPTimeout, cfg.CacheTTL)
	deviations := transit.NewDeviationService(cfg.DeviationsFeedURL, cfg.TrafiklabAPIKey, cfg.HTTPTimeout, cfg.CacheTTL)

	if !deviations.HasAPIKey() {
		slog.Warn("TRAFIKLAB_API_KEY not set, service_deviations will report an error")
	}

	srv := server.New(planner, departures, sites, deviations)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *httpMode {
		runHTTP(ctx, cfg, srv)
		return
	}

	slog.Info("starting MCP server on stdio", "env", cfg.Env, "version", server.Version)
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func runHTTP(ctx context.Context, cfg *config.Config, srv *mcp.Server) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil))

	httpServer := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// No write timeout: streamable HTTP keeps event streams open.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting MCP server on HTTP", "addr", cfg.HTTPAddr, "env", cfg.Env, "version", server.Version)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Version   string `json:"version"`
	}{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   server.Version,
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

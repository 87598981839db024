package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/usestring/videoquery-mcp/internal/config"
	"github.com/usestring/videoquery-mcp/pkg/client"
	"github.com/usestring/videoquery-mcp/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A .env file is optional; the environment alone is enough
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}

	// Configuration is loaded from environment variables:
	// - RESEARCH_ACCESS_TOKEN: bearer token for the Research API
	// - RESEARCH_API_URL: endpoint override (default: the public query endpoint)
	// - HTTP_CLIENT_TIMEOUT_MS: per-request timeout
	// - LOG_LEVEL, LOG_FILE: logging
	// - etc. (see internal/config for all options)
	cfg := config.Load()
	if cfg.AccessToken == "" {
		slog.Warn("RESEARCH_ACCESS_TOKEN is not set; research_query_videos will reject calls")
	}

	researchClient := client.New(
		client.WithEndpoint(cfg.ResearchAPIURL),
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout}),
	)

	server, err := mcpsrv.NewServer(researchClient)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting research video query MCP server on stdio", "endpoint", researchClient.Endpoint())
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

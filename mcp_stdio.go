package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/wricardo/terminal-snake/api"
	"github.com/wricardo/terminal-snake/transport/mcp"
	"github.com/wricardo/terminal-snake/transport/websocket"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "run an MCP stdio server, using an internal HTTP API when none is reachable",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   DefaultAPIURL,
				Usage:   "REST API to proxy to if it is already running",
				Sources: cli.EnvVars("SNAKE_API_URL"),
			},
		},
		Action: runStdioMCP,
	}
}

// internalAPI is a REST API bound to a random loopback port
type internalAPI struct {
	baseURL string
	server  *http.Server
	cancel  context.CancelFunc
}

// startInternalAPI serves the game over a loopback listener so the MCP
// client has something to proxy to
func startInternalAPI(ctx context.Context, svc *services, logger log15.Logger) (*internalAPI, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to get available port: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	internal := &internalAPI{
		baseURL: "http://" + listener.Addr().String(),
		server:  &http.Server{Handler: api.NewServer(svc.game, hub, logger)},
		cancel:  cancel,
	}

	go func() {
		if err := internal.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("internal HTTP server error", "err", err)
		}
	}()

	logger.Info("internal HTTP server started", "url", internal.baseURL)
	return internal, nil
}

// Close stops the server and its hub
func (a *internalAPI) Close() error {
	defer a.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(ctx)
}

// runStdioMCP reuses an API at --api-url when it answers, otherwise it
// starts an internal one. Stdout carries the protocol, so logs go to stderr.
func runStdioMCP(ctx context.Context, cmd *cli.Command) (err error) {
	logger, err := setupLogging(cmd, true)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	externalURL := cmd.String("api-url")
	logger.Info("checking for external API server", "url", externalURL)

	client := mcp.NewClient(externalURL, logger)
	if err := client.WaitForAPI(ctx, 1); err == nil {
		logger.Info("MCP stdio server ready (using external HTTP server)", "url", externalURL)
		return server.ServeStdio(client.GetMCPServer())
	}

	logger.Info("no external API server found, starting internal HTTP server")
	svc, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return err
	}

	internal, err := startInternalAPI(ctx, svc, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, internal.Close())
	}()

	client = mcp.NewClient(internal.baseURL, logger)
	if err := client.WaitForAPI(ctx, 20); err != nil {
		return err
	}

	logger.Info("MCP stdio server ready (using internal HTTP server)", "url", internal.baseURL)
	return server.ServeStdio(client.GetMCPServer())
}

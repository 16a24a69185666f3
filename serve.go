package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/terminal-snake/api"
	"github.com/wricardo/terminal-snake/game/config"
	"github.com/wricardo/terminal-snake/game/service"
	"github.com/wricardo/terminal-snake/game/session"
	"github.com/wricardo/terminal-snake/transport/mcp"
	"github.com/wricardo/terminal-snake/transport/websocket"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: DefaultHost, Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.IntFlag{Name: "port", Value: DefaultPort, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.DurationFlag{Name: "session-ttl", Value: DefaultSessionTTL, Usage: "remove sessions idle for longer than this"},
			&cli.DurationFlag{Name: "cleanup-interval", Value: DefaultCleanupInterval, Usage: "how often expired sessions are swept"},
			&cli.BoolFlag{Name: "ngrok", Usage: "expose the server through an ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Action: runServe,
	}
}

// services groups what the server commands share
type services struct {
	game     service.GameService
	sessions *session.Manager
	configs  *config.Manager
}

// initializeServices wires the session and config managers into the game service
func initializeServices(configDir string, logger log15.Logger) (*services, error) {
	configManager, err := config.NewManager(configDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager(logger)

	return &services{
		game:     service.NewGameService(sessionManager, configManager, logger),
		sessions: sessionManager,
		configs:  configManager,
	}, nil
}

// newHandler mounts the REST API at / and the MCP endpoint at /mcp
func newHandler(svc *services, hub *websocket.Hub, baseURL string, logger log15.Logger) (http.Handler, *server.StreamableHTTPServer) {
	apiServer := api.NewServer(svc.game, hub, logger)

	mcpClient := mcp.NewClient(baseURL, logger)
	mcpHTTP := server.NewStreamableHTTPServer(mcpClient.GetMCPServer(),
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.Handle("/mcp", mcpHTTP)
	return mainRouter, mcpHTTP
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	logger, err := setupLogging(cmd, true)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	svc, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go svc.sessions.RunCleanup(ctx, cmd.Duration("cleanup-interval"), cmd.Duration("session-ttl"))

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	addr := net.JoinHostPort(cmd.String("host"), strconv.Itoa(cmd.Int("port")))
	handler, mcpHTTP := newHandler(svc, hub, "http://"+addr, logger)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP server listening", "addr", addr, "configs", svc.configs.Count(),
			"api", "http://"+addr+"/api", "ws", "ws://"+addr+"/ws?session=<id>", "mcp", "http://"+addr+"/mcp")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http server: %w", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serveTunnel(ctx, handler, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), logger); err != nil {
				logger.Error("ngrok tunnel failed", "err", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-serveErr:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = multierr.Combine(
		runErr,
		httpServer.Shutdown(shutdownCtx),
		mcpHTTP.Shutdown(shutdownCtx),
	)

	wg.Wait()
	logger.Info("server stopped", "sessions", svc.sessions.Count())
	return err
}

// serveTunnel serves handler through an ngrok tunnel until ctx is done
func serveTunnel(ctx context.Context, handler http.Handler, authToken, domain string, logger log15.Logger) error {
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN)")
		return nil
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.Info("using custom ngrok domain", "domain", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		return fmt.Errorf("start ngrok tunnel: %w", err)
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Warn("failed to close ngrok tunnel", "err", err)
		}
	}()

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established", "url", ngrokURL,
		"api", ngrokURL+"/api", "ws", ngrokURL+"/ws?session=<id>", "mcp", ngrokURL+"/mcp")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		return fmt.Errorf("serve ngrok tunnel: %w", err)
	}
	logger.Info("ngrok tunnel closed")
	return nil
}
